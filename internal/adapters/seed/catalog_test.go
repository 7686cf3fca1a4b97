package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventdiscovery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	events, err := DefaultCatalog()
	require.NoError(t, err)
	require.Len(t, events, 5)

	first := events[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "React Conference 2024", first.Title)
	assert.Equal(t, "Conference", first.EventType)
	assert.Equal(t, "San Francisco", first.Location.City)
	require.NotNil(t, first.Price)
	assert.Equal(t, 299.0, first.Price.Amount)
	require.NotNil(t, first.Capacity)
	assert.Equal(t, 1000, *first.Capacity)
	assert.Equal(t, []string{"React", "JavaScript", "Frontend", "Web Development"}, first.Tags)

	meetup := events[2]
	assert.Nil(t, meetup.Price)
	assert.Empty(t, meetup.ImageURL)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantLen int
		wantErr string
	}{
		{
			name: "minimal event gets empty tags",
			yaml: `
events:
  - id: a
    title: Minimal
    date: "2024-06-01"
`,
			wantLen: 1,
		},
		{
			name: "missing title",
			yaml: `
events:
  - id: a
    date: "2024-06-01T10:00:00Z"
`,
			wantErr: "Title",
		},
		{
			name: "unparseable date",
			yaml: `
events:
  - id: a
    title: Bad date
    date: "next tuesday"
`,
			wantErr: "Date",
		},
		{
			name: "end before start",
			yaml: `
events:
  - id: a
    title: Backwards
    date: "2024-06-02T10:00:00Z"
    endDate: "2024-06-01T10:00:00Z"
`,
			wantErr: "EndDate",
		},
		{
			name: "negative capacity",
			yaml: `
events:
  - id: a
    title: Negative
    date: "2024-06-02T10:00:00Z"
    capacity: -1
`,
			wantErr: "Capacity",
		},
		{
			name: "negative price",
			yaml: `
events:
  - id: a
    title: Negative price
    date: "2024-06-02T10:00:00Z"
    price: {amount: -5, currency: USD}
`,
			wantErr: "Amount",
		},
		{
			name: "duplicate ids",
			yaml: `
events:
  - {id: a, title: One, date: "2024-06-01"}
  - {id: a, title: Two, date: "2024-06-02"}
`,
			wantErr: "duplicate event id",
		},
		{
			name:    "not yaml",
			yaml:    "events: [",
			wantErr: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, events, tt.wantLen)
			assert.NotNil(t, events[0].Tags)
		})
	}
}

func TestParse_ValidationIsInvalidInput(t *testing.T) {
	_, err := Parse([]byte("events:\n  - {id: a, date: \"2024-06-01\"}\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events:\n  - {id: x, title: From file, date: \"2024-06-01\"}\n"), 0o600))

	events, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "From file", events[0].Title)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestSource(t *testing.T) {
	events, err := DefaultCatalog()
	require.NoError(t, err)
	src := NewSource(events, 0)
	ctx := context.Background()

	all, err := src.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, events, all)

	all[0].Title = "mutated"
	again, err := src.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "React Conference 2024", again[0].Title, "callers get a copy")

	e, err := src.GetEvent(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "AI & Machine Learning Meetup", e.Title)

	_, err = src.GetEvent(ctx, "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_LatencyHonorsContext(t *testing.T) {
	src := NewSource(nil, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := src.ListEvents(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSource_Latency(t *testing.T) {
	src := NewSource([]domain.Event{{ID: "a", Title: "A", Date: "2024-06-01"}}, 20*time.Millisecond)
	start := time.Now()
	got, err := src.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
