package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"React", "React"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript:alert(1)", "alert(1)"},
		{"JavaScript:void(0)", "void(0)"},
		{" <b>New York</b> ", "bNew York/b"},
		{"javajavascript:script:alert(1)", "alert(1)"},
		{"jajavascript:vajavascript:script:script:x", "script:x"},
		{"JAVAjavascript:SCRIPT:void(0)", "void(0)"},
		{"java<script>:alert(1)", "alert(1)"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeInput(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeImageURL(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", PlaceholderImage},
		{"relative", "/images/react.png", "/images/react.png"},
		{"placeholder", "/placeholder.svg", "/placeholder.svg"},
		{"unsplash", "https://images.unsplash.com/photo-1?w=800", "https://images.unsplash.com/photo-1?w=800"},
		{"picsum subdomain", "https://fastly.picsum.photos/id/1/200", "https://fastly.picsum.photos/id/1/200"},
		{"other host", "https://evil.example/pic.png", PlaceholderImage},
		{"suffix trick", "https://notpicsum.photos/pic.png", PlaceholderImage},
		{"host in path", "https://evil.example/images.unsplash.com/x.png", PlaceholderImage},
		{"javascript scheme", "javascript:alert(1)", PlaceholderImage},
		{"data uri", "data:image/png;base64,AAAA", PlaceholderImage},
		{"protocol relative", "//evil.example/x.png", PlaceholderImage},
		{"garbage", "::not a url", PlaceholderImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeImageURL(tt.in))
		})
	}
}
