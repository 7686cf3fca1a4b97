package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eventdiscovery/config"
	"eventdiscovery/internal/domain"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Search    string
	EventType string
	Location  string
	DateRange string
	Start     string
	End       string
	Format    string // "json" | "text"
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the events matching the filters",
		Long: `Run one query against the configured event source and print the result.

Example:
  eventdiscovery query --search react
  eventdiscovery query --location custom:berlin --date-range this-month --format text
  eventdiscovery query --date-range custom --start 2024-06-01 --end 2024-07-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "search title, description and tags")
	cmd.Flags().StringVar(&opts.EventType, "type", "", "exact event type")
	cmd.Flags().StringVar(&opts.Location, "location", "", "city, country or venue")
	cmd.Flags().StringVar(&opts.DateRange, "date-range", string(domain.DateRangeAll), "all, today, this-week, this-month or custom")
	cmd.Flags().StringVar(&opts.Start, "start", "", "custom range start (inclusive)")
	cmd.Flags().StringVar(&opts.End, "end", "", "custom range end (exclusive)")
	cmd.Flags().StringVar(&opts.Format, "format", "json", "output format (json|text)")

	return cmd
}

func (o *QueryOptions) filters() domain.Filters {
	f := domain.Filters{
		DateRange:   domain.DateRange(o.DateRange),
		Location:    o.Location,
		EventType:   o.EventType,
		SearchQuery: o.Search,
	}
	if o.Start != "" || o.End != "" {
		f.CustomRange = &domain.CustomDateRange{Start: o.Start, End: o.End}
	}
	return domain.NormalizeFilters(f)
}

func runQuery(cmd *cobra.Command, opts *QueryOptions) error {
	if opts.Format != "json" && opts.Format != "text" {
		return fmt.Errorf("invalid format %q: must be json or text", opts.Format)
	}
	filters := opts.filters()
	if err := filters.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLoggerTo(cmd.ErrOrStderr())

	app, err := Build(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	events, err := app.Service.FetchEvents(cmd.Context(), filters)
	if err != nil {
		return err
	}
	if opts.Format == "text" {
		return writeText(cmd.OutOrStdout(), events)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

func writeText(w io.Writer, events []domain.Event) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tTITLE\tCITY")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.EventType, e.Title, e.Location.City)
	}
	return tw.Flush()
}
