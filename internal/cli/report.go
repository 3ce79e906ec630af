package cli

import (
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/a8s-marketing/raw-ingest/internal/config"
	"github.com/a8s-marketing/raw-ingest/internal/ingest"
)

const notAvailable = "N/A"

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
)

// consoleReporter prints human-readable progress as the pipeline runs.
type consoleReporter struct {
	out io.Writer
	cfg *config.Config
}

func newConsoleReporter(out io.Writer, cfg *config.Config) *consoleReporter {
	return &consoleReporter{out: out, cfg: cfg}
}

func (r *consoleReporter) StepStarted(step ingest.Step) {
	if step != ingest.StepIngest {
		return
	}

	infoColor.Fprintf(r.out, "⏳ Ingesting data from %s...\n", r.cfg.SourceTable)
	fmt.Fprintf(r.out, "   Date range: %s to %s\n", r.cfg.StartDate, r.cfg.EndDate)
	fmt.Fprintf(r.out, "   Row limit: %s\n", humanize.Comma(r.cfg.RowLimit))
}

func (r *consoleReporter) StepFinished(step ingest.StepResult, run *ingest.Result) {
	if step.Status == ingest.StatusFailed {
		failColor.Fprintf(r.out, "✗ Step %s failed after %s\n", step.Step, step.Duration.Round(time.Millisecond))
		return
	}

	switch step.Step {
	case ingest.StepConnect:
		okColor.Fprintf(r.out, "✓ Connected to BigQuery project: %s\n", run.ProjectID)
	case ingest.StepProvision:
		okColor.Fprintf(r.out, "✓ Dataset ready: %s\n", r.cfg.DatasetID())
	case ingest.StepIngest:
		okColor.Fprintf(r.out, "✓ Table created: %s\n", r.cfg.TableID())
		okColor.Fprintf(r.out, "✓ Rows ingested: %s\n", humanize.Comma(int64(run.Rows)))
	case ingest.StepVerify:
		fmt.Fprintln(r.out, "\n📊 Data Verification:")
		summaryTable(r.out, run.Summary)
	}
}

func summaryTable(out io.Writer, s *ingest.Summary) {
	table := tablewriter.NewWriter(out)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"Total rows", humanize.Comma(s.TotalRows)})
	table.Append([]string{"Date range", fmt.Sprintf("%s to %s", formatDateTime(s.MinPickup), formatDateTime(s.MaxPickup))})
	table.Append([]string{"Vendors", humanize.Comma(s.Vendors)})
	table.Append([]string{"Total revenue", formatRevenue(s.TotalRevenue)})

	table.Render()
}

// stepTable prints one line per step with its outcome and duration.
func stepTable(out io.Writer, steps []ingest.StepResult) {
	infoColor.Fprintln(out, "Step        Status    Duration")
	infoColor.Fprintln(out, "──────────────────────────────────")

	for _, s := range steps {
		var statusText string
		switch s.Status {
		case ingest.StatusOK:
			statusText = okColor.Sprint("✓ OK    ")
		case ingest.StatusFailed:
			statusText = failColor.Sprint("✗ FAILED")
		default:
			statusText = failColor.Sprint("✗ UNKNOWN")
		}

		fmt.Fprintf(out, "%-11s %s  %s\n", s.Step, statusText, s.Duration.Round(time.Millisecond))
	}
}

func formatDateTime(v bigquery.NullDateTime) string {
	if !v.Valid {
		return notAvailable
	}

	return v.DateTime.Date.String() + " " + v.DateTime.Time.String()
}

func formatRevenue(v bigquery.NullFloat64) string {
	if !v.Valid {
		return notAvailable
	}

	return "$" + humanize.FormatFloat("#,###.##", v.Float64)
}
