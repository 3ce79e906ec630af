// Package ingest lands a fixed slice of the NYC yellow taxi trips into a raw
// BigQuery table and verifies the result.
//
// The raw table is rebuilt on every run with a single CREATE OR REPLACE TABLE AS
// SELECT statement. Every row carries two sync metadata columns: the time of the
// run, shared by all rows, and a soft-delete flag that is always false.
package ingest

import (
	"bytes"
	"fmt"
	"text/template"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

// Sync metadata columns appended to every landed row.
const (
	SyncedAtColumn = "_sync_timestamp"
	DeletedColumn  = "_deleted"
)

// Source columns the filter and the verification query refer to by name.
const (
	PickupColumn = "pickup_datetime"
	VendorColumn = "vendor_id"
	AmountColumn = "total_amount"
)

// Named query parameters.
const (
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamRowLimit  = "row_limit"
)

// SourceColumns is the explicit projection copied from the source table. New
// source columns must not reach the raw table unnoticed, so there is no SELECT *.
var SourceColumns = []string{
	VendorColumn,
	PickupColumn,
	"dropoff_datetime",
	"passenger_count",
	"trip_distance",
	"pickup_location_id",
	"dropoff_location_id",
	"rate_code",
	"store_and_fwd_flag",
	"payment_type",
	"fare_amount",
	"extra",
	"mta_tax",
	"tip_amount",
	"tolls_amount",
	"imp_surcharge",
	AmountColumn,
}

// RawColumns is the full column set of the raw table.
func RawColumns() []string {
	cols := make([]string, 0, len(SourceColumns)+2)
	cols = append(cols, SourceColumns...)

	return append(cols, SyncedAtColumn, DeletedColumn)
}

var ctasTemplate = template.Must(template.New("ctas").Parse(`CREATE OR REPLACE TABLE {{.Destination}} AS
SELECT
{{- range .Columns}}
  {{.}},
{{- end}}
  CURRENT_TIMESTAMP() AS {{.SyncedAt}},
  FALSE AS {{.Deleted}}
FROM {{.Source}}
WHERE DATE({{.Pickup}}) >= @{{.StartParam}}
  AND DATE({{.Pickup}}) < @{{.EndParam}}
LIMIT @{{.LimitParam}}
`))

var summaryTemplate = template.Must(template.New("summary").Parse(`SELECT
  COUNT(*) AS total_rows,
  CAST(MIN({{.Pickup}}) AS DATETIME) AS min_date,
  CAST(MAX({{.Pickup}}) AS DATETIME) AS max_date,
  COUNT(DISTINCT {{.Vendor}}) AS vendors,
  CAST(ROUND(SUM({{.Amount}}), 2) AS FLOAT64) AS total_revenue
FROM {{.Table}}
`))

// Params are the five values substituted into the ingestion statement.
type Params struct {
	Destination warehouse.TableRef
	Source      warehouse.TableRef
	// StartDate is inclusive, EndDate exclusive.
	StartDate civil.Date
	EndDate   civil.Date
	RowLimit  int64
}

// Validate checks the parameters before any statement is built.
func (p Params) Validate() error {
	if err := p.Destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	if err := p.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if !p.StartDate.IsValid() || !p.EndDate.IsValid() {
		return fmt.Errorf("invalid date window [%s, %s)", p.StartDate, p.EndDate)
	}

	if !p.StartDate.Before(p.EndDate) {
		return fmt.Errorf("empty date window [%s, %s)", p.StartDate, p.EndDate)
	}

	if p.RowLimit < 1 {
		return fmt.Errorf("row limit must be positive, got %d", p.RowLimit)
	}

	return nil
}

// BuildStatement renders the CREATE OR REPLACE TABLE AS SELECT statement.
// Table identifiers cannot be query parameters in BigQuery, so they are validated
// and quoted; the window bounds and the row cap are bound as typed parameters.
func BuildStatement(p Params) (warehouse.Statement, error) {
	if err := p.Validate(); err != nil {
		return warehouse.Statement{}, err
	}

	var buf bytes.Buffer
	err := ctasTemplate.Execute(&buf, map[string]interface{}{
		"Destination": p.Destination.Quoted(),
		"Source":      p.Source.Quoted(),
		"Columns":     SourceColumns,
		"SyncedAt":    SyncedAtColumn,
		"Deleted":     DeletedColumn,
		"Pickup":      PickupColumn,
		"StartParam":  ParamStartDate,
		"EndParam":    ParamEndDate,
		"LimitParam":  ParamRowLimit,
	})
	if err != nil {
		return warehouse.Statement{}, err
	}

	return warehouse.Statement{
		SQL: buf.String(),
		Params: []bigquery.QueryParameter{
			{Name: ParamStartDate, Value: p.StartDate},
			{Name: ParamEndDate, Value: p.EndDate},
			{Name: ParamRowLimit, Value: p.RowLimit},
		},
		JobID: "raw-ingest-ctas",
	}, nil
}

// BuildSummaryStatement renders the read-only verification query.
func BuildSummaryStatement(table warehouse.TableRef) (warehouse.Statement, error) {
	if err := table.Validate(); err != nil {
		return warehouse.Statement{}, err
	}

	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, map[string]interface{}{
		"Table":  table.Quoted(),
		"Pickup": PickupColumn,
		"Vendor": VendorColumn,
		"Amount": AmountColumn,
	})
	if err != nil {
		return warehouse.Statement{}, err
	}

	return warehouse.Statement{
		SQL:   buf.String(),
		JobID: "raw-ingest-verify",
	}, nil
}
