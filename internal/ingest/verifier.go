package ingest

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/sirupsen/logrus"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

// Summary is the single row of the verification query. On an empty table the
// aggregates other than the counts are NULL.
type Summary struct {
	TotalRows    int64                 `bigquery:"total_rows"`
	MinPickup    bigquery.NullDateTime `bigquery:"min_date"`
	MaxPickup    bigquery.NullDateTime `bigquery:"max_date"`
	Vendors      int64                 `bigquery:"vendors"`
	TotalRevenue bigquery.NullFloat64  `bigquery:"total_revenue"`
}

// Verify runs the read-only summary query over the raw table.
func Verify(ctx context.Context, wh warehouse.Warehouse, table warehouse.TableRef, location string, log logrus.FieldLogger) (*Summary, error) {
	stmt, err := BuildSummaryStatement(table)
	if err != nil {
		return nil, stepError(StepVerify, err)
	}

	stmt.Location = location

	var summary Summary
	if err := wh.QueryRow(ctx, stmt, &summary); err != nil {
		return nil, stepError(StepVerify, err)
	}

	log.WithFields(logrus.Fields{
		"step":       StepVerify.String(),
		"table":      table.String(),
		"total_rows": summary.TotalRows,
		"vendors":    summary.Vendors,
	}).Info("verification complete")

	return &summary, nil
}
