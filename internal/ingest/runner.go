package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

// Runner lands the configured source slice into the raw table.
type Runner struct {
	Warehouse warehouse.Warehouse
	Params    Params
	// Location pins the query job to the dataset's region.
	Location string
	Log      logrus.FieldLogger
}

// Run replaces the raw table with the filtered, capped source rows and returns
// the resulting row count. The statement either commits in full or leaves the
// previous table untouched.
func (r *Runner) Run(ctx context.Context) (uint64, error) {
	log := r.Log.WithFields(logrus.Fields{
		"step":  StepIngest.String(),
		"table": r.Params.Destination.String(),
	})

	stmt, err := BuildStatement(r.Params)
	if err != nil {
		return 0, stepError(StepIngest, err)
	}

	stmt.Location = r.Location

	log.WithFields(logrus.Fields{
		"source":    r.Params.Source.String(),
		"start":     r.Params.StartDate.String(),
		"end":       r.Params.EndDate.String(),
		"row_limit": r.Params.RowLimit,
	}).Debug("submitting ingestion statement")

	stats, err := r.Warehouse.Exec(ctx, stmt)
	if err != nil {
		return 0, stepError(StepIngest, err)
	}

	log.WithFields(logrus.Fields{
		"job_id":          stats.JobID,
		"bytes_processed": stats.TotalBytesProcessed,
		"job_duration":    stats.Duration,
	}).Debug("ingestion job finished")

	rows, err := r.Warehouse.NumRows(ctx, r.Params.Destination)
	if err != nil {
		return 0, stepError(StepIngest, err)
	}

	log.WithField("rows", rows).Info("table created")

	return rows, nil
}
