// Package warehouse builds the authenticated BigQuery client and exposes the few
// operations the ingestion steps run against it.
package warehouse

import (
	"context"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

var _ Warehouse = (*BigQuery)(nil)

// BigQuery implements Warehouse on top of a *bigquery.Client.
type BigQuery struct {
	client *bigquery.Client
	log    logrus.FieldLogger
}

// New wraps an existing client.
func New(client *bigquery.Client, log logrus.FieldLogger) *BigQuery {
	return &BigQuery{client: client, log: log}
}

func (b *BigQuery) ProjectID() string {
	return b.client.Project()
}

func (b *BigQuery) CreateDataset(ctx context.Context, ref DatasetRef, spec DatasetSpec) (bool, error) {
	md := &bigquery.DatasetMetadata{
		Location:    spec.Location,
		Description: spec.Description,
	}

	err := b.client.DatasetInProject(ref.ProjectID, ref.DatasetID).Create(ctx, md)
	if err == nil {
		return true, nil
	}

	if isAlreadyExists(err) {
		return false, nil
	}

	return false, errors.Wrapf(err, "creating dataset %s", ref)
}

func (b *BigQuery) Exec(ctx context.Context, stmt Statement) (*JobStats, error) {
	job, err := b.query(stmt).Run(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "submitting query job")
	}

	b.log.WithField("job_id", job.ID()).Debug("query job submitted")

	status, err := job.Wait(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "waiting for job %s", job.ID())
	}

	if err := status.Err(); err != nil {
		return nil, errors.Wrapf(err, "job %s failed", job.ID())
	}

	stats := &JobStats{JobID: job.ID()}
	if s := status.Statistics; s != nil {
		stats.TotalBytesProcessed = s.TotalBytesProcessed
		if !s.StartTime.IsZero() && s.EndTime.After(s.StartTime) {
			stats.Duration = s.EndTime.Sub(s.StartTime)
		}
	}

	return stats, nil
}

func (b *BigQuery) NumRows(ctx context.Context, ref TableRef) (uint64, error) {
	md, err := b.client.DatasetInProject(ref.ProjectID, ref.DatasetID).Table(ref.TableID).Metadata(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "reading metadata of %s", ref)
	}

	return md.NumRows, nil
}

func (b *BigQuery) QueryRow(ctx context.Context, stmt Statement, dst interface{}) error {
	it, err := b.query(stmt).Read(ctx)
	if err != nil {
		return errors.Wrap(err, "running query")
	}

	err = it.Next(dst)
	if err == iterator.Done {
		return ErrNoRows
	}

	if err != nil {
		return errors.Wrap(err, "reading query result")
	}

	return nil
}

func (b *BigQuery) Close() error {
	return b.client.Close()
}

func (b *BigQuery) query(stmt Statement) *bigquery.Query {
	q := b.client.Query(stmt.SQL)
	q.Parameters = stmt.Params
	q.Location = stmt.Location

	if stmt.JobID != "" {
		q.JobIDConfig = bigquery.JobIDConfig{
			JobID:          stmt.JobID,
			AddJobIDSuffix: true,
		}
	}

	return q
}

func isAlreadyExists(err error) bool {
	var gapiErr *googleapi.Error
	if errors.As(err, &gapiErr) {
		return gapiErr.Code == http.StatusConflict
	}

	return false
}
