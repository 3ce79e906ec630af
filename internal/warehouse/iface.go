//go:generate mockery --output=./mocks --all

package warehouse

import (
	"context"
)

// Warehouse is the slice of BigQuery the ingestion steps depend on.
type Warehouse interface {
	// ProjectID is the project jobs are billed to and run in.
	ProjectID() string

	// CreateDataset creates the dataset. created is false when it already existed,
	// which is not an error.
	CreateDataset(ctx context.Context, ref DatasetRef, spec DatasetSpec) (created bool, err error)

	// Exec submits the statement as a query job and blocks until the job is done.
	Exec(ctx context.Context, stmt Statement) (*JobStats, error)

	// NumRows returns the row count recorded in the table's metadata.
	NumRows(ctx context.Context, ref TableRef) (uint64, error)

	// QueryRow runs the statement and loads its first row into dst. It returns
	// ErrNoRows when the result is empty.
	QueryRow(ctx context.Context, stmt Statement, dst interface{}) error

	Close() error
}
