package warehouse

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
)

// ErrNoRows is returned by QueryRow when the result set is empty.
var ErrNoRows = errors.New("query returned no rows")

// DatasetRef identifies a dataset.
type DatasetRef struct {
	ProjectID string
	DatasetID string
}

func (d DatasetRef) String() string {
	return d.ProjectID + "." + d.DatasetID
}

// Table returns a reference to a table inside the dataset.
func (d DatasetRef) Table(tableID string) TableRef {
	return TableRef{ProjectID: d.ProjectID, DatasetID: d.DatasetID, TableID: tableID}
}

// DatasetSpec holds the attributes a dataset is created with.
type DatasetSpec struct {
	Location    string
	Description string
}

// TableRef identifies a table.
type TableRef struct {
	ProjectID string
	DatasetID string
	TableID   string
}

// ParseTableRef parses a fully-qualified project.dataset.table identifier.
func ParseTableRef(s string) (TableRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return TableRef{}, fmt.Errorf("table %q is not project.dataset.table", s)
	}

	ref := TableRef{ProjectID: parts[0], DatasetID: parts[1], TableID: parts[2]}
	if err := ref.Validate(); err != nil {
		return TableRef{}, err
	}

	return ref, nil
}

// Validate rejects empty segments and characters that would break out of a
// quoted identifier.
func (t TableRef) Validate() error {
	for _, part := range []string{t.ProjectID, t.DatasetID, t.TableID} {
		if part == "" {
			return fmt.Errorf("table %q has an empty segment", t.String())
		}

		if strings.ContainsAny(part, "`\\.\n\r") {
			return fmt.Errorf("table %q contains an illegal character", t.String())
		}
	}

	return nil
}

func (t TableRef) String() string {
	return t.ProjectID + "." + t.DatasetID + "." + t.TableID
}

// Quoted returns the identifier in backticks for use in GoogleSQL.
func (t TableRef) Quoted() string {
	return "`" + t.String() + "`"
}

// Dataset returns the dataset holding the table.
func (t TableRef) Dataset() DatasetRef {
	return DatasetRef{ProjectID: t.ProjectID, DatasetID: t.DatasetID}
}

// Statement is a GoogleSQL statement with its named parameters.
type Statement struct {
	SQL    string
	Params []bigquery.QueryParameter

	// JobID is a job ID prefix; a random suffix is appended.
	JobID string
	// Location pins the job to a region. Empty lets BigQuery choose.
	Location string
}

// Param returns the value bound to name and whether it is present.
func (s Statement) Param(name string) (interface{}, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p.Value, true
		}
	}

	return nil, false
}

// JobStats summarises a finished query job.
type JobStats struct {
	JobID               string
	TotalBytesProcessed int64
	Duration            time.Duration
}
