package ingest

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/googleapi"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

var (
	createRe = regexp.MustCompile("CREATE OR REPLACE TABLE `([^`]+)` AS")
	fromRe   = regexp.MustCompile("FROM `([^`]+)`")
	selectRe = regexp.MustCompile(`(?s)SELECT\n(.*)\nFROM`)
	aliasRe  = regexp.MustCompile(`^(.+) AS (\w+)$`)
)

type fakeRow map[string]bigquery.Value

type fakeTable struct {
	columns []string
	rows    []fakeRow
}

// memWarehouse is an in-memory warehouse that understands the statements built by
// this package: it applies the date window and row cap, evaluates the projection
// and computes the verification aggregates.
type memWarehouse struct {
	mu       sync.Mutex
	project  string
	datasets map[string]warehouse.DatasetSpec
	tables   map[string]*fakeTable
	clock    func() time.Time
	closed   bool
}

func newMemWarehouse(project string) *memWarehouse {
	return &memWarehouse{
		project:  project,
		datasets: map[string]warehouse.DatasetSpec{},
		tables:   map[string]*fakeTable{},
		clock:    time.Now,
	}
}

func (m *memWarehouse) addTable(ref warehouse.TableRef, columns []string, rows []fakeRow) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[ref.String()] = &fakeTable{columns: columns, rows: rows}
}

func (m *memWarehouse) table(ref warehouse.TableRef) (*fakeTable, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[ref.String()]

	return t, ok
}

func (m *memWarehouse) ProjectID() string {
	return m.project
}

func (m *memWarehouse) CreateDataset(_ context.Context, ref warehouse.DatasetRef, spec warehouse.DatasetSpec) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if spec.Location == "" {
		return false, &googleapi.Error{Code: http.StatusBadRequest, Message: "invalid location"}
	}

	if _, ok := m.datasets[ref.String()]; ok {
		return false, nil
	}

	m.datasets[ref.String()] = spec

	return true, nil
}

func (m *memWarehouse) Exec(_ context.Context, stmt warehouse.Statement) (*warehouse.JobStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dest := createRe.FindStringSubmatch(stmt.SQL)
	from := fromRe.FindStringSubmatch(stmt.SQL)
	sel := selectRe.FindStringSubmatch(stmt.SQL)
	if dest == nil || from == nil || sel == nil {
		return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: "Syntax error"}
	}

	destDataset := dest[1][:strings.LastIndex(dest[1], ".")]
	if _, ok := m.datasets[destDataset]; !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Dataset " + destDataset}
	}

	src, ok := m.tables[from[1]]
	if !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Table " + from[1]}
	}

	start, _ := stmt.Param(ParamStartDate)
	end, _ := stmt.Param(ParamEndDate)
	limit, _ := stmt.Param(ParamRowLimit)

	now := m.clock()
	out := &fakeTable{}

	type item struct {
		expr, alias string
	}

	var items []item
	for _, line := range strings.Split(sel[1], "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), ",")
		if match := aliasRe.FindStringSubmatch(line); match != nil {
			items = append(items, item{expr: match[1], alias: match[2]})
		} else {
			items = append(items, item{expr: line, alias: line})
		}

		out.columns = append(out.columns, items[len(items)-1].alias)
	}

	for _, row := range src.rows {
		if int64(len(out.rows)) >= limit.(int64) {
			break
		}

		day := row[PickupColumn].(civil.DateTime).Date
		if day.Before(start.(civil.Date)) || !day.Before(end.(civil.Date)) {
			continue
		}

		projected := fakeRow{}
		for _, it := range items {
			switch it.expr {
			case "CURRENT_TIMESTAMP()":
				projected[it.alias] = now
			case "FALSE":
				projected[it.alias] = false
			default:
				v, ok := row[it.expr]
				if !ok {
					return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: "Unrecognized name: " + it.expr}
				}
				projected[it.alias] = v
			}
		}

		out.rows = append(out.rows, projected)
	}

	m.tables[dest[1]] = out

	return &warehouse.JobStats{JobID: stmt.JobID + "_fake", TotalBytesProcessed: int64(len(src.rows)) * 100}, nil
}

func (m *memWarehouse) NumRows(_ context.Context, ref warehouse.TableRef) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[ref.String()]
	if !ok {
		return 0, &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Table " + ref.String()}
	}

	return uint64(len(t.rows)), nil
}

func (m *memWarehouse) QueryRow(_ context.Context, stmt warehouse.Statement, dst interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := fromRe.FindStringSubmatch(stmt.SQL)
	if from == nil {
		return &googleapi.Error{Code: http.StatusBadRequest, Message: "Syntax error"}
	}

	t, ok := m.tables[from[1]]
	if !ok {
		return &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Table " + from[1]}
	}

	summary, ok := dst.(*Summary)
	if !ok {
		return fmt.Errorf("unsupported destination %T", dst)
	}

	*summary = Summary{TotalRows: int64(len(t.rows))}

	vendors := map[string]bool{}
	var revenue float64

	for _, row := range t.rows {
		pickup := row[PickupColumn].(civil.DateTime)
		if !summary.MinPickup.Valid || pickup.Before(summary.MinPickup.DateTime) {
			summary.MinPickup = bigquery.NullDateTime{DateTime: pickup, Valid: true}
		}

		if !summary.MaxPickup.Valid || pickup.After(summary.MaxPickup.DateTime) {
			summary.MaxPickup = bigquery.NullDateTime{DateTime: pickup, Valid: true}
		}

		vendors[row["vendor_id"].(string)] = true
		revenue += row["total_amount"].(float64)
	}

	summary.Vendors = int64(len(vendors))
	if len(t.rows) > 0 {
		summary.TotalRevenue = bigquery.NullFloat64{Float64: math.Round(revenue*100) / 100, Valid: true}
	}

	return nil
}

func (m *memWarehouse) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// trip builds a source row with every projected column plus an extra column
// that the raw table must never receive.
func trip(vendor string, pickup string, total float64) fakeRow {
	dt, err := civil.ParseDateTime(pickup)
	if err != nil {
		panic(err)
	}

	return fakeRow{
		"vendor_id":           vendor,
		"pickup_datetime":     dt,
		"dropoff_datetime":    civil.DateTime{Date: dt.Date, Time: civil.Time{Hour: 23}},
		"passenger_count":     int64(1),
		"trip_distance":       2.5,
		"pickup_location_id":  "132",
		"dropoff_location_id": "236",
		"rate_code":           "1",
		"store_and_fwd_flag":  "N",
		"payment_type":        "1",
		"fare_amount":         total - 3,
		"extra":               0.5,
		"mta_tax":             0.5,
		"tip_amount":          1.0,
		"tolls_amount":        0.0,
		"imp_surcharge":       1.0,
		"total_amount":        total,
		"airport_fee":         1.25,
	}
}

func sourceColumns() []string {
	return append(append([]string{}, SourceColumns...), "airport_fee")
}
