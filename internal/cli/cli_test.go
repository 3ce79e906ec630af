package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a8s-marketing/raw-ingest/internal/config"
	"github.com/a8s-marketing/raw-ingest/internal/ingest"
	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

func init() {
	color.NoColor = true
}

func testConfig() *config.Config {
	return &config.Config{
		ProjectID:   "a8s-marketing",
		Dataset:     "raw_nyc_taxi",
		Table:       "yellow_tripdata",
		Location:    "US",
		Description: "Raw data landing zone - simulates Fivetran sync",
		SourceTable: "bigquery-public-data.new_york_taxi_trips.tlc_yellow_trips_2022",
		StartDate:   "2022-01-01",
		EndDate:     "2022-04-01",
		RowLimit:    1000000,
		LogLevel:    "warn",
	}
}

func TestNewPipelineMapsConfig(t *testing.T) {
	log, _ := test.NewNullLogger()
	connect := func(context.Context) (warehouse.Warehouse, error) {
		return nil, errors.New("unused")
	}

	p, err := newPipeline(testConfig(), connect, log)
	require.NoError(t, err)

	assert.Equal(t, warehouse.DatasetRef{ProjectID: "a8s-marketing", DatasetID: "raw_nyc_taxi"}, p.Dataset)
	assert.Equal(t, warehouse.DatasetSpec{
		Location:    "US",
		Description: "Raw data landing zone - simulates Fivetran sync",
	}, p.DatasetSpec)
	assert.Equal(t, ingest.Params{
		Destination: warehouse.TableRef{ProjectID: "a8s-marketing", DatasetID: "raw_nyc_taxi", TableID: "yellow_tripdata"},
		Source:      warehouse.TableRef{ProjectID: "bigquery-public-data", DatasetID: "new_york_taxi_trips", TableID: "tlc_yellow_trips_2022"},
		StartDate:   civil.Date{Year: 2022, Month: time.January, Day: 1},
		EndDate:     civil.Date{Year: 2022, Month: time.April, Day: 1},
		RowLimit:    1000000,
	}, p.Params)
	assert.NotNil(t, p.Connect)
}

func TestNewPipelineRejectsBadSource(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := testConfig()
	cfg.SourceTable = "tlc_yellow_trips_2022"

	_, err := newPipeline(cfg, nil, log)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := newLogger(tt.level, &buf)
			assert.Equal(t, tt.want, log.GetLevel())

			log.Warn("level check")
			assert.Equal(t, tt.want >= logrus.WarnLevel, buf.Len() > 0)
		})
	}
}

func TestReporterSuccessfulRun(t *testing.T) {
	var out bytes.Buffer
	r := newConsoleReporter(&out, testConfig())

	res := &ingest.Result{
		ProjectID: "a8s-marketing",
		Rows:      1000000,
		Summary: &ingest.Summary{
			TotalRows: 1000000,
			MinPickup: bigquery.NullDateTime{Valid: true, DateTime: civil.DateTime{
				Date: civil.Date{Year: 2022, Month: time.January, Day: 1},
				Time: civil.Time{Hour: 0, Minute: 3, Second: 12},
			}},
			MaxPickup: bigquery.NullDateTime{Valid: true, DateTime: civil.DateTime{
				Date: civil.Date{Year: 2022, Month: time.March, Day: 31},
				Time: civil.Time{Hour: 23, Minute: 59, Second: 1},
			}},
			Vendors:      3,
			TotalRevenue: bigquery.NullFloat64{Valid: true, Float64: 21345678.9},
		},
	}

	for _, step := range ingest.Steps {
		r.StepStarted(step)
		r.StepFinished(ingest.StepResult{Step: step, Status: ingest.StatusOK}, res)
	}

	got := out.String()
	assert.Contains(t, got, "✓ Connected to BigQuery project: a8s-marketing")
	assert.Contains(t, got, "✓ Dataset ready: a8s-marketing.raw_nyc_taxi")
	assert.Contains(t, got, "⏳ Ingesting data from bigquery-public-data.new_york_taxi_trips.tlc_yellow_trips_2022...")
	assert.Contains(t, got, "Date range: 2022-01-01 to 2022-04-01")
	assert.Contains(t, got, "Row limit: 1,000,000")
	assert.Contains(t, got, "✓ Table created: a8s-marketing.raw_nyc_taxi.yellow_tripdata")
	assert.Contains(t, got, "✓ Rows ingested: 1,000,000")
	assert.Contains(t, got, "📊 Data Verification:")
	assert.Contains(t, got, "2022-01-01 00:03:12 to 2022-03-31 23:59:01")
	assert.Contains(t, got, "$21,345,678.90")
}

func TestReporterEmptySummary(t *testing.T) {
	var out bytes.Buffer
	r := newConsoleReporter(&out, testConfig())

	r.StepFinished(ingest.StepResult{Step: ingest.StepVerify, Status: ingest.StatusOK}, &ingest.Result{
		Summary: &ingest.Summary{},
	})

	got := out.String()
	assert.Contains(t, got, "N/A to N/A")
	assert.NotContains(t, got, "$")
}

func TestReporterFailedStep(t *testing.T) {
	var out bytes.Buffer
	r := newConsoleReporter(&out, testConfig())

	r.StepFinished(ingest.StepResult{
		Step:     ingest.StepProvision,
		Status:   ingest.StatusFailed,
		Duration: 1500 * time.Millisecond,
		Err:      errors.New("denied"),
	}, &ingest.Result{})

	got := out.String()
	assert.Contains(t, got, "✗ Step provision failed after 1.5s")
	assert.NotContains(t, got, "Dataset ready")
}

func TestPrintCompletion(t *testing.T) {
	var out bytes.Buffer

	printCompletion(&out, &ingest.Result{
		Steps: []ingest.StepResult{
			{Step: ingest.StepConnect, Status: ingest.StatusOK, Duration: 250 * time.Millisecond},
			{Step: ingest.StepIngest, Status: ingest.StatusOK, Duration: 42 * time.Second},
		},
		Elapsed: 43 * time.Second,
	})

	got := out.String()
	assert.Contains(t, got, "connect")
	assert.Contains(t, got, "250ms")
	assert.Contains(t, got, "42s")
	assert.Contains(t, got, "Total time: 43s")
	assert.Contains(t, got, "✅ Ingestion complete!")
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer

	printBanner(&out, time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC))

	got := out.String()
	assert.Contains(t, got, "NYC Taxi Data Ingestion")
	assert.Contains(t, got, "Started at: 2024-05-02 09:30:00")
}

func TestExecuteReportsInvalidEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv(config.CredentialsEnvVar, "")
	t.Setenv("RAW_INGEST_LOG_LEVEL", "bogus")
	require.NoError(t, config.Init())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetArgs([]string{})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := execute(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-level")
	assert.Contains(t, stderr.String(), "✗ invalid log-level")
	assert.NotContains(t, stdout.String(), "NYC Taxi Data Ingestion")
}

func TestExecuteRejectsArgumentsAndFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"positional argument", []string{"extra"}},
		{"version flag", []string{"--version"}},
		{"unknown flag", []string{"--row-limit=10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := newRootCmd("test")
			cmd.SetArgs(tt.args)
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)

			err := execute(cmd)
			require.Error(t, err)
			assert.Contains(t, stderr.String(), "✗ ")
			assert.Empty(t, stdout.String())
		})
	}
}
