// Package rawingest lands a slice of the public NYC yellow taxi trips into the raw
// layer of the a8s-marketing BigQuery warehouse.
//
// It stands in for a managed sync connector: downstream transformation models
// read the raw table exactly as they would read a connector-maintained one,
// including the _sync_timestamp and _deleted metadata columns.
//
// # Installation
//
//	go install github.com/a8s-marketing/raw-ingest/cmd/ingest-raw@latest
//
// # Quick Start
//
//	export GOOGLE_APPLICATION_CREDENTIALS=~/.dbt/bigquery-keyfile.json
//	ingest-raw
//
// # Architecture
//
// A run is four steps executed in order, stopping at the first failure:
//   - connect: resolve credentials and build the BigQuery client
//   - provision: ensure the raw_nyc_taxi dataset exists in US
//   - ingest: replace raw_nyc_taxi.yellow_tripdata with one CREATE OR REPLACE TABLE AS SELECT
//   - verify: print row count, pickup range, vendor count and revenue
//
// Credentials are taken from GOOGLE_APPLICATION_CREDENTIALS, then
// ~/.dbt/bigquery-keyfile.json, then Application Default Credentials.
// Set RAW_INGEST_LOG_LEVEL=debug for structured step logs on stderr.
package rawingest
