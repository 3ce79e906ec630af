// Package config provides configuration for the raw ingestion command.
//
// It follows the contained Viper pattern: Viper stays inside this package and the
// rest of the codebase receives an explicit Config struct. The warehouse targets,
// source slice and row cap are fixed defaults; only the credentials file and the
// log level are read from the environment.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// CredentialsEnvVar names the service-account key file to authenticate with.
	CredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

	// DefaultKeyFile is used when CredentialsEnvVar is unset and the file exists.
	DefaultKeyFile = "~/.dbt/bigquery-keyfile.json"

	// DateLayout is the layout of the filter window bounds.
	DateLayout = "2006-01-02"
)

const (
	keyProjectID   = "project-id"
	keyDataset     = "dataset"
	keyTable       = "table"
	keyLocation    = "location"
	keyDescription = "description"
	keySource      = "source-table"
	keyStartDate   = "start-date"
	keyEndDate     = "end-date"
	keyRowLimit    = "row-limit"
	keyCredentials = "credentials-file"
	keyDefaultKey  = "default-key-file"
	keyLogLevel    = "log-level"
)

// maxIdentifierLen is the longest accepted dataset or table name.
const maxIdentifierLen = 1024

var (
	projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)
	datasetPattern   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	tablePattern     = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\p{Pc}\p{Pd} ]+$`)
)

// Config is the explicit configuration struct
type Config struct {
	ProjectID   string
	Dataset     string
	Table       string
	Location    string
	Description string

	// SourceTable is the fully-qualified project.dataset.table to copy from.
	SourceTable string
	StartDate   string
	EndDate     string
	RowLimit    int64

	CredentialsFile string
	DefaultKeyFile  string
	LogLevel        string
}

// Init registers the fixed defaults and the environment bindings.
func Init() error {
	viper.SetDefault(keyProjectID, "a8s-marketing")
	viper.SetDefault(keyDataset, "raw_nyc_taxi")
	viper.SetDefault(keyTable, "yellow_tripdata")
	viper.SetDefault(keyLocation, "US")
	viper.SetDefault(keyDescription, "Raw data landing zone - simulates Fivetran sync")
	viper.SetDefault(keySource, "bigquery-public-data.new_york_taxi_trips.tlc_yellow_trips_2022")
	viper.SetDefault(keyStartDate, "2022-01-01")
	viper.SetDefault(keyEndDate, "2022-04-01")
	viper.SetDefault(keyRowLimit, 1000000)
	viper.SetDefault(keyDefaultKey, DefaultKeyFile)
	viper.SetDefault(keyLogLevel, "warn")

	if err := viper.BindEnv(keyCredentials, CredentialsEnvVar); err != nil {
		return fmt.Errorf("failed to bind %s: %w", CredentialsEnvVar, err)
	}

	if err := viper.BindEnv(keyLogLevel, "RAW_INGEST_LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind log level: %w", err)
	}

	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		ProjectID:       viper.GetString(keyProjectID),
		Dataset:         viper.GetString(keyDataset),
		Table:           viper.GetString(keyTable),
		Location:        viper.GetString(keyLocation),
		Description:     viper.GetString(keyDescription),
		SourceTable:     viper.GetString(keySource),
		StartDate:       viper.GetString(keyStartDate),
		EndDate:         viper.GetString(keyEndDate),
		RowLimit:        viper.GetInt64(keyRowLimit),
		CredentialsFile: viper.GetString(keyCredentials),
		DefaultKeyFile:  viper.GetString(keyDefaultKey),
		LogLevel:        viper.GetString(keyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if !projectIDPattern.MatchString(c.ProjectID) {
		return fmt.Errorf("invalid project-id: %q", c.ProjectID)
	}

	if len(c.Dataset) > maxIdentifierLen || !datasetPattern.MatchString(c.Dataset) {
		return fmt.Errorf("invalid dataset: %q", c.Dataset)
	}

	if len(c.Table) > maxIdentifierLen || !tablePattern.MatchString(c.Table) {
		return fmt.Errorf("invalid table: %q", c.Table)
	}

	if c.Location == "" {
		return fmt.Errorf("location must not be empty")
	}

	if parts := strings.Split(c.SourceTable, "."); len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return fmt.Errorf("invalid source-table: %q (must be project.dataset.table)", c.SourceTable)
	}

	start, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start-date %q: %w", c.StartDate, err)
	}

	end, err := time.Parse(DateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end-date %q: %w", c.EndDate, err)
	}

	if !start.Before(end) {
		return fmt.Errorf("start-date %s must be before end-date %s", c.StartDate, c.EndDate)
	}

	if c.RowLimit < 1 {
		return fmt.Errorf("invalid row-limit: %d", c.RowLimit)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}

	return nil
}

// Window returns the parsed [start, end) filter bounds.
func (c *Config) Window() (start, end civil.Date, err error) {
	if start, err = civil.ParseDate(c.StartDate); err != nil {
		return start, end, err
	}

	end, err = civil.ParseDate(c.EndDate)

	return start, end, err
}

// DatasetID returns the project-qualified dataset identifier.
func (c *Config) DatasetID() string {
	return c.ProjectID + "." + c.Dataset
}

// TableID returns the fully-qualified destination table identifier.
func (c *Config) TableID() string {
	return c.DatasetID() + "." + c.Table
}
