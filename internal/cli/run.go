package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/a8s-marketing/raw-ingest/internal/config"
	"github.com/a8s-marketing/raw-ingest/internal/credentials"
	"github.com/a8s-marketing/raw-ingest/internal/ingest"
	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

var rule = strings.Repeat("=", 60)

func run(cmd *cobra.Command, version string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()
	fs := afero.NewOsFs()

	src := credentials.NewResolver(fs, cfg.DefaultKeyFile).Resolve(cfg.CredentialsFile)
	log.WithFields(logrus.Fields{
		"version":     version,
		"credentials": src.Origin.String(),
	}).Debug("credentials resolved")

	printBanner(out, time.Now())
	if src.HasKeyFile() {
		fmt.Fprintf(out, "Using keyfile: %s\n\n", src.Path)
	}

	p, err := newPipeline(cfg, func(ctx context.Context) (warehouse.Warehouse, error) {
		return warehouse.NewClient(ctx, cfg.ProjectID, src, fs, log)
	}, log)
	if err != nil {
		return err
	}

	p.Reporter = newConsoleReporter(out, cfg)

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	printCompletion(out, res)

	return nil
}

func newPipeline(cfg *config.Config, connect ingest.ConnectFunc, log logrus.FieldLogger) (*ingest.Pipeline, error) {
	source, err := warehouse.ParseTableRef(cfg.SourceTable)
	if err != nil {
		return nil, err
	}

	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	dataset := warehouse.DatasetRef{ProjectID: cfg.ProjectID, DatasetID: cfg.Dataset}

	return &ingest.Pipeline{
		Connect: connect,
		Dataset: dataset,
		DatasetSpec: warehouse.DatasetSpec{
			Location:    cfg.Location,
			Description: cfg.Description,
		},
		Params: ingest.Params{
			Destination: dataset.Table(cfg.Table),
			Source:      source,
			StartDate:   start,
			EndDate:     end,
			RowLimit:    cfg.RowLimit,
		},
		Log: log,
	}, nil
}

func newLogger(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)

	return log
}

func printBanner(out io.Writer, startedAt time.Time) {
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "NYC Taxi Data Ingestion")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Started at: %s\n\n", startedAt.Format("2006-01-02 15:04:05"))
}

func printCompletion(out io.Writer, res *ingest.Result) {
	fmt.Fprintln(out, "\n"+rule)
	if len(res.Steps) > 0 {
		stepTable(out, res.Steps)
	}
	fmt.Fprintf(out, "Total time: %s\n", res.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(out, rule)
	okColor.Fprintln(out, "✅ Ingestion complete!")
	fmt.Fprintln(out, rule)
}
