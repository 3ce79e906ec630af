package ingest

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

// ConnectFunc builds the authenticated warehouse client.
type ConnectFunc func(ctx context.Context) (warehouse.Warehouse, error)

// Reporter is told about step progress as the pipeline runs.
type Reporter interface {
	StepStarted(step Step)
	StepFinished(step StepResult, run *Result)
}

type nopReporter struct{}

func (nopReporter) StepStarted(Step)                 {}
func (nopReporter) StepFinished(StepResult, *Result) {}

// Pipeline runs connect, provision, ingest and verify in order. The first failing
// step ends the run; nothing is retried.
type Pipeline struct {
	Connect     ConnectFunc
	Dataset     warehouse.DatasetRef
	DatasetSpec warehouse.DatasetSpec
	Params      Params
	Log         logrus.FieldLogger
	Reporter    Reporter

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result collects what each step produced.
type Result struct {
	ProjectID string
	Rows      uint64
	Summary   *Summary
	Steps     []StepResult
	StartedAt time.Time
	Elapsed   time.Duration
}

// Run executes the pipeline. The returned Result is never nil and holds the steps
// that ran, including a failed one.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	reporter := p.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	res := &Result{StartedAt: now()}
	defer func() { res.Elapsed = now().Sub(res.StartedAt) }()

	var wh warehouse.Warehouse

	steps := []struct {
		step Step
		run  func() error
	}{
		{StepConnect, func() error {
			var err error
			if wh, err = p.Connect(ctx); err != nil {
				return stepError(StepConnect, err)
			}

			if wh == nil {
				return stepError(StepConnect, errors.New("no BigQuery client was built"))
			}

			res.ProjectID = wh.ProjectID()
			p.Log.WithFields(logrus.Fields{
				"step":    StepConnect.String(),
				"project": res.ProjectID,
			}).Info("connected to BigQuery")

			return nil
		}},
		{StepProvision, func() error {
			return EnsureDataset(ctx, wh, p.Dataset, p.DatasetSpec, p.Log)
		}},
		{StepIngest, func() error {
			runner := &Runner{
				Warehouse: wh,
				Params:    p.Params,
				Location:  p.DatasetSpec.Location,
				Log:       p.Log,
			}

			var err error
			res.Rows, err = runner.Run(ctx)

			return err
		}},
		{StepVerify, func() error {
			var err error
			res.Summary, err = Verify(ctx, wh, p.Params.Destination, p.DatasetSpec.Location, p.Log)

			return err
		}},
	}

	defer func() {
		if wh == nil {
			return
		}

		if err := wh.Close(); err != nil {
			p.Log.WithError(err).Warn("closing BigQuery client")
		}
	}()

	for _, s := range steps {
		reporter.StepStarted(s.step)

		start := now()
		err := s.run()
		sr := StepResult{Step: s.step, Status: StatusOK, Duration: now().Sub(start), Err: err}

		log := p.Log.WithFields(logrus.Fields{
			"step":     s.step.String(),
			"duration": sr.Duration,
		})

		if err != nil {
			sr.Status = StatusFailed
			log.WithError(err).Debug("step failed")
		} else {
			log.Debug("step finished")
		}

		res.Steps = append(res.Steps, sr)
		reporter.StepFinished(sr, res)

		if err != nil {
			return res, err
		}
	}

	return res, nil
}
