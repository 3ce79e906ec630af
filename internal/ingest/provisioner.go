package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/a8s-marketing/raw-ingest/internal/warehouse"
)

// EnsureDataset creates the dataset when it is absent. An existing dataset is
// left as is, so repeated calls succeed.
func EnsureDataset(ctx context.Context, wh warehouse.Warehouse, ref warehouse.DatasetRef, spec warehouse.DatasetSpec, log logrus.FieldLogger) error {
	log = log.WithFields(logrus.Fields{
		"step":     StepProvision.String(),
		"dataset":  ref.String(),
		"location": spec.Location,
	})

	created, err := wh.CreateDataset(ctx, ref, spec)
	if err != nil {
		log.WithError(err).Error("error creating dataset")
		return stepError(StepProvision, err)
	}

	log.WithField("created", created).Info("dataset ready")

	return nil
}
