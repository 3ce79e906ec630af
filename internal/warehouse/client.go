package warehouse

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/a8s-marketing/raw-ingest/internal/credentials"
)

// CloudPlatformScope grants full access to Google Cloud APIs.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// NewClient builds a BigQuery client for projectID. A source naming a key file is
// loaded as a service-account credential; otherwise Application Default
// Credentials are discovered.
func NewClient(ctx context.Context, projectID string, src credentials.Source, fs afero.Fs, log logrus.FieldLogger) (*BigQuery, error) {
	creds, err := findCredentials(ctx, src, fs, log)
	if err != nil {
		return nil, err
	}

	client, err := bigquery.NewClient(ctx, projectID, option.WithCredentials(creds))
	if err != nil {
		return nil, errors.Wrapf(err, "creating BigQuery client for %s", projectID)
	}

	return New(client, log), nil
}

func findCredentials(ctx context.Context, src credentials.Source, fs afero.Fs, log logrus.FieldLogger) (*google.Credentials, error) {
	if !src.HasKeyFile() {
		creds, err := google.FindDefaultCredentials(ctx, CloudPlatformScope)
		if err != nil {
			return nil, errors.Wrap(err, "finding default credentials")
		}

		return creds, nil
	}

	key, err := credentials.LoadKeyFile(fs, src.Path)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, key.Raw, CloudPlatformScope)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing service account key %s", src.Path)
	}

	log.WithFields(logrus.Fields{
		"client_email": key.ClientEmail,
		"key_project":  key.ProjectID,
	}).Debug("loaded service account key")

	return creds, nil
}
