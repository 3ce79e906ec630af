package credentials

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// ServiceAccountType is the "type" of a service-account JSON key.
const ServiceAccountType = "service_account"

// KeyFile is the subset of a service-account JSON key the command inspects.
// Raw holds the file contents for the OAuth2 credential parser.
type KeyFile struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`

	Raw []byte `json:"-"`
}

// LoadKeyFile reads and checks a service-account key file.
func LoadKeyFile(fs afero.Fs, path string) (*KeyFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var key KeyFile
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}

	key.Raw = data

	return &key, nil
}

// Validate ensures the key is a usable service-account key.
func (k *KeyFile) Validate() error {
	if k.Type != ServiceAccountType {
		return fmt.Errorf("unsupported credential type %q (must be %s)", k.Type, ServiceAccountType)
	}

	if k.ClientEmail == "" {
		return fmt.Errorf("missing client_email")
	}

	if k.PrivateKey == "" {
		return fmt.Errorf("missing private_key")
	}

	return nil
}
