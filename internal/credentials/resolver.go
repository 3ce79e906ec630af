// Package credentials decides which service-account key file, if any, the warehouse
// client authenticates with.
//
// Resolution is an ordered chain evaluated once at startup:
//
//  1. the key file named by GOOGLE_APPLICATION_CREDENTIALS
//  2. the default key file under the user's home directory, when it exists
//  3. ambient Application Default Credentials
//
// Resolution never fails. A missing or unreadable key file surfaces later, when the
// client is built.
package credentials

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Origin records which link of the chain produced a Source.
type Origin int

const (
	OriginAmbient Origin = iota
	OriginEnv
	OriginDefaultPath
)

func (o Origin) String() string {
	switch o {
	case OriginEnv:
		return "environment"
	case OriginDefaultPath:
		return "default path"
	default:
		return "ambient"
	}
}

// Source describes where credentials come from.
type Source struct {
	Origin Origin
	// Path is the key file to load. Empty for OriginAmbient.
	Path string
}

// HasKeyFile reports whether the source names a key file.
func (s Source) HasKeyFile() bool {
	return s.Path != ""
}

func (s Source) String() string {
	if !s.HasKeyFile() {
		return s.Origin.String()
	}

	return fmt.Sprintf("%s (%s)", s.Path, s.Origin)
}

// Resolver walks the credential chain against a filesystem.
type Resolver struct {
	Fs          afero.Fs
	DefaultPath string
}

// NewResolver returns a Resolver that checks for key files on fs. A nil fs means the OS filesystem.
func NewResolver(fs afero.Fs, defaultPath string) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Resolver{
		Fs:          fs,
		DefaultPath: defaultPath,
	}
}

// Resolve returns the credential source to use. envPath is the value of the
// credentials environment variable, empty when unset.
func (r *Resolver) Resolve(envPath string) Source {
	if envPath != "" {
		return Source{Origin: OriginEnv, Path: envPath}
	}

	if r.DefaultPath == "" {
		return Source{Origin: OriginAmbient}
	}

	path, err := homedir.Expand(r.DefaultPath)
	if err != nil {
		return Source{Origin: OriginAmbient}
	}

	if ok, err := afero.Exists(r.Fs, path); err == nil && ok {
		return Source{Origin: OriginDefaultPath, Path: path}
	}

	return Source{Origin: OriginAmbient}
}
