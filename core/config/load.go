package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
//
// Settings missing from the file keep their default values.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	// BasePathFs rejects every name under a relative base.
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return loadFs(afero.NewBasePathFs(afero.NewOsFs(), path), path)
}

func loadFs(fs afero.Fs, dir string) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}

	out.configurationDir = dir
	out.configFs = fs
	return out, nil
}

// Initialize writes the default configuration to the directory if one
// doesn't exist and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	fs := afero.NewBasePathFs(osFs, dir)

	exists, err := afero.Exists(fs, ConfigurationName)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, skipping", filepath.Join(dir, ConfigurationName))
	default:
		logger.Printf("Writing default %s", filepath.Join(dir, ConfigurationName))
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return loadFs(fs, dir)
}
