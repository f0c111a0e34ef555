package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

const manifestName = "peri.yml"

type periModule struct {
	Package  string `yaml:"package"`
	Entry    string `yaml:"entry"`
	LogLevel string `yaml:"log-level,omitempty"`

	path string
}

func loadManifest(path string) (*periModule, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var doc periModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, tracerr.Errorf("error reading %s: %w", path, err)
	}
	doc.path = path

	return &doc, nil
}

// loadManifestIfPresent returns nil without an error when path does not exist.
func loadManifestIfPresent(path string) (*periModule, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return loadManifest(path)
}

// entryPath resolves the entry file relative to the manifest's directory.
func (m *periModule) entryPath() string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.path), m.Entry)
}

func writeManifest(path string, m periModule) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return tracerr.Errorf("error creating %s: %w", path, err)
	}

	if err := ioutil.WriteFile(path, out, 0644); err != nil {
		return tracerr.Errorf("error creating %s: %w", path, err)
	}
	return nil
}
