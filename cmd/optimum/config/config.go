// Package config loads cmd/optimum's persistent defaults from a YAML
// file, grounded on jinterlante1206-AleutianLocal's cmd/aleutian/config
// loader: a package-level singleton populated once via sync.Once, a
// default written out the first time no file exists, and plain
// yaml.Unmarshal/Marshal against a single settings struct.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings are the defaults a run/resume invocation falls back to when a
// flag isn't set on the command line.
type Settings struct {
	Solver      string  `yaml:"solver"`
	Problem     string  `yaml:"problem"`
	Dim         int     `yaml:"dim"`
	Iters       uint64  `yaml:"iters"`
	Particles   int     `yaml:"particles"`
	Seed        int64   `yaml:"seed"`
	Checkpoint  string  `yaml:"checkpoint"`
	CheckpointN uint64  `yaml:"checkpoint_every"`
	Inertia     float64 `yaml:"inertia"`
	Cognition   float64 `yaml:"cognition"`
	Social      float64 `yaml:"social"`
}

func defaults() Settings {
	return Settings{
		Solver:      "pso",
		Problem:     "sphere",
		Dim:         2,
		Iters:       100,
		Particles:   30,
		Seed:        0,
		CheckpointN: 10,
		Inertia:     0.8,
		Cognition:   0.5,
		Social:      0.5,
	}
}

// Global holds the loaded settings after Load returns successfully.
var Global Settings

var once sync.Once
var loadErr error

// Load reads path (or, if empty, ~/.optimum.yaml) into Global, writing a
// default file the first time nothing exists yet. Safe to call more than
// once; only the first call does any I/O.
func Load(path string) error {
	once.Do(func() {
		loadErr = loadInternal(path)
	})
	return loadErr
}

func loadInternal(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "config: resolve home directory")
		}
		path = filepath.Join(home, ".optimum.yaml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		Global = defaults()
		return createDefault(path)
	} else if err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}

	Global = defaults()
	if err := yaml.Unmarshal(data, &Global); err != nil {
		return errors.Wrapf(err, "config: parse %s", path)
	}
	return nil
}

func createDefault(path string) error {
	data, err := yaml.Marshal(defaults())
	if err != nil {
		return errors.Wrap(err, "config: marshal defaults")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "config: write %s", path)
	}
	return nil
}
