package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// passlens.toml records run settings: the compiler invocation that produced
// the dumps (owned by the external build step, not by this tool) and the
// categorizer rule table to use. The --rules flag overrides the manifest.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project  projectSection  `toml:"project"`
	Compiler compilerSection `toml:"compiler"`
	Rules    rulesSection    `toml:"rules"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type compilerSection struct {
	Command  string   `toml:"command"`
	OptLevel string   `toml:"opt-level"`
	Tiers    []string `toml:"tiers"`
}

type rulesSection struct {
	Path string `toml:"path"`
}

func findPasslensToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "passlens.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findPasslensToml(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
