// Package scenario loads and validates uibench benchmark configuration.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/ohir/uimodel/pkg/errors"
	"github.com/ohir/uimodel/pkg/flagreg"
)

// FileName is the scenario file uibench looks for in the working directory.
const FileName = "uibench.yaml"

// Scenario configures one benchmark session.
type Scenario struct {
	// Shapes are the fan-out populations to run.
	Shapes []string `yaml:"shapes,omitempty"`
	// Elements is the population size grid.
	Elements []int `yaml:"elements,omitempty"`
	// Flags is the number of distinct model flags in play.
	Flags int `yaml:"flags,omitempty"`
	// Rounds is the number of measured commits per configuration.
	Rounds int `yaml:"rounds,omitempty"`
	// Warmup is the number of unmeasured commits before sampling.
	Warmup int `yaml:"warmup,omitempty"`
}

// Default returns the scenario used when no file or flags say otherwise.
func Default() *Scenario {
	return &Scenario{
		Shapes:   []string{"steady", "striped", "tiered", "churn"},
		Elements: []int{100, 1_000, 10_000},
		Flags:    16,
		Rounds:   200,
		Warmup:   25,
	}
}

// LoadOptional reads FileName from dir if present. A missing file yields
// the default scenario; a present file overrides only the fields it sets.
func LoadOptional(dir string) (*Scenario, error) {
	s, err := load(filepath.Join(dir, FileName), true)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads an explicitly named scenario file. Unlike LoadOptional it
// fails when the file is missing.
func LoadFile(path string) (*Scenario, error) {
	return load(path, false)
}

func load(path string, optional bool) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file Scenario
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &errors.Violation{
			Op:     "scenario.Load",
			Kind:   errors.KindConfig,
			Detail: fmt.Sprintf("failed to parse %s", path),
			Err:    err,
		}
	}

	s := Default()
	if len(file.Shapes) > 0 {
		s.Shapes = file.Shapes
	}
	if len(file.Elements) > 0 {
		s.Elements = file.Elements
	}
	if file.Flags != 0 {
		s.Flags = file.Flags
	}
	if file.Rounds != 0 {
		s.Rounds = file.Rounds
	}
	if file.Warmup != 0 {
		s.Warmup = file.Warmup
	}
	return s, nil
}

// Validate checks the numeric ranges. Shape names are validated by the
// command against its shape registry.
func (s *Scenario) Validate() error {
	if len(s.Shapes) == 0 {
		return violation("no shapes selected")
	}
	if s.Flags < 1 || s.Flags > flagreg.Capacity {
		return violation(fmt.Sprintf("flags = %d, want 1..%d", s.Flags, flagreg.Capacity))
	}
	if len(s.Elements) == 0 {
		return violation("no element counts selected")
	}
	for _, n := range s.Elements {
		if n < 1 {
			return violation(fmt.Sprintf("elements = %d, want at least 1", n))
		}
	}
	if s.Rounds < 1 {
		return violation(fmt.Sprintf("rounds = %d, want at least 1", s.Rounds))
	}
	if s.Warmup < 0 {
		return violation(fmt.Sprintf("warmup = %d, want 0 or more", s.Warmup))
	}
	return nil
}

func violation(detail string) error {
	return &errors.Violation{
		Op:     "scenario.Validate",
		Kind:   errors.KindConfig,
		Detail: detail,
	}
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// ModulePath reads the module path from dir's go.mod.
func ModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
