package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"difftest/internal/domain"
)

// Sweep ranges a numeric flag over [From, To) in increments of Step
type Sweep struct {
	Flag string `yaml:"flag"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
	Step int    `yaml:"step"`
}

// MatrixSpec describes one family of configurations
type MatrixSpec struct {
	Enabled    bool           `yaml:"enabled"`
	Algorithms []string       `yaml:"algorithms"`
	Fixed      []domain.Param `yaml:"fixed"`
	Sweep      *Sweep         `yaml:"sweep"`
}

// Matrix holds the patch and crash configuration families
type Matrix struct {
	Patch MatrixSpec `yaml:"patch"`
	Crash MatrixSpec `yaml:"crash"`
}

// DefaultMatrix returns the built-in sweep: three algorithms with zero and one
// lines of context for round trips, and a disabled width sweep for crash mode.
func DefaultMatrix() Matrix {
	return Matrix{
		Patch: MatrixSpec{
			Enabled:    true,
			Algorithms: []string{"mg", "ml", "p"},
			Sweep:      &Sweep{Flag: "U", From: 0, To: 2, Step: 1},
		},
		Crash: MatrixSpec{
			Enabled:    false,
			Algorithms: []string{"p"},
			Fixed:      []domain.Param{{Flag: "S", Value: "0"}},
			Sweep:      &Sweep{Flag: "W", From: 0, To: 100, Step: 3},
		},
	}
}

// LoadMatrix reads a YAML matrix file. Sections missing from the file keep their defaults.
func LoadMatrix(path string) (Matrix, error) {
	m := DefaultMatrix()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("read matrix file: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Matrix{}, fmt.Errorf("parse matrix file %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return Matrix{}, fmt.Errorf("matrix file %s: %w", path, err)
	}
	return m, nil
}

// Validate checks both families
func (m Matrix) Validate() error {
	if err := m.Patch.Validate(); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	if err := m.Crash.Validate(); err != nil {
		return fmt.Errorf("crash: %w", err)
	}
	return nil
}

// Validate rejects specs that cannot expand into configurations
func (s MatrixSpec) Validate() error {
	if !s.Enabled {
		return nil
	}
	if len(s.Algorithms) == 0 {
		return fmt.Errorf("no algorithms")
	}
	for _, p := range s.Fixed {
		if p.Flag == "" {
			return fmt.Errorf("fixed parameter with empty flag")
		}
	}
	if s.Sweep != nil {
		if s.Sweep.Flag == "" {
			return fmt.Errorf("sweep with empty flag")
		}
		if s.Sweep.Step <= 0 {
			return fmt.Errorf("sweep step must be positive, got %d", s.Sweep.Step)
		}
	}
	return nil
}

// Expand returns the cross product algorithms x sweep values, algorithm-major.
// A disabled spec expands to nothing.
func (s MatrixSpec) Expand() []domain.Configuration {
	if !s.Enabled {
		return nil
	}

	var values []string
	if s.Sweep != nil && s.Sweep.Step > 0 {
		for v := s.Sweep.From; v < s.Sweep.To; v += s.Sweep.Step {
			values = append(values, strconv.Itoa(v))
		}
	}

	var configs []domain.Configuration
	for _, alg := range s.Algorithms {
		if s.Sweep == nil {
			configs = append(configs, domain.Configuration{Algorithm: alg, Params: s.params(nil)})
			continue
		}
		for _, v := range values {
			sweep := domain.Param{Flag: s.Sweep.Flag, Value: v}
			configs = append(configs, domain.Configuration{Algorithm: alg, Params: s.params(&sweep)})
		}
	}
	return configs
}

func (s MatrixSpec) params(sweep *domain.Param) []domain.Param {
	params := make([]domain.Param, 0, len(s.Fixed)+1)
	params = append(params, s.Fixed...)
	if sweep != nil {
		params = append(params, *sweep)
	}
	return params
}
