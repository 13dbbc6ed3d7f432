// Package config loads simulation settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/economy"
	"github.com/talgya/inequality-sim/internal/engine"
)

// File mirrors the YAML layout. Keys left out of the file keep their defaults.
type File struct {
	Policy     string `yaml:"policy"`
	Population int    `yaml:"population"`
	Seed       int64  `yaml:"seed"`
	Steps      int    `yaml:"steps"`

	SurvivalQuantile float64 `yaml:"survival_quantile"`
	Brackets         struct {
		Lower float64 `yaml:"lower"`
		Upper float64 `yaml:"upper"`
	} `yaml:"brackets"`

	Cycle struct {
		Amplitude float64 `yaml:"amplitude"`
		Period    float64 `yaml:"period"`
	} `yaml:"cycle"`

	Spawn  agents.SpawnConfig `yaml:"spawn"`
	Params economy.Params     `yaml:"params"`
}

// DefaultSteps is the run length when the file does not set one.
const DefaultSteps = 100

// Default returns a File holding engine.DefaultConfig.
func Default() File {
	return FromEngine(engine.DefaultConfig(), DefaultSteps)
}

// FromEngine converts an engine config back into file form.
func FromEngine(cfg engine.Config, steps int) File {
	var f File
	f.Policy = cfg.Policy
	f.Population = cfg.Population
	f.Seed = cfg.Seed
	f.Steps = steps
	f.SurvivalQuantile = cfg.SurvivalQuantile
	f.Brackets.Lower = cfg.LowerQuantile
	f.Brackets.Upper = cfg.UpperQuantile
	f.Cycle.Amplitude = cfg.CycleAmplitude
	f.Cycle.Period = cfg.CyclePeriod
	f.Spawn = cfg.Spawn
	f.Params = cfg.Params
	return f
}

// Engine returns the engine configuration described by f.
func (f File) Engine() engine.Config {
	return engine.Config{
		Policy:           f.Policy,
		Population:       f.Population,
		Seed:             f.Seed,
		SurvivalQuantile: f.SurvivalQuantile,
		LowerQuantile:    f.Brackets.Lower,
		UpperQuantile:    f.Brackets.Upper,
		CycleAmplitude:   f.Cycle.Amplitude,
		CyclePeriod:      f.Cycle.Period,
		Spawn:            f.Spawn,
		Params:           f.Params,
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML over the defaults. An empty document yields the defaults.
func Parse(raw []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	if f.Steps < 0 {
		return File{}, fmt.Errorf("steps must be >= 0, got %d", f.Steps)
	}
	return f, nil
}

// Marshal renders f as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}
