package internal

import (
	"fmt"
	"hindsight/internal/util"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultInitialCash = 1000

// RunConfig is the yaml file driving a single optimization run.
type RunConfig struct {
	Start            string  `yaml:"start"`
	End              string  `yaml:"end"`
	MinBuyPrice      float64 `yaml:"minBuyPrice"`
	InitialCash      float64 `yaml:"initialCash"`
	PriceFile        string  `yaml:"priceFile"`
	ConstituentsFile string  `yaml:"constituentsFile"`
}

func LoadRunConfig(path string) (*RunConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := &RunConfig{InitialCash: DefaultInitialCash}
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// Window parses and validates the [start, end) date window.
func (c RunConfig) Window() (time.Time, time.Time, error) {
	start, err := util.ParseDate(c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, ConfigurationError{Detail: fmt.Sprintf("unparseable start date %q", c.Start)}
	}
	end, err := util.ParseDate(c.End)
	if err != nil {
		return time.Time{}, time.Time{}, ConfigurationError{Detail: fmt.Sprintf("unparseable end date %q", c.End)}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ConfigurationError{Detail: fmt.Sprintf("empty date window [%s, %s)", c.Start, c.End)}
	}
	return start, end, nil
}

func (c RunConfig) Validate() error {
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if c.InitialCash <= 0 {
		return ConfigurationError{Detail: fmt.Sprintf("initial cash must be positive, got %v", c.InitialCash)}
	}
	if c.MinBuyPrice < 0 {
		return ConfigurationError{Detail: fmt.Sprintf("minimum buy price must not be negative, got %v", c.MinBuyPrice)}
	}
	return nil
}
