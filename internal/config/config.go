// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/trackingsuccess/profit-planner/pkg/constants"
)

// Configuration holds all configuration for profit-planner.
type Configuration struct {
	Defaults Defaults      `yaml:"defaults,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// Defaults holds the planning assumptions applied when a profile does not
// specify its own.
type Defaults struct {
	VanMonthly float64 `yaml:"vanMonthly,omitempty"` // monthly vehicle cost for people with a van
	CostRatio  float64 `yaml:"costRatio,omitempty"`  // assumed cost-of-sales ratio when no actuals exist
	DataDir    string  `yaml:"dataDir,omitempty"`    // directory holding profile JSON files
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Default returns the built-in configuration.
func Default() *Configuration {
	c := &Configuration{}
	c.applyDefaults()
	return c
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the built-in defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default(), nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Defaults.VanMonthly <= 0 {
		c.Defaults.VanMonthly = constants.DefaultVanMonthly
	}
	if c.Defaults.CostRatio <= 0 || c.Defaults.CostRatio > constants.CostRatioCeiling {
		c.Defaults.CostRatio = constants.DefaultCostRatio
	}
	if c.Defaults.DataDir == "" {
		c.Defaults.DataDir = constants.DefaultDataDir
	}
}
