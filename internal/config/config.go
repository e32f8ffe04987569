// Package config defines the data structures related to configuration and
// includes functions for loading the config and building the pricing catalog
// from it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/landscape-calculator/internal/store"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for landscape-calculator.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Store   store.Config  `yaml:"store,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, json
	Currency string `yaml:"currency,omitempty"` // AED, USD
	ShareURL string `yaml:"shareUrl,omitempty"` // base URL for share links
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Defaults only; decoding cannot fail.
		panic(err)
	}
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.currency", constants.CurrencyAED)
	v.SetDefault("store.backend", constants.DefaultStoreBackend)
	v.SetDefault("store.path", constants.DefaultStoreFile)
	v.SetDefault("store.key", constants.DefaultStoreKey)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}
