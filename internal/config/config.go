// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/query"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the loan calculator CLI.
type Configuration struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Loan    LoanConfig    `mapstructure:"loan" yaml:"loan,omitempty"`
	Share   ShareConfig   `mapstructure:"share" yaml:"share,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `mapstructure:"format" yaml:"format,omitempty"`       // pretty, csv, xlsx, png, pdf
	Directory string `mapstructure:"directory" yaml:"directory,omitempty"` // where file formats are written
}

// LoanConfig holds the default loan fields and the longest term the CLI will
// compute.
type LoanConfig struct {
	query.Params  `mapstructure:",squash" yaml:",inline"`
	MaxTermMonths int `mapstructure:"maxTermMonths" yaml:"maxTermMonths,omitempty"`
}

// ShareConfig controls the links printed for sharing a calculation.
type ShareConfig struct {
	BaseURL string `mapstructure:"baseURL" yaml:"baseURL,omitempty"`
	Path    string `mapstructure:"path" yaml:"path,omitempty"`
}

// LoadDotEnv loads environment variables from path when the file exists.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading env file %s, %w", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Any key can be overridden by a LOANCALC_ prefixed
// environment variable, e.g. LOANCALC_LOAN_AMOUNT.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// Defaults returns the configuration used when no file is given, with
// environment overrides applied.
func Defaults() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so AutomaticEnv can override it.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.directory", ".")
	for _, key := range query.Keys {
		v.SetDefault("loan."+key, "")
	}
	v.SetDefault("loan.maxTermMonths", constants.DefaultMaxTermMonths)
	v.SetDefault("share.baseURL", "")
	v.SetDefault("share.path", constants.DefaultSharePath)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}
