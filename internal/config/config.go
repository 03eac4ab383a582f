// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
	"github.com/iwvelando/mortgage-estimator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-estimator.
type Configuration struct {
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
	Calculation CalculationConfig `yaml:"calculation,omitempty"`
	Loan        LoanConfig        `yaml:"loan,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty"` // pretty, csv, json
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
}

// CalculationConfig selects the calculation variants.
type CalculationConfig struct {
	PropertyTaxMethod string `yaml:"propertyTaxMethod,omitempty"` // reference, monthly
	BreakdownMethod   string `yaml:"breakdownMethod,omitempty"`   // placeholder, derived
}

// LoanConfig holds the loan form fields as text. Values are validated by the
// mortgage package rather than at load time so that bad input is reported
// the same way regardless of where it came from.
type LoanConfig struct {
	HomePrice       string `yaml:"homePrice,omitempty"`
	DownPayment     string `yaml:"downPayment,omitempty"`
	InterestRate    string `yaml:"interestRate,omitempty"`
	PropertyTaxRate string `yaml:"propertyTaxRate,omitempty"`
	Program         string `yaml:"program,omitempty"`
	TermYears       string `yaml:"termYears,omitempty"`
}

// Default returns the configuration used when no file is provided.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output: OutputConfig{
			Format:         constants.OutputFormatPretty,
			CurrencySymbol: constants.DefaultCurrencySymbol,
		},
		Calculation: CalculationConfig{
			PropertyTaxMethod: string(mortgage.TaxMethodReference),
			BreakdownMethod:   string(mortgage.BreakdownPlaceholder),
		},
		Loan: LoanConfig{Program: mortgage.ProgramFixed.String()},
	}
}

// LoadConfiguration loads the YAML configuration at configPath, layered over
// the defaults. An empty path loads only the defaults. A .env file in the
// working directory is read first when present, and MORTGAGE_* environment
// variables override file values (e.g. MORTGAGE_LOAN_HOMEPRICE).
func LoadConfiguration(configPath string) (*Configuration, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper, d *Configuration) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.currencySymbol", d.Output.CurrencySymbol)
	v.SetDefault("calculation.propertyTaxMethod", d.Calculation.PropertyTaxMethod)
	v.SetDefault("calculation.breakdownMethod", d.Calculation.BreakdownMethod)
	v.SetDefault("loan.homePrice", d.Loan.HomePrice)
	v.SetDefault("loan.downPayment", d.Loan.DownPayment)
	v.SetDefault("loan.interestRate", d.Loan.InterestRate)
	v.SetDefault("loan.propertyTaxRate", d.Loan.PropertyTaxRate)
	v.SetDefault("loan.program", d.Loan.Program)
	v.SetDefault("loan.termYears", d.Loan.TermYears)
}

// Validate checks the settings that can be checked without user input.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := c.EstimatorOptions(); err != nil {
		return err
	}
	if _, err := mortgage.ParseProgram(c.Loan.Program); err != nil {
		return err
	}
	return nil
}

// EstimatorOptions converts the calculation settings.
func (c *Configuration) EstimatorOptions() (mortgage.Options, error) {
	return c.Calculation.EstimatorOptions()
}

// EstimatorOptions converts the calculation settings.
func (c CalculationConfig) EstimatorOptions() (mortgage.Options, error) {
	taxMethod, err := mortgage.ParseTaxMethod(c.PropertyTaxMethod)
	if err != nil {
		return mortgage.Options{}, err
	}
	breakdownMethod, err := mortgage.ParseBreakdownMethod(c.BreakdownMethod)
	if err != nil {
		return mortgage.Options{}, err
	}
	return mortgage.Options{TaxMethod: taxMethod, BreakdownMethod: breakdownMethod}, nil
}

// RawInputs converts the loan fields into validator input.
func (l LoanConfig) RawInputs() (mortgage.RawInputs, error) {
	program, err := mortgage.ParseProgram(l.Program)
	if err != nil {
		return mortgage.RawInputs{}, err
	}
	return mortgage.RawInputs{
		HomePrice:       l.HomePrice,
		DownPayment:     l.DownPayment,
		InterestRate:    l.InterestRate,
		PropertyTaxRate: l.PropertyTaxRate,
		Program:         program,
		Term:            l.TermYears,
	}, nil
}
