package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/logging"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
	"github.com/iwvelando/mortgage-estimator/pkg/output"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, now func() time.Time) int {
	flags := flag.NewFlagSet("mortgage-estimator", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	asOfFlag := flags.String("as-of", "", "estimate date (YYYY-MM-DD), defaults to today")
	homePrice := flags.String("home-price", "", "home price override")
	downPayment := flags.String("down-payment", "", "down payment override")
	interestRate := flags.String("interest-rate", "", "annual interest rate percent override")
	propertyTaxRate := flags.String("property-tax-rate", "", "annual property tax rate percent override")
	program := flags.String("program", "", "loan program override: fixed, adjustable")
	term := flags.String("term", "", "loan term in years (adjustable program only)")
	prompt := flags.Bool("prompt", false, "ask for the loan term when an adjustable program has none")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// The default file is optional; flags and environment can supply everything.
	configPath := *configLocation
	if configPath == constants.DefaultConfigFile {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			configPath = ""
		}
	}

	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return 1
	}

	overrideIfSet(&conf.Loan.HomePrice, *homePrice)
	overrideIfSet(&conf.Loan.DownPayment, *downPayment)
	overrideIfSet(&conf.Loan.InterestRate, *interestRate)
	overrideIfSet(&conf.Loan.PropertyTaxRate, *propertyTaxRate)
	overrideIfSet(&conf.Loan.Program, *program)
	overrideIfSet(&conf.Loan.TermYears, *term)
	overrideIfSet(&conf.Output.Format, *outputFormatFlag)

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Error("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	opts, err := conf.EstimatorOptions()
	if err != nil {
		logger.Error("invalid calculation settings",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	asOf, err := datetime.ParseDate(*asOfFlag, now())
	if err != nil {
		logger.Error("failed to parse as-of date",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	raw, err := conf.Loan.RawInputs()
	if err != nil {
		logger.Error("invalid loan program",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	if *prompt && raw.Program == mortgage.ProgramAdjustable && strings.TrimSpace(raw.Term) == "" {
		answer, ok := promptTerm(stdin, stderr)
		raw.Term = answer
		raw.TermCancelled = !ok
	}

	estimate, err := mortgage.NewEstimator(logger, opts).Estimate(raw, asOf)
	if err != nil {
		if errors.Is(err, mortgage.ErrTermEntryCancelled) {
			logger.Debug("term entry cancelled",
				zap.String("op", "main"),
			)
			return 0
		}

		var validationErr *mortgage.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(stderr, "Input Error: %s\n", validationErr.Error())
			return 1
		}

		logger.Error("failed to compute estimate",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	if err := output.Write(stdout, conf.Output.Format, estimate, conf.Output.CurrencySymbol); err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	return 0
}

func overrideIfSet(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// promptTerm asks for the loan term. An empty answer or end of input means
// the user backed out.
func promptTerm(in io.Reader, out io.Writer) (string, bool) {
	fmt.Fprint(out, "Loan term in years: ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)
	if answer == "" {
		return "", false
	}
	return answer, true
}
