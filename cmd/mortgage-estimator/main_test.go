package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = func() time.Time {
	return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
}

func scenarioArgs(extra ...string) []string {
	args := []string{
		"-log-level", "error",
		"-home-price", "1000000",
		"-down-payment", "200000",
		"-interest-rate", "8",
		"-property-tax-rate", "1",
	}
	return append(args, extra...)
}

func runCLI(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, testNow)
	return code, stdout.String(), stderr.String()
}

func TestRunPrettyOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, scenarioArgs(), "")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Monthly Payment: $5,872.43")
	assert.Contains(t, stdout, "Next Payment Due Date: 2024-02-14")
	assert.Contains(t, stdout, "Days remaining until next payment: 30 days")
	assert.Contains(t, stdout, "January 2024\n")
}

func TestRunJSONOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, scenarioArgs("-output-format", "json", "-program", "adjustable", "-term", "5"), "")
	require.Equal(t, 0, code, stderr)

	var view map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	payment := view["payment"].(map[string]interface{})
	assert.Equal(t, float64(60), payment["numPayments"])
}

func TestRunAsOfFlag(t *testing.T) {
	code, stdout, stderr := runCLI(t, scenarioArgs("-as-of", "2024-12-20"), "")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Next Payment Due Date: 2025-01-19")
	assert.Contains(t, stdout, "December 2024\n")
}

func TestRunValidationError(t *testing.T) {
	code, stdout, stderr := runCLI(t, scenarioArgs("-down-payment", "2000000"), "")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Input Error: ")
}

func TestRunPromptsForTerm(t *testing.T) {
	code, stdout, stderr := runCLI(t, scenarioArgs("-program", "adjustable", "-prompt", "-output-format", "csv"), "5\n")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "Loan term in years: ")
	assert.Contains(t, stdout, "Adjustable Rate")
	assert.Contains(t, stdout, ",60,")
}

func TestRunPromptCancelled(t *testing.T) {
	for name, input := range map[string]string{"empty answer": "\n", "end of input": ""} {
		t.Run(name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, scenarioArgs("-program", "adjustable", "-prompt"), input)
			assert.Equal(t, 0, code)
			assert.Empty(t, stdout)
		})
	}
}

func TestRunMissingTermWithoutPrompt(t *testing.T) {
	code, _, stderr := runCLI(t, scenarioArgs("-program", "adjustable"), "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Input Error: ")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte(`logging:
  level: error
output:
  format: csv
  currencySymbol: "₹"
loan:
  homePrice: 500000
  downPayment: 500000
  interestRate: 6
  propertyTaxRate: 1
`)
	require.NoError(t, os.WriteFile(path, contents, 0600))

	code, stdout, stderr := runCLI(t, []string{"-config", path}, "")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "loanAmount")
	assert.Contains(t, stdout, "0.00")
}

func TestRunMissingExplicitConfig(t *testing.T) {
	code, _, stderr := runCLI(t, []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to load configuration")
}

func TestRunInvalidSettings(t *testing.T) {
	tests := map[string][]string{
		"output format": scenarioArgs("-output-format", "xml"),
		"program":       scenarioArgs("-program", "balloon"),
		"as-of date":    scenarioArgs("-as-of", "01/15/2024"),
		"log level":     append(scenarioArgs(), "-log-level", "loud"),
		"unknown flag":  scenarioArgs("-verbose"),
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, args, "")
			assert.NotEqual(t, 0, code)
			assert.Empty(t, stdout)
		})
	}
}
