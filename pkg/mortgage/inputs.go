// Package mortgage computes monthly mortgage payment estimates and the
// schedule facts derived from them: the next due date, a countdown, a
// simplified calendar month and the composition of a payment.
//
// Every function in this package is pure. Callers supply the raw form values
// and the as-of date; nothing reads the clock or keeps state between calls.
package mortgage

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
)

// Program is the loan program selected on the calculator form.
type Program int

const (
	// ProgramFixed is a Fixed Rate loan with a 30 year term.
	ProgramFixed Program = iota
	// ProgramAdjustable is an Adjustable Rate loan whose term is entered by the user.
	ProgramAdjustable
)

func (p Program) String() string {
	switch p {
	case ProgramFixed:
		return "Fixed Rate"
	case ProgramAdjustable:
		return "Adjustable Rate"
	default:
		return fmt.Sprintf("Program(%d)", int(p))
	}
}

// ParseProgram maps the program names used on the form, in configuration and
// on the API to a Program. Matching is case-insensitive and an empty value
// selects ProgramFixed.
func ParseProgram(value string) (Program, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "fixed", "fixed rate", "fixed-rate":
		return ProgramFixed, nil
	case "adjustable", "adjustable rate", "adjustable-rate", "arm":
		return ProgramAdjustable, nil
	default:
		return ProgramFixed, fmt.Errorf("unknown loan program %q, expected fixed or adjustable", value)
	}
}

// RawInputs holds the loan fields exactly as they were entered.
type RawInputs struct {
	HomePrice       string
	DownPayment     string
	InterestRate    string // annual, in percent
	PropertyTaxRate string // annual, in percent
	Program         Program
	// Term is the loan term in years. Only read for ProgramAdjustable.
	Term string
	// TermCancelled is set when the user dismissed the term prompt.
	TermCancelled bool
}

// LoanInputs are validated loan parameters.
type LoanInputs struct {
	HomePrice                    float64
	DownPayment                  float64
	AnnualInterestRatePercent    float64
	AnnualPropertyTaxRatePercent float64
	Program                      Program
	TermYears                    int
}

// LoanAmount is the amount borrowed.
func (in LoanInputs) LoanAmount() float64 {
	return in.HomePrice - in.DownPayment
}

// NumPayments is the number of monthly payments over the loan term. Fixed Rate
// loans always run 360 payments regardless of TermYears.
func (in LoanInputs) NumPayments() int {
	if in.Program == ProgramAdjustable {
		return in.TermYears * constants.MonthsPerYear
	}
	return constants.FixedTermYears * constants.MonthsPerYear
}
