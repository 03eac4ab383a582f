package mortgage

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"go.uber.org/zap"
)

// TaxMethod selects how the monthly property tax is derived.
type TaxMethod string

const (
	// TaxMethodReference divides the monthly tax amount by the number of
	// payments once more. This reproduces the figures the calculator has
	// always shown and is the default.
	TaxMethodReference TaxMethod = "reference"
	// TaxMethodMonthly charges one twelfth of the annual tax each month.
	TaxMethodMonthly TaxMethod = "monthly"
)

// ParseTaxMethod validates a configured tax method. Empty selects the reference method.
func ParseTaxMethod(value string) (TaxMethod, error) {
	switch TaxMethod(value) {
	case "", TaxMethodReference:
		return TaxMethodReference, nil
	case TaxMethodMonthly:
		return TaxMethodMonthly, nil
	default:
		return "", fmt.Errorf("unknown property tax method %q, expected %s or %s",
			value, TaxMethodReference, TaxMethodMonthly)
	}
}

// PaymentResult holds the values for one monthly payment estimate.
type PaymentResult struct {
	LoanAmount               float64
	MonthlyRate              float64
	NumPayments              int
	MonthlyPrincipalInterest float64
	MonthlyPropertyTax       float64
	TotalMonthlyPayment      float64
}

// TotalOfPayments is the sum of every monthly payment over the term.
func (r PaymentResult) TotalOfPayments() float64 {
	return r.TotalMonthlyPayment * float64(r.NumPayments)
}

// TotalInterest is the interest paid over the term.
func (r PaymentResult) TotalInterest() float64 {
	return r.MonthlyPrincipalInterest*float64(r.NumPayments) - r.LoanAmount
}

// MonthlyPrincipalInterest calculates the principal and interest part of a
// monthly payment using the standard amortization formula. A zero rate falls
// back to repaying the loan in equal installments. The discount factor is
// computed with Expm1 and Log1p so rates too small to change 1+r still
// converge on loan/n.
func MonthlyPrincipalInterest(loanAmount, monthlyRate float64, numPayments int) float64 {
	if numPayments <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return loanAmount / float64(numPayments)
	}
	denominator := -math.Expm1(-float64(numPayments) * math.Log1p(monthlyRate))
	return loanAmount * monthlyRate / denominator
}

// Calculator computes payment estimates.
type Calculator struct {
	logger    *zap.Logger
	taxMethod TaxMethod
}

// NewCalculator creates a calculator. An empty tax method selects TaxMethodReference.
func NewCalculator(logger *zap.Logger, taxMethod TaxMethod) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if taxMethod == "" {
		taxMethod = TaxMethodReference
	}
	return &Calculator{logger: logger, taxMethod: taxMethod}
}

// CalculatePayment computes the estimate with the reference tax method.
func CalculatePayment(inputs LoanInputs) PaymentResult {
	return NewCalculator(nil, TaxMethodReference).Calculate(inputs)
}

// Calculate computes the monthly payment for validated inputs. The result is
// recomputed in full on every call.
func (c *Calculator) Calculate(inputs LoanInputs) PaymentResult {
	result := PaymentResult{
		LoanAmount:  inputs.LoanAmount(),
		MonthlyRate: mathutil.PercentToMonthlyRate(inputs.AnnualInterestRatePercent),
		NumPayments: inputs.NumPayments(),
	}

	result.MonthlyPrincipalInterest = MonthlyPrincipalInterest(result.LoanAmount, result.MonthlyRate, result.NumPayments)
	result.MonthlyPropertyTax = c.monthlyPropertyTax(inputs, result.NumPayments)
	result.TotalMonthlyPayment = result.MonthlyPrincipalInterest + result.MonthlyPropertyTax

	if result.MonthlyRate == 0 {
		c.logger.Debug("zero interest rate, repaying in equal installments",
			zap.String("op", "mortgage.Calculate"),
			zap.Float64("loanAmount", result.LoanAmount),
			zap.Int("numPayments", result.NumPayments),
		)
	}
	c.logger.Debug("computed monthly payment",
		zap.String("op", "mortgage.Calculate"),
		zap.String("program", inputs.Program.String()),
		zap.Int("numPayments", result.NumPayments),
		zap.Float64("principalInterest", result.MonthlyPrincipalInterest),
		zap.Float64("propertyTax", result.MonthlyPropertyTax),
		zap.String("taxMethod", string(c.taxMethod)),
	)

	return result
}

func (c *Calculator) monthlyPropertyTax(inputs LoanInputs, numPayments int) float64 {
	monthly := inputs.HomePrice * mathutil.PercentToMonthlyRate(inputs.AnnualPropertyTaxRatePercent)
	if c.taxMethod == TaxMethodMonthly {
		return monthly
	}
	if numPayments <= 0 {
		return 0
	}
	return monthly / float64(numPayments)
}
