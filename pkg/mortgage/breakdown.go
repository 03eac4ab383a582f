package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// BreakdownMethod selects how the payment composition is produced.
type BreakdownMethod string

const (
	// BreakdownPlaceholder always reports the fixed 60/30/10 split.
	BreakdownPlaceholder BreakdownMethod = "placeholder"
	// BreakdownDerived splits the first monthly payment of the actual estimate.
	BreakdownDerived BreakdownMethod = "derived"
)

// ParseBreakdownMethod validates a configured breakdown method. Empty selects the placeholder.
func ParseBreakdownMethod(value string) (BreakdownMethod, error) {
	switch BreakdownMethod(value) {
	case "", BreakdownPlaceholder:
		return BreakdownPlaceholder, nil
	case BreakdownDerived:
		return BreakdownDerived, nil
	default:
		return "", fmt.Errorf("unknown breakdown method %q, expected %s or %s",
			value, BreakdownPlaceholder, BreakdownDerived)
	}
}

// Breakdown is the share of a payment going to principal, interest and tax.
type Breakdown struct {
	Principal float64
	Interest  float64
	Tax       float64
}

// Slice is one labelled wedge of the composition chart.
type Slice struct {
	Label string
	Share float64
}

// Slices returns the chart wedges in display order.
func (b Breakdown) Slices() []Slice {
	return []Slice{
		{Label: "Principal Payment", Share: b.Principal},
		{Label: "Interest Payment", Share: b.Interest},
		{Label: "Tax Payment", Share: b.Tax},
	}
}

// Total is the sum of the shares.
func (b Breakdown) Total() float64 {
	return b.Principal + b.Interest + b.Tax
}

// PlaceholderBreakdown returns the fixed composition the chart has always
// shown. It does not depend on any estimate.
func PlaceholderBreakdown() Breakdown {
	return Breakdown{
		Principal: constants.PlaceholderPrincipalShare,
		Interest:  constants.PlaceholderInterestShare,
		Tax:       constants.PlaceholderTaxShare,
	}
}

// DeriveBreakdown splits the first monthly payment of result into principal,
// interest and tax shares. The zero Breakdown is returned when less than a
// cent is owed.
func DeriveBreakdown(result PaymentResult) Breakdown {
	total := result.TotalMonthlyPayment
	if total <= 0 || mathutil.IsZero(total) {
		return Breakdown{}
	}

	interest := result.LoanAmount * result.MonthlyRate
	principal := result.MonthlyPrincipalInterest - interest
	return Breakdown{
		Principal: principal / total,
		Interest:  interest / total,
		Tax:       result.MonthlyPropertyTax / total,
	}
}

// BreakdownFor produces the composition for result using method.
func BreakdownFor(method BreakdownMethod, result PaymentResult) Breakdown {
	if method == BreakdownDerived {
		return DeriveBreakdown(result)
	}
	return PlaceholderBreakdown()
}
