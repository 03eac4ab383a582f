// Package testutil provides common fixtures for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
)

// ScenarioAsOf is the estimate date used across output tests.
var ScenarioAsOf = datetime.MustParseTime(datetime.DateLayout, "2024-01-15")

// ScenarioInputs returns form input for a 1,000,000 home with 200,000 down
// at 8% interest and 1% property tax on the given program.
func ScenarioInputs(program mortgage.Program, term string) mortgage.RawInputs {
	return mortgage.RawInputs{
		HomePrice:       "1000000",
		DownPayment:     "200000",
		InterestRate:    "8",
		PropertyTaxRate: "1",
		Program:         program,
		Term:            term,
	}
}

// FindSlice finds a breakdown slice by label.
// Returns a pointer to the slice if found, nil otherwise.
func FindSlice(slices []mortgage.Slice, label string) *mortgage.Slice {
	for i := range slices {
		if slices[i].Label == label {
			return &slices[i]
		}
	}
	return nil
}

// MustEstimate runs the default estimator and panics on error.
func MustEstimate(raw mortgage.RawInputs, asOf time.Time) *mortgage.Estimate {
	est, err := mortgage.NewEstimator(nil, mortgage.Options{}).Estimate(raw, asOf)
	if err != nil {
		panic(err)
	}
	return est
}
