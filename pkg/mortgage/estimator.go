package mortgage

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Options tune how an Estimator derives its results.
type Options struct {
	TaxMethod       TaxMethod
	BreakdownMethod BreakdownMethod
}

// Estimate is everything the views need after a successful calculation.
type Estimate struct {
	Inputs    LoanInputs
	Payment   PaymentResult
	Schedule  ScheduleProjection
	Breakdown Breakdown
}

// Estimator runs validation, the payment calculation and the derived
// schedule and breakdown as one all-or-nothing step.
type Estimator struct {
	logger          *zap.Logger
	calculator      *Calculator
	breakdownMethod BreakdownMethod
}

// NewEstimator creates an Estimator with the given options.
func NewEstimator(logger *zap.Logger, opts Options) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	method := opts.BreakdownMethod
	if method == "" {
		method = BreakdownPlaceholder
	}
	return &Estimator{
		logger:          logger,
		calculator:      NewCalculator(logger, opts.TaxMethod),
		breakdownMethod: method,
	}
}

// Estimate validates raw and, on success, computes the payment and the views
// derived from it as of asOf. Validation failures are returned as
// *ValidationError; a cancelled term prompt returns ErrTermEntryCancelled.
func (e *Estimator) Estimate(raw RawInputs, asOf time.Time) (*Estimate, error) {
	inputs, err := Validate(raw)
	if err != nil {
		if errors.Is(err, ErrTermEntryCancelled) {
			e.logger.Debug("term entry cancelled, skipping calculation",
				zap.String("op", "mortgage.Estimate"),
			)
			return nil, err
		}
		e.logger.Info("rejected loan inputs",
			zap.String("op", "mortgage.Estimate"),
			zap.Error(err),
		)
		return nil, err
	}

	payment := e.calculator.Calculate(inputs)
	estimate := &Estimate{
		Inputs:    inputs,
		Payment:   payment,
		Schedule:  Project(asOf),
		Breakdown: BreakdownFor(e.breakdownMethod, payment),
	}

	e.logger.Debug("estimate complete",
		zap.String("op", "mortgage.Estimate"),
		zap.Float64("totalMonthlyPayment", payment.TotalMonthlyPayment),
		zap.Time("nextDueDate", estimate.Schedule.NextDueDate),
	)
	return estimate, nil
}
