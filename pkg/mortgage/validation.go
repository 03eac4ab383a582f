package mortgage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Field names reported by ValidationError.
const (
	FieldHomePrice       = "homePrice"
	FieldDownPayment     = "downPayment"
	FieldInterestRate    = "interestRate"
	FieldPropertyTaxRate = "propertyTaxRate"
	FieldTermYears       = "termYears"
)

// ErrTermEntryCancelled is returned when the user dismissed the term prompt
// for an Adjustable Rate loan. It is not a validation failure: callers stop
// without showing a message or computing anything.
var ErrTermEntryCancelled = errors.New("loan term entry cancelled")

// ValidationErrorKind classifies a rejected input.
type ValidationErrorKind int

const (
	NotANumber ValidationErrorKind = iota
	NegativeValue
	DownPaymentExceedsPrice
	MissingTerm
)

// Code returns the stable machine-readable name of the kind.
func (k ValidationErrorKind) Code() string {
	switch k {
	case NotANumber:
		return "NOT_A_NUMBER"
	case NegativeValue:
		return "NEGATIVE_VALUE"
	case DownPaymentExceedsPrice:
		return "DOWN_PAYMENT_EXCEEDS_PRICE"
	case MissingTerm:
		return "MISSING_TERM"
	default:
		return "UNKNOWN"
	}
}

// ValidationError reports why raw loan inputs were rejected.
type ValidationError struct {
	Kind  ValidationErrorKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case NotANumber:
		return fmt.Sprintf("%s must be a valid number", e.Field)
	case NegativeValue:
		return fmt.Sprintf("%s must not be negative", e.Field)
	case DownPaymentExceedsPrice:
		return "down payment must not exceed the home price"
	case MissingTerm:
		return "a loan term of at least one year is required for an adjustable rate loan"
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

// Code returns the machine-readable code of the error kind.
func (e *ValidationError) Code() string {
	return e.Kind.Code()
}

const maxTermYears = 1000

// Magnitude limits for the numeric fields. Anything larger is treated as not
// a number so that every accepted input yields finite payments.
var (
	maxAmount      = decimal.New(1, 12)
	maxRatePercent = decimal.New(1, 4)
)

type parsedField struct {
	name  string
	raw   string
	limit decimal.Decimal
	value decimal.Decimal
}

// Validate parses and range-checks raw loan inputs. Checks run in a fixed
// order and the first failure is returned: number parsing in form order,
// term cancellation, sign checks in form order, down payment against price,
// then the term itself.
func Validate(raw RawInputs) (LoanInputs, error) {
	fields := []parsedField{
		{name: FieldHomePrice, raw: raw.HomePrice, limit: maxAmount},
		{name: FieldDownPayment, raw: raw.DownPayment, limit: maxAmount},
		{name: FieldInterestRate, raw: raw.InterestRate, limit: maxRatePercent},
		{name: FieldPropertyTaxRate, raw: raw.PropertyTaxRate, limit: maxRatePercent},
	}

	for i := range fields {
		value, err := parseNumber(fields[i].raw)
		if err != nil || value.Abs().GreaterThan(fields[i].limit) {
			return LoanInputs{}, &ValidationError{Kind: NotANumber, Field: fields[i].name}
		}
		fields[i].value = value
	}

	if raw.Program == ProgramAdjustable && raw.TermCancelled {
		return LoanInputs{}, ErrTermEntryCancelled
	}

	for _, field := range fields {
		if field.value.IsNegative() {
			return LoanInputs{}, &ValidationError{Kind: NegativeValue, Field: field.name}
		}
	}

	homePrice, downPayment := fields[0].value, fields[1].value
	if downPayment.GreaterThan(homePrice) {
		return LoanInputs{}, &ValidationError{Kind: DownPaymentExceedsPrice, Field: FieldDownPayment}
	}

	inputs := LoanInputs{
		HomePrice:                    homePrice.InexactFloat64(),
		DownPayment:                  downPayment.InexactFloat64(),
		AnnualInterestRatePercent:    fields[2].value.InexactFloat64(),
		AnnualPropertyTaxRatePercent: fields[3].value.InexactFloat64(),
		Program:                      raw.Program,
		TermYears:                    constants.FixedTermYears,
	}

	if raw.Program == ProgramAdjustable {
		years, err := parseTerm(raw.Term)
		if err != nil {
			return LoanInputs{}, err
		}
		inputs.TermYears = years
	}

	return inputs, nil
}

func parseNumber(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(value))
}

func parseTerm(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &ValidationError{Kind: MissingTerm, Field: FieldTermYears}
	}

	years, err := decimal.NewFromString(trimmed)
	if err != nil || !years.IsInteger() {
		return 0, &ValidationError{Kind: NotANumber, Field: FieldTermYears}
	}
	if !years.IsPositive() {
		return 0, &ValidationError{Kind: MissingTerm, Field: FieldTermYears}
	}
	// Larger terms cannot be counted in monthly payments without overflow.
	if years.GreaterThan(decimal.NewFromInt(maxTermYears)) {
		return 0, &ValidationError{Kind: NotANumber, Field: FieldTermYears}
	}
	return int(years.IntPart()), nil
}
