package output

import (
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/format"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
)

// View is the serializable form of an estimate shared by the JSON output and
// the HTTP API. Amounts are rounded to cents.
type View struct {
	Inputs    InputsView   `json:"inputs"`
	Payment   PaymentView  `json:"payment"`
	Schedule  ScheduleView `json:"schedule"`
	Breakdown []SliceView  `json:"breakdown"`
}

// InputsView echoes the validated inputs.
type InputsView struct {
	HomePrice       float64 `json:"homePrice"`
	DownPayment     float64 `json:"downPayment"`
	InterestRate    float64 `json:"interestRate"`
	PropertyTaxRate float64 `json:"propertyTaxRate"`
	Program         string  `json:"program"`
	TermYears       int     `json:"termYears"`
}

// PaymentView holds the payment amounts, rounded to cents, and the result line.
type PaymentView struct {
	LoanAmount               float64 `json:"loanAmount"`
	NumPayments              int     `json:"numPayments"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalInterest"`
	MonthlyPropertyTax       float64 `json:"monthlyPropertyTax"`
	TotalMonthlyPayment      float64 `json:"totalMonthlyPayment"`
	TotalOfPayments          float64 `json:"totalOfPayments"`
	TotalInterest            float64 `json:"totalInterest"`
	Display                  string  `json:"display"`
}

// ScheduleView holds the projected due date and countdown with ISO dates.
type ScheduleView struct {
	AsOf          string       `json:"asOf"`
	NextDueDate   string       `json:"nextDueDate"`
	DaysRemaining int          `json:"daysRemaining"`
	Calendar      CalendarView `json:"calendar"`
}

// CalendarView is the as-of month grouped into rows of seven days.
type CalendarView struct {
	Title string  `json:"title"`
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Weeks [][]int `json:"weeks"`
}

// SliceView is one labelled share of the payment breakdown.
type SliceView struct {
	Label   string  `json:"label"`
	Share   float64 `json:"share"`
	Percent string  `json:"percent"`
}

// NewView builds the serializable view of est using symbol for display strings.
func NewView(est *mortgage.Estimate, symbol string) View {
	p := est.Payment
	return View{
		Inputs: InputsView{
			HomePrice:       est.Inputs.HomePrice,
			DownPayment:     est.Inputs.DownPayment,
			InterestRate:    est.Inputs.AnnualInterestRatePercent,
			PropertyTaxRate: est.Inputs.AnnualPropertyTaxRatePercent,
			Program:         est.Inputs.Program.String(),
			TermYears:       est.Inputs.TermYears,
		},
		Payment: PaymentView{
			LoanAmount:               mathutil.RoundCents(p.LoanAmount),
			NumPayments:              p.NumPayments,
			MonthlyPrincipalInterest: mathutil.RoundCents(p.MonthlyPrincipalInterest),
			MonthlyPropertyTax:       mathutil.RoundCents(p.MonthlyPropertyTax),
			TotalMonthlyPayment:      mathutil.RoundCents(p.TotalMonthlyPayment),
			TotalOfPayments:          mathutil.RoundCents(p.TotalOfPayments()),
			TotalInterest:            mathutil.RoundCents(p.TotalInterest()),
			Display:                  PaymentText(p, symbol),
		},
		Schedule:  NewScheduleView(est.Schedule),
		Breakdown: NewBreakdownView(est.Breakdown),
	}
}

// NewScheduleView converts a projection.
func NewScheduleView(s mortgage.ScheduleProjection) ScheduleView {
	return ScheduleView{
		AsOf:          s.AsOf.Format(datetime.DateLayout),
		NextDueDate:   s.NextDueDate.Format(datetime.DateLayout),
		DaysRemaining: s.DaysRemaining,
		Calendar: CalendarView{
			Title: s.Calendar.Title(),
			Year:  s.Calendar.Year,
			Month: int(s.Calendar.Month),
			Weeks: s.Calendar.Weeks(),
		},
	}
}

// NewBreakdownView converts a breakdown into labelled chart slices.
func NewBreakdownView(b mortgage.Breakdown) []SliceView {
	slices := b.Slices()
	total := b.Total()
	views := make([]SliceView, 0, len(slices))
	for _, slice := range slices {
		views = append(views, SliceView{
			Label:   slice.Label,
			Share:   slice.Share,
			Percent: format.Percent(mathutil.CalculatePercentage(slice.Share, total)),
		})
	}
	return views
}

// PaymentText is the result line shown under the calculator form.
func PaymentText(p mortgage.PaymentResult, symbol string) string {
	return "Monthly Payment: " + format.CurrencyWithSymbol(symbol, p.TotalMonthlyPayment)
}
