// Package output provides utilities for formatting and displaying mortgage estimates.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders est in the named output format.
func Write(w io.Writer, outputFormat string, est *mortgage.Estimate, symbol string) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, est, symbol)
	case constants.OutputFormatCSV:
		return CsvFormat(w, est)
	case constants.OutputFormatJSON:
		return JSONFormat(w, est, symbol)
	default:
		return fmt.Errorf("unsupported output format %s", outputFormat)
	}
}

// PrettyFormat outputs a human-readable summary: the payment, the due date
// reminder, the calendar month and the payment breakdown.
func PrettyFormat(w io.Writer, est *mortgage.Estimate, symbol string) error {
	p := message.NewPrinter(language.English)
	payment := est.Payment

	var b strings.Builder
	fmt.Fprintf(&b, "--- Mortgage estimate (%s, %d payments) ---\n", est.Inputs.Program, payment.NumPayments)
	_, _ = p.Fprintf(&b, "Monthly Payment: %s%.2f\n", symbol, payment.TotalMonthlyPayment)
	_, _ = p.Fprintf(&b, "  Principal & Interest | %s%.2f\n", symbol, payment.MonthlyPrincipalInterest)
	_, _ = p.Fprintf(&b, "  Property Tax         | %s%.2f\n", symbol, payment.MonthlyPropertyTax)
	_, _ = p.Fprintf(&b, "  Loan Amount          | %s%.2f\n", symbol, payment.LoanAmount)
	b.WriteString("\n")

	b.WriteString("--- Payment reminder ---\n")
	fmt.Fprintf(&b, "Next Payment Due Date: %s\n", est.Schedule.NextDueDate.Format(datetime.DateLayout))
	b.WriteString(CountdownText(est.Schedule) + "\n\n")

	calendar := CalendarText(est.Schedule.Calendar)
	b.WriteString(calendar)
	if !strings.HasSuffix(calendar, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("--- Payment breakdown ---\n")
	for _, slice := range NewBreakdownView(est.Breakdown) {
		fmt.Fprintf(&b, "%-17s | %s\n", slice.Label, slice.Percent)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CountdownText is the countdown line of the reminder view.
func CountdownText(s mortgage.ScheduleProjection) string {
	return fmt.Sprintf("Days remaining until next payment: %d days", s.DaysRemaining)
}

// CalendarText renders the month as a title line followed by the days, two
// columns wide, breaking the line after every seventh day.
func CalendarText(c mortgage.CalendarMonth) string {
	var b strings.Builder
	b.WriteString(c.Title() + "\n")
	for _, day := range c.Days {
		fmt.Fprintf(&b, "%2d ", day)
		if day%constants.DaysPerWeek == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var csvHeader = []string{
	"program", "numPayments", "loanAmount", "monthlyPrincipalInterest", "monthlyPropertyTax",
	"totalMonthlyPayment", "asOf", "nextDueDate", "daysRemaining",
	"principalShare", "interestShare", "taxShare",
}

// CsvFormat outputs the estimate as a header row and a single value row.
func CsvFormat(w io.Writer, est *mortgage.Estimate) error {
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	share := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

	row := []string{
		est.Inputs.Program.String(),
		strconv.Itoa(est.Payment.NumPayments),
		money(est.Payment.LoanAmount),
		money(est.Payment.MonthlyPrincipalInterest),
		money(est.Payment.MonthlyPropertyTax),
		money(est.Payment.TotalMonthlyPayment),
		est.Schedule.AsOf.Format(datetime.DateLayout),
		est.Schedule.NextDueDate.Format(datetime.DateLayout),
		strconv.Itoa(est.Schedule.DaysRemaining),
		share(est.Breakdown.Principal),
		share(est.Breakdown.Interest),
		share(est.Breakdown.Tax),
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	if err := writer.Write(row); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the estimate View as indented JSON.
func JSONFormat(w io.Writer, est *mortgage.Estimate, symbol string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewView(est, symbol))
}
