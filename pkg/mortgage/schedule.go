package mortgage

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
)

// CalendarMonth is the simplified month grid shown next to the reminder.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Days  []int // 1..N in order
}

// Title returns the heading of the month, e.g. "January 2024".
func (c CalendarMonth) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

// Weeks groups the days into rows of seven counted from day 1. Rows are not
// aligned to weekdays; the final row may be short.
func (c CalendarMonth) Weeks() [][]int {
	weeks := make([][]int, 0, (len(c.Days)+constants.DaysPerWeek-1)/constants.DaysPerWeek)
	for start := 0; start < len(c.Days); start += constants.DaysPerWeek {
		end := start + constants.DaysPerWeek
		if end > len(c.Days) {
			end = len(c.Days)
		}
		weeks = append(weeks, c.Days[start:end:end])
	}
	return weeks
}

// ScheduleProjection is the due date reminder derived from an as-of date.
type ScheduleProjection struct {
	AsOf          time.Time
	NextDueDate   time.Time
	DaysRemaining int
	Calendar      CalendarMonth
}

// Project derives the next due date, the countdown and the calendar month
// from asOf. The due date is a fixed 30 days out and is not tied to a real
// payment cycle. asOf is reduced to its calendar date first.
func Project(asOf time.Time) ScheduleProjection {
	day := datetime.StartOfDay(asOf)
	due := datetime.AddDays(day, constants.DueDateOffsetDays)

	return ScheduleProjection{
		AsOf:          day,
		NextDueDate:   due,
		DaysRemaining: datetime.DaysBetween(day, due),
		Calendar:      calendarMonth(day.Year(), day.Month()),
	}
}

func calendarMonth(year int, month time.Month) CalendarMonth {
	n := datetime.DaysInMonth(year, month)
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return CalendarMonth{Year: year, Month: month, Days: days}
}
