package TimeUtils

import (
	"fmt"
	"time"
)

// Seconds multiplier per supported time unit. "months" is a fixed
// 30.42-day approximation, not a calendar month.
var unitSeconds = map[string]int64{
	"seconds": 1,
	"minutes": 60,
	"days":    86400,
	"weeks":   604800,
	"months":  2628000,
}

var unitOrder = []string{"seconds", "minutes", "days", "weeks", "months"}

// Kinyarwanda day and month names for long-form display.
var dayNames = map[time.Weekday]string{
	time.Sunday:    "Ku cyumweru",
	time.Monday:    "Kuwa mbere",
	time.Tuesday:   "Kuwa kabiri",
	time.Wednesday: "Kuwa gatatu",
	time.Thursday:  "Kuwa kane",
	time.Friday:    "Kuwa gatanu",
	time.Saturday:  "Kuwa gatandatu",
}

var monthNames = map[time.Month]string{
	time.January:   "Mutarama",
	time.February:  "Gashyantare",
	time.March:     "Werurwe",
	time.April:     "Mata",
	time.May:       "Gicurasi",
	time.June:      "Kamena",
	time.July:      "Nyakanga",
	time.August:    "Kanama",
	time.September: "Nzeri",
	time.October:   "Ukwakira",
	time.November:  "Ugushyingo",
	time.December:  "Ukuboza",
}

// AddDays shifts t by n wall-clock days, keeping the time of day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// UnitToSeconds returns the seconds multiplier for a time unit name.
// Unknown units fall back to 1, matching the original conversion table.
func UnitToSeconds(unit string) int64 {
	if s, ok := unitSeconds[unit]; ok {
		return s
	}
	return 1
}

// ValidUnit reports whether unit is one of the five supported units.
func ValidUnit(unit string) bool {
	_, ok := unitSeconds[unit]
	return ok
}

// ValidUnits returns the supported units in display order.
func ValidUnits() []string {
	units := make([]string, len(unitOrder))
	copy(units, unitOrder)
	return units
}

// FormatLocalized renders a date in Kinyarwanda long form,
// e.g. "Kuwa mbere, 15 Nzeri 2025". Display only, never a persistence key.
func FormatLocalized(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", dayNames[t.Weekday()], t.Day(), monthNames[t.Month()], t.Year())
}

// FormatRemaining renders the time left until fireTime as "Hh Mm Ss".
// Hours wrap at 24 and the day count is dropped, which is how the app
// has always shown it. Once due it reads "Byarangije".
func FormatRemaining(fireTime, now time.Time) string {
	diff := fireTime.Sub(now)
	if diff <= 0 {
		return "Byarangije"
	}
	seconds := int64(diff.Seconds()) % 60
	minutes := int64(diff.Minutes()) % 60
	hours := int64(diff.Hours()) % 24
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
