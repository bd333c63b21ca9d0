package domain

import "time"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights returns the signed number of nights between checkin and
// checkout. Callers that need checkin < checkout enforce it through
// ValidateDates first.
func Nights(checkin, checkout string) (int, error) {
	ci, err := ParseDate(checkin)
	if err != nil {
		return 0, err
	}
	co, err := ParseDate(checkout)
	if err != nil {
		return 0, err
	}
	return int(co.Sub(ci).Hours() / 24), nil
}

// SplitDateRange expands a stay into its individual nights: every date
// from checkin inclusive to checkout exclusive. The walk is a plain loop
// so arbitrarily long ranges cannot exhaust the stack.
func SplitDateRange(checkin, checkout string) ([]string, error) {
	start, err := ParseDate(checkin)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(checkout)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}
