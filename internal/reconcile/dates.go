package reconcile

import (
	"fmt"
	"regexp"
	"time"
)

// dateFormat is the calendar date written to the export.
const dateFormat = "2006-01-02"

// The broker reports three different trade timestamp shapes depending on
// the endpoint and instrument.
var (
	timeOfDayRe    = regexp.MustCompile(`^\d{1,2}:\d{1,2}`)
	dayMonthYearRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
	timestampRe    = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2} \d{1,2}:\d{1,2}:\d{1,2}\.\d+`)
)

// ParseQuoteDate normalizes a broker trade timestamp to a plain calendar
// date. A bare time of day means the instrument traded today. An empty
// input yields an empty date.
func ParseQuoteDate(raw string, now time.Time) (string, error) {
	if raw == "" {
		return "", nil
	}

	switch {
	case timeOfDayRe.MatchString(raw):
		return now.Format(dateFormat), nil

	case dayMonthYearRe.MatchString(raw):
		t, err := time.Parse("2/1/2006", raw)
		if err != nil {
			return "", fmt.Errorf("invalid trade date %q: %w", raw, err)
		}
		return t.Format(dateFormat), nil

	case timestampRe.MatchString(raw):
		t, err := time.Parse("2006-1-2 15:4:5.999999", raw)
		if err != nil {
			return "", fmt.Errorf("invalid trade timestamp %q: %w", raw, err)
		}
		return t.Format(dateFormat), nil
	}

	return "", fmt.Errorf("unrecognized trade date %q", raw)
}
