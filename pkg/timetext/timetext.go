// Package timetext normalizes heterogeneous date and time-of-day input
// strings into canonical model values. Functions here are pure and
// deterministic; callers map the sentinel errors onto their own taxonomy.
package timetext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tably/pkg/model"
)

var (
	ErrUnrecognizedDate = errors.New("unrecognized date format")
	ErrUnrecognizedTime = errors.New("unrecognized time format")
)

// dateLayouts in priority order; the first layout that parses wins and no
// further layouts are tried.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
}

// twelveHourLayouts for inputs carrying an AM/PM suffix, after spaces have
// been stripped.
var twelveHourLayouts = []string{
	"3:04PM",
	"3PM",
}

// ParseDate parses ISO (YYYY-MM-DD), MM/DD/YYYY, DD/MM/YYYY and long or
// abbreviated month-name forms ("December 15, 2025").
func ParseDate(input string) (model.Date, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnrecognizedDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Date(t.Format(model.DateLayout)), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnrecognizedDate, input)
}

// ParseTimeOfDay parses 24-hour "HH:MM", a bare hour ("19"), and 12-hour
// forms with an AM/PM suffix with or without a colon or a space before the
// suffix ("7pm", "7:30 PM"). Matching is case-insensitive.
func ParseTimeOfDay(input string) (model.TimeOfDay, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return model.TimeOfDay{}, fmt.Errorf("%w: empty input", ErrUnrecognizedTime)
	}

	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		compact := strings.ReplaceAll(s, " ", "")
		for _, layout := range twelveHourLayouts {
			if t, err := time.Parse(layout, compact); err == nil {
				return model.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
			}
		}
		return model.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, input)
	}

	if strings.Contains(s, ":") {
		t, err := time.Parse("15:04", s)
		if err != nil {
			return model.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, input)
		}
		return model.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
	}

	hour, err := strconv.Atoi(s)
	if err != nil || hour < 0 || hour > 23 {
		return model.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, input)
	}
	return model.TimeOfDay{Hour: hour}, nil
}
