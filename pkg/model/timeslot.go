package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the canonical wire form of a Date.
const DateLayout = "2006-01-02"

// Date is a canonical calendar date in YYYY-MM-DD form. Values are only
// constructed by the time/date normalizer, so a Date held by the engine is
// always well-formed.
type Date string

func (d Date) String() string {
	return string(d)
}

// Long renders the date in long month form, e.g. "December 15, 2025".
func (d Date) Long() string {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return string(d)
	}
	return t.Format("January 2, 2006")
}

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int `bson:"hour"`
	Minute int `bson:"minute"`
}

// String renders the 24-hour canonical form, e.g. "19:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Clock12 renders the 12-hour form, e.g. "07:00 PM".
func (t TimeOfDay) Clock12() string {
	ref := time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC)
	return ref.Format("03:04 PM")
}

// MinuteOfDay returns minutes elapsed since midnight, the natural ordering
// key for slot comparisons.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.MinuteOfDay() < o.MinuteOfDay()
}

// TimeOfDayFromMinutes is the inverse of MinuteOfDay.
func TimeOfDayFromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// MarshalJSON emits the canonical "HH:MM" form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("time of day must be HH:MM, got %q", s)
	}
	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return nil
}

// TimeSlot is a canonical (date, time-of-day) pair. Any TimeSlot accepted by
// the engine lies on the slot grid and within operating hours.
type TimeSlot struct {
	Date Date      `json:"date" bson:"date"`
	Time TimeOfDay `json:"time" bson:"time"`
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s", s.Date, s.Time)
}
