package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
// 24:00 is only reachable as the end of a range, never as a start.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned when a string is not a valid HH:MM wall-clock time
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when arithmetic leaves the 00:00..24:00 day
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

var (
	timeStringRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	// dbTimeRe также принимает секунды: так Postgres отдаёт колонки TIME
	dbTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It carries no date and no timezone: the business operates in one fixed zone.
type TimeString string

// NewTimeString takes the hour and minute of t, dropping seconds and location
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses strictly "HH:MM" in 00:00..23:59.
// Use it for start times coming from requests.
func NewTimeStringFromString(s string) (TimeString, error) {
	if !timeStringRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeString(s), nil
}

// NewEndTimeStringFromString parses strictly "HH:MM" and additionally
// accepts "24:00" as the end of the day.
func NewEndTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" {
		return TimeString(s), nil
	}
	return NewTimeStringFromString(s)
}

// TimeStringFromMinutes formats a minute-of-day value. 1440 is rendered as "24:00".
func TimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes returns minutes since midnight. Invalid values return -1.
func (t TimeString) Minutes() int {
	if t == "24:00" {
		return MinutesPerDay
	}
	m := timeStringRe.FindStringSubmatch(string(t))
	if m == nil {
		return -1
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm
}

// AddMinutes shifts the time by n minutes, failing if the result leaves the day
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return TimeStringFromMinutes(t.Minutes() + n)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero reports whether the value is unset
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	if t == "24:00" {
		return nil
	}
	if !timeStringRe.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for TIME columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("TimeString: cannot scan %T", src)
	}
}

func (t *TimeString) scanString(s string) error {
	if s == "24:00:00" || s == "24:00" {
		*t = "24:00"
		return nil
	}
	m := dbTimeRe.FindStringSubmatch(s)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	*t = TimeString(m[1] + ":" + m[2])
	return nil
}
