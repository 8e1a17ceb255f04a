// Package biztime converts between wall-clock readings in the business
// timezone and UTC instants.
//
// Design principles:
// - All time storage is in UTC (Unix milliseconds)
// - A wall-clock reading is never stored; it is converted with Normalizer.ToUTC first
// - Every timestamp shown to a user goes through Normalizer.FormatUTC or FormatLocal
// - Implicit Local timezone is prohibited
package biztime

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Europe/Paris"

	// UTCLayout is the layout used by FormatUTC.
	UTCLayout = "Mon 2006-01-02 15:04:05 UTC"

	// DateLayout is the layout accepted by ParseDate.
	DateLayout = "2006-01-02"

	// WallClockLayout is the layout accepted by ParseLocalWallClock.
	WallClockLayout = "2006-01-02T15:04"
)

// Instant is a point in time, always held in UTC.
type Instant struct {
	t time.Time
}

// NewInstant wraps t, normalizing it to UTC.
func NewInstant(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{t: t.UTC()}
}

// InstantFromUnixMilli builds an Instant from a Unix timestamp in milliseconds.
func InstantFromUnixMilli(ms int64) Instant {
	return Instant{t: time.UnixMilli(ms).UTC()}
}

// Time returns the underlying UTC time.
func (i Instant) Time() time.Time { return i.t }

// UnixMilli returns the instant as Unix milliseconds.
func (i Instant) UnixMilli() int64 { return i.t.UnixMilli() }

// IsZero reports whether the instant is unset.
func (i Instant) IsZero() bool { return i.t.IsZero() }

func (i Instant) Before(o Instant) bool { return i.t.Before(o.t) }

func (i Instant) After(o Instant) bool { return i.t.After(o.t) }

func (i Instant) Equal(o Instant) bool { return i.t.Equal(o.t) }

func (i Instant) Add(d time.Duration) Instant { return Instant{t: i.t.Add(d)} }

func (i Instant) Sub(o Instant) time.Duration { return i.t.Sub(o.t) }

// String returns the RFC3339 representation with millisecond precision.
func (i Instant) String() string {
	return i.t.Format("2006-01-02T15:04:05.000Z07:00")
}

// MarshalJSON encodes the instant as an RFC3339 UTC string.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an RFC3339 string into an Instant.
func (i *Instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Instant{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid instant %q: %w", s, err)
	}
	*i = NewInstant(t)
	return nil
}

// LocalWallClock is a reading of the business-timezone wall clock, as typed
// by a user. It carries no zone information on its own.
type LocalWallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// Validate checks that the reading names a real calendar minute.
func (w LocalWallClock) Validate() error {
	if w.Month < time.January || w.Month > time.December {
		return fmt.Errorf("invalid month %d", w.Month)
	}
	if w.Hour < 0 || w.Hour > 23 || w.Minute < 0 || w.Minute > 59 {
		return fmt.Errorf("invalid time %02d:%02d", w.Hour, w.Minute)
	}
	day := time.Date(w.Year, w.Month, w.Day, 0, 0, 0, 0, time.UTC)
	if day.Day() != w.Day || day.Month() != w.Month {
		return fmt.Errorf("invalid day %d for %s %d", w.Day, w.Month, w.Year)
	}
	return nil
}

func (w LocalWallClock) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", w.Year, int(w.Month), w.Day, w.Hour, w.Minute)
}

// ParseLocalWallClock parses "YYYY-MM-DDTHH:MM" without attaching a zone.
func ParseLocalWallClock(s string) (LocalWallClock, error) {
	t, err := time.Parse(WallClockLayout, s)
	if err != nil {
		return LocalWallClock{}, fmt.Errorf("invalid wall clock %q: %w", s, err)
	}
	return LocalWallClock{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}, nil
}

// ParseDate parses a date string (YYYY-MM-DD) as midnight of that UTC day.
func ParseDate(s string) (Instant, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Instant{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return NewInstant(t), nil
}

// DayBounds returns the first and last millisecond of the UTC calendar day
// containing i.
func DayBounds(i Instant) (Instant, Instant) {
	t := i.t
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return NewInstant(start), EndOfDay(NewInstant(start))
}

// EndOfDay returns 23:59:59.999 of the UTC calendar day containing i.
func EndOfDay(i Instant) Instant {
	t := i.t
	return NewInstant(time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC))
}

// Clock supplies the current instant.
type Clock interface {
	Now() Instant
}

// SystemClock reads the process clock.
type SystemClock struct{}

func (SystemClock) Now() Instant {
	return NowUTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At Instant
}

func (c FixedClock) Now() Instant {
	return c.At
}

// NowUTC returns current time in UTC, truncated to milliseconds to match storage precision.
func NowUTC() Instant {
	return NewInstant(time.Now().UTC().Truncate(time.Millisecond))
}
