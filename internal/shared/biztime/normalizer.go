package biztime

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// ConversionMode selects how ToUTC resolves the business zone offset.
type ConversionMode string

const (
	// ConversionZone applies the offset in force at the converted date.
	ConversionZone ConversionMode = "zone"
	// ConversionCurrentOffset applies the offset in force right now to any
	// date. Readings on the other side of a DST change are off by one hour.
	ConversionCurrentOffset ConversionMode = "current_offset"
)

// ParseConversionMode maps a config value to a ConversionMode. Empty means ConversionZone.
func ParseConversionMode(s string) (ConversionMode, error) {
	switch ConversionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConversionZone:
		return ConversionZone, nil
	case ConversionCurrentOffset:
		return ConversionCurrentOffset, nil
	default:
		return "", fmt.Errorf("unknown time conversion mode %q", s)
	}
}

const localLayout = "Monday 2 January 2006 à 15:04:05"

// Normalizer is the single conversion point between business-timezone wall
// clock readings and UTC instants.
type Normalizer struct {
	loc   *time.Location
	mode  ConversionMode
	clock Clock
}

// NewNormalizer loads tz (DefaultTimezone when empty).
func NewNormalizer(tz string, mode ConversionMode, clock Clock) (*Normalizer, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone %q: %w", tz, err)
	}
	if mode == "" {
		mode = ConversionZone
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Normalizer{loc: loc, mode: mode, clock: clock}, nil
}

// MustNewNormalizer is NewNormalizer that panics on error.
func MustNewNormalizer(tz string, mode ConversionMode, clock Clock) *Normalizer {
	n, err := NewNormalizer(tz, mode, clock)
	if err != nil {
		panic(err)
	}
	return n
}

// Location returns the business timezone.
func (n *Normalizer) Location() *time.Location { return n.loc }

// Mode returns the configured conversion mode.
func (n *Normalizer) Mode() ConversionMode { return n.mode }

// Now returns the current instant from the configured clock.
func (n *Normalizer) Now() Instant { return n.clock.Now() }

// ToUTC interprets w in the business timezone and returns the UTC instant.
func (n *Normalizer) ToUTC(w LocalWallClock) Instant {
	if n.mode == ConversionCurrentOffset {
		_, offset := n.clock.Now().Time().In(n.loc).Zone()
		naive := time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, 0, 0, time.UTC)
		return NewInstant(naive.Add(-time.Duration(offset) * time.Second))
	}
	return NewInstant(time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, 0, 0, n.loc))
}

// NowWallClock returns the current reading of the business wall clock.
func (n *Normalizer) NowWallClock() LocalWallClock {
	t := n.clock.Now().Time().In(n.loc)
	return LocalWallClock{Year: t.Year(), Month: t.Month(), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}
}

// FormatUTC renders i as "Fri 2024-03-15 10:00:00 UTC".
func (n *Normalizer) FormatUTC(i Instant) string {
	if i.IsZero() {
		return ""
	}
	return i.Time().Format(UTCLayout)
}

// FormatLocal renders i in the business timezone using the French long
// form, e.g. "vendredi 15 mars 2024 à 11:00:00".
func (n *Normalizer) FormatLocal(i Instant) string {
	if i.IsZero() {
		return ""
	}
	return monday.Format(i.Time().In(n.loc), localLayout, monday.LocaleFrFR)
}
