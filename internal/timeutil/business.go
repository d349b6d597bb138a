package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// DefaultLocationName is the zone comprobante timestamps are recorded in.
const DefaultLocationName = "America/Argentina/Buenos_Aires"

// Business is the location used to interpret and display audit timestamps.
var Business *time.Location

func init() {
	Business = loadOrFixed(DefaultLocationName)
}

func loadOrFixed(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: Argentina has no DST, a fixed UTC-3 zone is exact
		return time.FixedZone("ART", -3*60*60)
	}
	return loc
}

// SetLocation switches the business location. An empty name keeps the default.
func SetLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load location %q: %w", name, err)
	}
	Business = loc
	return nil
}

// ErrInvalidStamp is returned when a timestamp matches none of the accepted layouts.
var ErrInvalidStamp = errors.New("invalid timestamp")

// Accepted timestamp layouts, tried in order. Zone-less stamps are read in Business.
const (
	StampLayout      = "2006-01-02T15:04:05"
	StampLayoutSpace = "2006-01-02 15:04:05"
)

// ParseStamp parses an audit timestamp.
func ParseStamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(Business), nil
	}
	for _, layout := range []string{StampLayout, StampLayoutSpace} {
		if t, err := time.ParseInLocation(layout, value, Business); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStamp, value)
}

// AsBusiness keeps the wall clock of t and re-labels it as Business time.
// Postgres "timestamp without time zone" values come back labelled UTC.
func AsBusiness(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Business)
}

// ToBusiness converts any time to Business
func ToBusiness(t time.Time) time.Time {
	return t.In(Business)
}

// Display layouts
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04:05"
)
