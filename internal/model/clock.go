package model

import (
	"fmt"
	"time"
)

const clockLayout = "15:04:05"

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour, c.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Accepts HH:MM:SS.
func (c *Clock) UnmarshalText(b []byte) error {
	t, err := time.Parse(clockLayout, string(b))
	if err != nil {
		return fmt.Errorf("clock: %w", err)
	}
	c.Hour, c.Minute = t.Hour(), t.Minute()
	return nil
}
