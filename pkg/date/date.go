// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package date provides a calendar date without a time of day.

On the wire dates are always "dd/MM/yyyy" (e.g. "25/12/2026"). Internally a
[Date] is midnight UTC of that day, so two dates compare equal whenever they
name the same day.
*/
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire format of a [Date].
const Layout = "02/01/2006"

// Date is a civil date.
type Date struct {
	t time.Time
}

// Of returns the date of t in t's own location.
func Of(t time.Time) Date {
	year, month, day := t.Date()
	return New(year, month, day)
}

// New returns the date for year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse reads a "dd/MM/yyyy" string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: %q is not dd/MM/yyyy: %w", value, err)
	}
	return Date{t: t}, nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// String formats the date as "dd/MM/yyyy".
func (d Date) String() string { return d.t.Format(Layout) }

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("date: expected a string: %w", err)
	}
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
