// Package types implements value types shared by the models and the API.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Month is a calendar month in a specific year.
type Month time.Time

// NewMonth returns a new Month. The month is normalized, so
// NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Everything but year and month of the value is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	d, err := ParseDate(value)
	if err == nil {
		*m = MonthOf(time.Time(d))
		return nil
	}

	parsed, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the number of the month in its year.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Previous returns the month before m. For January, this is
// December of the previous year.
func (m Month) Previous() Month {
	return m.AddDate(0, -1)
}

// FirstDay returns the first day of the month.
func (m Month) FirstDay() Date {
	return NewDate(m.Year(), m.Month(), 1)
}

// LastDay returns the last day of the month.
func (m Month) LastDay() Date {
	return Date(time.Time(m.AddDate(0, 1)).AddDate(0, 0, -1))
}

// Contains reports whether the date is in the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year() && d.Month() == m.Month()
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}
