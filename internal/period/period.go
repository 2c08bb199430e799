// Package period provides calendar-month arithmetic for the ledger.
//
// A Period is a (year, month) pair. The day of month never matters: charges
// are billed once per calendar month, so every comparison in this package is
// by month ordinal.
package period

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrInvalidPeriod is returned when a period token cannot be parsed.
var ErrInvalidPeriod = errors.New("invalid period")

const (
	keyLayout  = "2006-01"
	dateLayout = "2006-01-02"
)

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Parse parses a "YYYY-MM" token.
func Parse(token string) (Period, error) {
	t, err := time.Parse(keyLayout, token)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}
	return Of(t), nil
}

// ParseDate accepts either a full date ("YYYY-MM-DD") or a month token
// ("YYYY-MM"). The day, if present, is discarded.
func ParseDate(s string) (Period, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Of(t), nil
	}
	return Parse(s)
}

// Ordinal returns a strictly increasing month index (year*12 + month-1).
func (p Period) Ordinal() int {
	return p.Year*12 + int(p.Month) - 1
}

func fromOrdinal(n int) Period {
	year, month := n/12, n%12
	if month < 0 {
		year--
		month += 12
	}
	return Period{Year: year, Month: time.Month(month + 1)}
}

// Shift moves p by delta whole months (negative moves backwards).
func (p Period) Shift(delta int) Period {
	return fromOrdinal(p.Ordinal() + delta)
}

func (p Period) Before(o Period) bool { return p.Ordinal() < o.Ordinal() }
func (p Period) After(o Period) bool  { return p.Ordinal() > o.Ordinal() }

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool { return p == Period{} }

// Key returns the canonical "YYYY-MM" identity of the period.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) String() string { return p.Key() }

// Time returns midnight UTC on the first day of the period.
func (p Period) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Label renders the period for humans, e.g. "August 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// MarshalText encodes the period as its key.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.Key()), nil
}

// UnmarshalText accepts the same forms as ParseDate.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Range yields every period from start through end inclusive, one month at
// a time. The sequence is empty when end precedes start and can be ranged
// over any number of times.
func Range(start, end Period) iter.Seq[Period] {
	return func(yield func(Period) bool) {
		for n := start.Ordinal(); n <= end.Ordinal(); n++ {
			if !yield(fromOrdinal(n)) {
				return
			}
		}
	}
}

// Key returns the "YYYY-MM" key of the month containing t.
func Key(t time.Time) string {
	return Of(t).Key()
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return Of(a) == Of(b)
}

// ShiftMonths returns the first day of the month delta months away from t,
// keeping t's location.
func ShiftMonths(t time.Time, delta int) time.Time {
	p := Of(t).Shift(delta)
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, t.Location())
}
