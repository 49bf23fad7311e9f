// Package budget implements the per-account budget period: a category to limit
// mapping plus the date range it is in effect for.
package budget

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

// DateLayout is the ISO-8601 calendar date format used at the API boundary.
const DateLayout = "2006-01-02"

// Limits maps a category label to its spending limit.
type Limits map[string]decimal.Decimal

func (l Limits) Clone() Limits {
	if l == nil {
		return nil
	}
	out := make(Limits, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Categories returns the category labels in lexical order.
func (l Limits) Categories() []string {
	out := make([]string, 0, len(l))
	for k := range l {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// State is the stored budget configuration of an account. Nil fields are unset
// and resolve to defaults in Effective.
type State struct {
	Limits Limits
	Start  *time.Time
	End    *time.Time
}

// Period is a budget with every default substituted.
type Period struct {
	Limits Limits
	Start  time.Time
	End    time.Time
}

// Contains reports whether t falls on a calendar day inside [Start, End].
func (p Period) Contains(t time.Time) bool {
	day := DateOf(t)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Update is a set request. Limits always replaces the stored mapping; Start and
// End are applied only when non-nil.
type Update struct {
	Limits Limits
	Start  *time.Time
	End    *time.Time
}

// Effective resolves the state against the default table and the month that
// contains now. A missing bound that would invert the range is taken from the
// month of the stored bound instead.
func (s State) Effective(now time.Time, defaults Limits) Period {
	first, last := MonthBounds(now)
	p := Period{
		Limits: s.Limits.Clone(),
		Start:  first,
		End:    last,
	}
	if s.Limits == nil {
		p.Limits = defaults.Clone()
	}
	if s.Start != nil {
		p.Start = *s.Start
	}
	if s.End != nil {
		p.End = *s.End
	}
	if p.End.Before(p.Start) {
		switch {
		case s.Start == nil:
			p.Start, _ = MonthBounds(p.End)
		case s.End == nil:
			_, p.End = MonthBounds(p.Start)
		}
	}
	return p
}

// Set overwrites the mapping wholesale; categories missing from u.Limits are
// dropped. Dates are changed only when provided. The range is checked against
// the period it resolves to in the month containing now, so a lone bound must
// still sit on the right side of the month's default bound.
func (s State) Set(u Update, now time.Time) (State, error) {
	if u.Limits == nil {
		return s, apperrors.Config("limits", "is required")
	}
	if err := ValidateLimits(u.Limits); err != nil {
		return s, err
	}

	next := State{
		Limits: u.Limits.Clone(),
		Start:  s.Start,
		End:    s.End,
	}
	if u.Start != nil {
		start := DateOf(*u.Start)
		next.Start = &start
	}
	if u.End != nil {
		end := DateOf(*u.End)
		next.End = &end
	}
	first, last := MonthBounds(now)
	start, end := first, last
	if next.Start != nil {
		start = *next.Start
	}
	if next.End != nil {
		end = *next.End
	}
	if end.Before(start) {
		switch {
		case next.Start == nil:
			return s, apperrors.Config("endDate", "must not be before the start of the current month")
		case next.End == nil:
			return s, apperrors.Config("startDate", "must not be after the end of the current month")
		default:
			return s, apperrors.Config("endDate", "must not be before startDate")
		}
	}
	return next, nil
}

// Reset restores the default mapping and pins the range to the month that
// contains now.
func Reset(now time.Time, defaults Limits) State {
	first, last := MonthBounds(now)
	return State{
		Limits: defaults.Clone(),
		Start:  &first,
		End:    &last,
	}
}

// ValidateLimits rejects blank category labels and negative limits.
func ValidateLimits(l Limits) error {
	for category, limit := range l {
		if strings.TrimSpace(category) == "" {
			return apperrors.Config("limits", "category label must not be blank")
		}
		if limit.IsNegative() {
			return apperrors.Config("limits."+category, "must not be negative")
		}
	}
	return nil
}

// MonthBounds returns the first and last calendar day of the month containing
// now. The last day is day 0 of the following month, so month length and leap
// years come from the calendar.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.Validation(field, "must be an ISO-8601 date (YYYY-MM-DD)")
	}
	return t, nil
}
