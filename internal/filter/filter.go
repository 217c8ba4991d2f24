// Package filter selects and orders transactions for display.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Named date ranges.
const (
	PresetThisMonth  = "this-month"
	PresetLastMonth  = "last-month"
	PresetLast30Days = "last-30-days"
	PresetLast90Days = "last-90-days"
)

// Presets lists the named ranges accepted by PresetRange.
func Presets() []string {
	return []string{PresetThisMonth, PresetLastMonth, PresetLast30Days, PresetLast90Days}
}

// Range is an inclusive time interval. A zero Start or End leaves that side open.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside r.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// PresetRange resolves a named range relative to now, in now's location.
func PresetRange(name string, now time.Time) (Range, error) {
	switch name {
	case PresetThisMonth:
		start := startOfMonth(now)
		return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case PresetLastMonth:
		start := startOfMonth(now).AddDate(0, -1, 0)
		return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case PresetLast30Days:
		return Range{Start: now.Add(-30 * 24 * time.Hour), End: now}, nil
	case PresetLast90Days:
		return Range{Start: now.Add(-90 * 24 * time.Hour), End: now}, nil
	default:
		return Range{}, fmt.Errorf("unknown date range %q (want one of %s)", name, strings.Join(Presets(), ", "))
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Criteria narrows a transaction list. Zero-valued fields match everything.
type Criteria struct {
	Range      Range
	Search     string   // case-insensitive, matched against description, merchant and category
	AccountIDs []string // any of
	Categories []string // any of
	MinAmount  decimal.NullDecimal
	MaxAmount  decimal.NullDecimal
}

// Matches reports whether t passes every criterion. Amount bounds apply to
// the absolute amount.
func (c Criteria) Matches(t model.Transaction) bool {
	if !c.Range.Contains(t.Date) {
		return false
	}
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Merchant), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	if len(c.AccountIDs) > 0 && !slices.Contains(c.AccountIDs, t.AccountID) {
		return false
	}
	if len(c.Categories) > 0 && !slices.Contains(c.Categories, t.Category) {
		return false
	}
	abs := t.Amount.Abs()
	if c.MinAmount.Valid && abs.LessThan(c.MinAmount.Decimal) {
		return false
	}
	if c.MaxAmount.Valid && abs.GreaterThan(c.MaxAmount.Decimal) {
		return false
	}
	return true
}

// Apply returns the transactions matching c, in input order.
func Apply(txns []model.Transaction, c Criteria) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDateDesc returns a copy of txns ordered newest first. Ties keep their
// input order.
func SortByDateDesc(txns []model.Transaction) []model.Transaction {
	out := slices.Clone(txns)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// DayGroup is the transactions of one calendar day.
type DayGroup struct {
	Day          string // YYYY-MM-DD
	Transactions []model.Transaction
}

// GroupByDay buckets txns by the calendar day of their own timestamp, newest
// day first. Within a day the input order is kept.
func GroupByDay(txns []model.Transaction) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, t := range txns {
		day := t.Date.Format(time.DateOnly)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}
	slices.SortStableFunc(groups, func(a, b DayGroup) int {
		return strings.Compare(b.Day, a.Day)
	})
	return groups
}
