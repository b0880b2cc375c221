package domain

import "time"

// DateRange is an inclusive date interval. A nil bound is open; both nil means all time.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// SingleDay returns the range [d, d].
func SingleDay(d time.Time) DateRange {
	d = NormalizeDate(d)
	return DateRange{From: &d, To: &d}
}

// NewDateRange builds a closed range [from, to].
func NewDateRange(from, to time.Time) DateRange {
	from, to = NormalizeDate(from), NormalizeDate(to)
	return DateRange{From: &from, To: &to}
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = NormalizeDate(d)
	if r.From != nil && d.Before(NormalizeDate(*r.From)) {
		return false
	}
	if r.To != nil && d.After(NormalizeDate(*r.To)) {
		return false
	}
	return true
}

// IsAllTime reports whether neither bound is set.
func (r DateRange) IsAllTime() bool {
	return r.From == nil && r.To == nil
}

// EntryFilter selects ledger entries. Zero-value fields do not constrain.
type EntryFilter struct {
	Customer string
	DateFrom *time.Time
	DateTo   *time.Time
	Type     EntryType
}

// Range returns the filter's date bounds as a DateRange.
func (f EntryFilter) Range() DateRange {
	return DateRange{From: f.DateFrom, To: f.DateTo}
}

// Match reports whether e satisfies every set constraint of the filter.
func (f EntryFilter) Match(e TransactionEntry) bool {
	if f.Customer != "" && e.CustomerName != f.Customer {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return f.Range().Contains(e.Date)
}

// FilterEntries returns the entries matching f, preserving order.
func FilterEntries(entries []TransactionEntry, f EntryFilter) []TransactionEntry {
	out := make([]TransactionEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
