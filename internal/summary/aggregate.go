package summary

import "github.com/gigurra/spending-ledger/internal/ledger"

// Accumulator is the running total and item list of one category.
type Accumulator struct {
	Category   string
	TotalCents int64
	Items      []ledger.Record
}

// Result holds the accumulators in the order their categories were first seen.
type Result struct {
	order []*Accumulator
	index map[string]*Accumulator
}

func newResult() *Result {
	return &Result{index: make(map[string]*Accumulator)}
}

// Categories returns the accumulators in first-seen order.
func (r *Result) Categories() []*Accumulator {
	return r.order
}

// Category looks up the accumulator for a category.
func (r *Result) Category(name string) (*Accumulator, bool) {
	acc, ok := r.index[name]
	return acc, ok
}

// Empty reports whether no record passed the filter.
func (r *Result) Empty() bool {
	return len(r.order) == 0
}

// Count is the number of matching records across all categories.
func (r *Result) Count() int {
	n := 0
	for _, acc := range r.order {
		n += len(acc.Items)
	}
	return n
}

// TotalCents is the grand total across all categories.
func (r *Result) TotalCents() int64 {
	var total int64
	for _, acc := range r.order {
		total += acc.TotalCents
	}
	return total
}

// Aggregator groups records one at a time, so it can be fed straight from a
// streaming ledger scan.
type Aggregator struct {
	filter  Filter
	result  *Result
	scanned int
}

// NewAggregator returns an aggregator that keeps only records matching f.
func NewAggregator(f Filter) *Aggregator {
	return &Aggregator{filter: f, result: newResult()}
}

// Add tallies r if it matches the filter and reports whether it was kept.
func (a *Aggregator) Add(r ledger.Record) bool {
	a.scanned++
	if !a.filter.Matches(r) {
		return false
	}

	acc, ok := a.result.index[r.Category]
	if !ok {
		acc = &Accumulator{Category: r.Category}
		a.result.index[r.Category] = acc
		a.result.order = append(a.result.order, acc)
	}
	acc.TotalCents += r.Amount.Cents
	acc.Items = append(acc.Items, r)
	return true
}

// Scanned is the number of records offered to Add, matching or not.
func (a *Aggregator) Scanned() int {
	return a.scanned
}

// Result returns the grouped records.
func (a *Aggregator) Result() *Result {
	return a.result
}

// Aggregate groups the matching records of a fully loaded ledger by category.
func Aggregate(records []ledger.Record, f Filter) *Result {
	agg := NewAggregator(f)
	for _, r := range records {
		agg.Add(r)
	}
	return agg.Result()
}
