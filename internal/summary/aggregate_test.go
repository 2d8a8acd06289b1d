package summary

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/gigurra/spending-ledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(res *Result) []string {
	var names []string
	for _, acc := range res.Categories() {
		names = append(names, acc.Category)
	}
	return names
}

func TestAggregate_GroupsByCategory(t *testing.T) {
	coffee := rec("Coffee", "Food", "3.5", date("2024-03-31 14:05"))
	bus := rec("Bus", "Transit", "2.25", date("2024-03-30 08:15"))

	res := Aggregate([]ledger.Record{coffee, bus}, Filter{})

	require.Equal(t, []string{"Food", "Transit"}, categoryNames(res))
	food, ok := res.Category("Food")
	require.True(t, ok)
	assert.Equal(t, int64(350), food.TotalCents)
	assert.Equal(t, []ledger.Record{coffee}, food.Items)

	transit, ok := res.Category("Transit")
	require.True(t, ok)
	assert.Equal(t, int64(225), transit.TotalCents)
	assert.Equal(t, []ledger.Record{bus}, transit.Items)

	assert.Equal(t, 2, res.Count())
	assert.Equal(t, int64(575), res.TotalCents())
}

func TestAggregate_PreservesArrivalOrder(t *testing.T) {
	records := []ledger.Record{
		rec("a1", "A", "1", date("2024-01-03 00:00")),
		rec("b1", "B", "2", date("2024-01-01 00:00")),
		rec("a2", "A", "3", date("2024-01-02 00:00")),
		rec("c1", "C", "4", date("2024-01-05 00:00")),
		rec("b2", "B", "5", date("2024-01-04 00:00")),
	}

	res := Aggregate(records, Filter{})
	assert.Equal(t, []string{"A", "B", "C"}, categoryNames(res))

	a, _ := res.Category("A")
	assert.Equal(t, []string{"a1", "a2"}, []string{a.Items[0].Name, a.Items[1].Name})
	b, _ := res.Category("B")
	assert.Equal(t, []string{"b1", "b2"}, []string{b.Items[0].Name, b.Items[1].Name})
}

func TestAggregate_OrderFollowsFirstMatchingRecord(t *testing.T) {
	now := date("2024-03-31 00:00")
	f, err := NewFilter("", "10d", now)
	require.NoError(t, err)

	records := []ledger.Record{
		rec("old food", "Food", "1", date("2024-01-01 00:00")), // filtered out
		rec("bus", "Transit", "1", date("2024-03-30 00:00")),
		rec("new food", "Food", "1", date("2024-03-29 00:00")),
	}

	res := Aggregate(records, f)
	assert.Equal(t, []string{"Transit", "Food"}, categoryNames(res))
	food, _ := res.Category("Food")
	require.Len(t, food.Items, 1)
	assert.Equal(t, "new food", food.Items[0].Name)
}

func TestAggregate_IncludesExactlyTheMatchingRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"Food", "food", "Transit", "Rent", "Fun"}
	now := date("2024-06-30 12:00")

	var records []ledger.Record
	for i := 0; i < 2000; i++ {
		at := now.Add(-time.Duration(rng.Intn(400*24)) * time.Hour)
		cents := rng.Int63n(100000)
		records = append(records, ledger.Record{
			Name:      fmt.Sprintf("item-%d", i),
			Category:  categories[rng.Intn(len(categories))],
			Amount:    ledger.Money{Cents: cents},
			Timestamp: at,
		})
	}

	filters := []struct{ category, interval string }{
		{"", ""},
		{"Food", ""},
		{"", "3m"},
		{"Transit", "45d"},
		{"Nope", "1n"},
	}

	for _, fc := range filters {
		t.Run(fc.category+"/"+fc.interval, func(t *testing.T) {
			f, err := NewFilter(fc.category, fc.interval, now)
			require.NoError(t, err)

			res := Aggregate(records, f)

			included := make(map[string]bool)
			totals := make(map[string]int64)
			for _, acc := range res.Categories() {
				var sum int64
				for _, item := range acc.Items {
					assert.Equal(t, acc.Category, item.Category)
					included[item.Name] = true
					sum += item.Amount.Cents
				}
				assert.Equal(t, sum, acc.TotalCents)
				totals[acc.Category] = acc.TotalCents
			}

			wantTotals := make(map[string]int64)
			for _, r := range records {
				assert.Equal(t, f.Matches(r), included[r.Name], "record %s", r.Name)
				if f.Matches(r) {
					wantTotals[r.Category] += r.Amount.Cents
				}
			}
			assert.Equal(t, wantTotals, totals)
		})
	}
}

func TestAggregate_NoFloatingPointDrift(t *testing.T) {
	const n = 10000
	records := make([]ledger.Record, 0, n)
	at := date("2024-01-01 00:00")
	for i := 0; i < n; i++ {
		records = append(records, rec("dime", "Change", "0.10", at))
	}

	res := Aggregate(records, Filter{})
	acc, ok := res.Category("Change")
	require.True(t, ok)
	assert.Equal(t, int64(100000), acc.TotalCents)
	assert.Equal(t, "1000.00", ledger.FormatCents(acc.TotalCents))

	var floatSum float64
	for i := 0; i < n; i++ {
		floatSum += 0.10
	}
	assert.NotEqual(t, 1000.0, floatSum, "float accumulation drifts, integer cents must not")
}

func TestAggregate_IsDeterministic(t *testing.T) {
	records := []ledger.Record{
		rec("x", "B", "1.11", date("2024-01-01 00:00")),
		rec("y", "A", "2.22", date("2024-01-02 00:00")),
		rec("z", "B", "3.33", date("2024-01-03 00:00")),
	}
	f, err := NewFilter("", "1n", date("2024-06-01 00:00"))
	require.NoError(t, err)

	first := Aggregate(records, f)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Categories(), Aggregate(records, f).Categories())
	}
}

func TestAggregator_Streaming(t *testing.T) {
	f, err := NewFilter("Food", "", time.Now())
	require.NoError(t, err)

	agg := NewAggregator(f)
	assert.True(t, agg.Add(rec("a", "Food", "1", time.Now())))
	assert.False(t, agg.Add(rec("b", "Transit", "1", time.Now())))
	assert.True(t, agg.Add(rec("c", "Food", "1.5", time.Now())))

	assert.Equal(t, 3, agg.Scanned())
	assert.Equal(t, 2, agg.Result().Count())
	assert.Equal(t, int64(250), agg.Result().TotalCents())
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil, Filter{})
	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Count())
	assert.Equal(t, int64(0), res.TotalCents())
	assert.Empty(t, res.Categories())
}
