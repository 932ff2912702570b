// Package agg folds extracted order lines into running spend totals.
package agg

import (
	"time"

	"github.com/huangsam/spendwrap/core/algo"
	"github.com/huangsam/spendwrap/schema"
	"github.com/shopspring/decimal"
)

// orderedTotals is a decimal sum per key that remembers first-insertion order.
type orderedTotals struct {
	keys []string
	sums map[string]decimal.Decimal
}

func newOrderedTotals() *orderedTotals {
	return &orderedTotals{sums: make(map[string]decimal.Decimal)}
}

func (o *orderedTotals) add(key string, amount decimal.Decimal) {
	cur, ok := o.sums[key]
	if !ok {
		o.keys = append(o.keys, key)
	}
	o.sums[key] = cur.Add(amount)
}

// Accumulator holds the running state of one analysis. It is not safe for
// concurrent use; parallel callers fill one Accumulator per worker and Merge them.
type Accumulator struct {
	totalSpend decimal.Decimal
	categories *orderedTotals
	itemSpend  *orderedTotals
	itemCounts map[string]int
	months     *orderedTotals
	weekdays   map[int]int
	orders     map[string]struct{}
	earliest   *time.Time
	latest     *time.Time
	accepted   int
	skipped    int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		categories: newOrderedTotals(),
		itemSpend:  newOrderedTotals(),
		itemCounts: make(map[string]int),
		months:     newOrderedTotals(),
		weekdays:   make(map[int]int),
		orders:     make(map[string]struct{}),
	}
}

// TitleKey truncates a title to its first 50 characters plus an ellipsis.
func TitleKey(title string) string {
	runes := []rune(title)
	if len(runes) <= schema.TitleKeyMaxRunes {
		return title
	}
	return string(runes[:schema.TitleKeyMaxRunes]) + schema.TitleKeyEllipsis
}

// Add folds one accepted line with its resolved category.
func (a *Accumulator) Add(line schema.ExtractedLine, category string) {
	a.accepted++
	a.totalSpend = a.totalSpend.Add(line.Amount)

	if !schema.ExcludedFromTotals(category) {
		a.categories.add(category, line.Amount)
	}

	if line.Title != "" {
		key := TitleKey(line.Title)
		a.itemCounts[key]++
		a.itemSpend.add(key, line.Amount)
	}

	a.months.add(schema.MonthKey(line.Date), line.Amount)
	a.weekdays[int(line.Date.Weekday())]++

	if line.OrderID != "" {
		a.orders[line.OrderID] = struct{}{}
	}

	a.observeDate(line.Date)
}

// Skip records that an input record was rejected before aggregation.
func (a *Accumulator) Skip() {
	a.skipped++
}

func (a *Accumulator) observeDate(d time.Time) {
	if a.earliest == nil || d.Before(*a.earliest) {
		e := d
		a.earliest = &e
	}
	if a.latest == nil || d.After(*a.latest) {
		l := d
		a.latest = &l
	}
}

// Merge adds the totals of other into a. Keys new to a are appended in
// other's insertion order, so merging chunk accumulators in input order
// reproduces a single sequential fold.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	a.totalSpend = a.totalSpend.Add(other.totalSpend)
	for _, k := range other.categories.keys {
		a.categories.add(k, other.categories.sums[k])
	}
	for _, k := range other.itemSpend.keys {
		a.itemSpend.add(k, other.itemSpend.sums[k])
		a.itemCounts[k] += other.itemCounts[k]
	}
	for _, k := range other.months.keys {
		a.months.add(k, other.months.sums[k])
	}
	for day, n := range other.weekdays {
		a.weekdays[day] += n
	}
	for id := range other.orders {
		a.orders[id] = struct{}{}
	}
	if other.earliest != nil {
		a.observeDate(*other.earliest)
	}
	if other.latest != nil {
		a.observeDate(*other.latest)
	}
	a.accepted += other.accepted
	a.skipped += other.skipped
}

type keyedAmount struct {
	key    string
	amount decimal.Decimal
}

func amountDesc(x, y keyedAmount) bool { return x.amount.GreaterThan(y.amount) }

func (o *orderedTotals) entries() []keyedAmount {
	out := make([]keyedAmount, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, keyedAmount{key: k, amount: o.sums[k]})
	}
	return out
}

// Summary derives the ranked views from the accumulated state.
// The Accumulator is left unchanged and may keep receiving lines.
func (a *Accumulator) Summary(targetYear int) schema.AnalysisSummary {
	s := schema.AnalysisSummary{
		TargetYear:      targetYear,
		TotalSpend:      a.totalSpend.InexactFloat64(),
		TopCategories:   []schema.CategorySpend{},
		TopItems:        []schema.ItemCount{},
		TopItemsBySpend: []schema.ItemSpend{},
		MonthlyTrend:    []schema.MonthAmount{},
		WeekdaySpend:    make(map[int]int, len(a.weekdays)),
		TotalOrders:     len(a.orders),
		AcceptedLines:   a.accepted,
		SkippedRecords:  a.skipped,
		TotalRecords:    a.accepted + a.skipped,
	}

	for _, e := range algo.RankBy(a.categories.entries(), amountDesc, schema.TopCategoriesLimit) {
		s.TopCategories = append(s.TopCategories, schema.CategorySpend{Name: e.key, Value: e.amount.InexactFloat64()})
	}

	counts := make([]schema.ItemCount, 0, len(a.itemSpend.keys))
	for _, k := range a.itemSpend.keys {
		counts = append(counts, schema.ItemCount{Name: k, Count: a.itemCounts[k]})
	}
	s.TopItems = append(s.TopItems, algo.RankBy(counts, func(x, y schema.ItemCount) bool {
		return x.Count > y.Count
	}, schema.TopItemsLimit)...)

	for _, e := range algo.RankBy(a.itemSpend.entries(), amountDesc, schema.TopItemsLimit) {
		s.TopItemsBySpend = append(s.TopItemsBySpend, schema.ItemSpend{Name: e.key, Amount: e.amount.InexactFloat64()})
	}

	months := algo.RankBy(a.months.entries(), func(x, y keyedAmount) bool {
		return x.key < y.key
	}, -1)
	for _, e := range months {
		s.MonthlyTrend = append(s.MonthlyTrend, schema.MonthAmount{Date: e.key, Amount: e.amount.InexactFloat64()})
	}
	if i := algo.PeakIndex(months, amountDesc); i >= 0 {
		peak := s.MonthlyTrend[i]
		s.PeakMonth = &peak
	}

	for day, n := range a.weekdays {
		s.WeekdaySpend[day] = n
	}
	if a.earliest != nil {
		e := *a.earliest
		s.EarliestDate = &e
	}
	if a.latest != nil {
		l := *a.latest
		s.LatestDate = &l
	}
	return s
}
