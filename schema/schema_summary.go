package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one decoded row of an order-history export. Keys vary by export.
type RawRecord map[string]string

// ExtractedLine is the canonical view of one accepted order line.
type ExtractedLine struct {
	Date     time.Time
	Title    string // empty when the record has no title column
	OrderID  string // empty when the record has no order id
	Category string // explicit category column, if any
	Amount   decimal.Decimal
}

// CategorySpend is accumulated spend for one category.
type CategorySpend struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ItemCount is how many accepted lines carried a given item title.
type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ItemSpend is accumulated spend for one item title.
type ItemSpend struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthAmount is accumulated spend for one YYYY-MM month.
type MonthAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// AnalysisSummary is the final output of the analytics engine.
type AnalysisSummary struct {
	TargetYear      int             `json:"target_year"`
	TotalSpend      float64         `json:"total_spend"`
	TopCategories   []CategorySpend `json:"top_categories"`
	TopItems        []ItemCount     `json:"top_items"`
	TopItemsBySpend []ItemSpend     `json:"top_items_by_spend"`
	MonthlyTrend    []MonthAmount   `json:"monthly_trend"`
	WeekdaySpend    map[int]int     `json:"weekday_spend"` // weekday (0=Sunday) -> line count
	EarliestDate    *time.Time      `json:"earliest_date"`
	LatestDate      *time.Time      `json:"latest_date"`
	PeakMonth       *MonthAmount    `json:"peak_month"`
	TotalOrders     int             `json:"total_orders"`
	TotalRecords    int             `json:"total_records"`
	AcceptedLines   int             `json:"accepted_lines"`
	SkippedRecords  int             `json:"skipped_records"`
}

// ClassifiedTitle is the outcome of classifying one title.
type ClassifiedTitle struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Explicit bool   `json:"explicit"`
}

// CategoryRule describes one ordered keyword table of the classifier.
type CategoryRule struct {
	Priority int      `json:"priority"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// SummaryOutput bundles a summary with where it came from.
type SummaryOutput struct {
	Summary  AnalysisSummary `json:"summary"`
	Sources  []string        `json:"sources"`
	CacheHit bool            `json:"cache_hit"`
}
