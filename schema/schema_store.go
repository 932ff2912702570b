package schema

import "time"

// RunTotals holds the figures written when an analysis run completes.
type RunTotals struct {
	TotalRecords  int
	AcceptedLines int
	TotalOrders   int
	TotalSpend    float64
}

// AnalysisRunRecord represents a row from the spendwrap_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	RunUUID       string
	TargetYear    int32
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRecords  int32
	AcceptedLines int32
	TotalOrders   int32
	TotalSpend    float64
	ConfigParams  *string
}

// MonthlyTotalRecord represents a row from the spendwrap_monthly_totals table.
type MonthlyTotalRecord struct {
	AnalysisID int64
	MonthKey   string
	Amount     float64
	IsPeak     bool
}

// CategoryTotalRecord represents a row from the spendwrap_category_totals table.
type CategoryTotalRecord struct {
	AnalysisID   int64
	CategoryName string
	Rank         int32
	Amount       float64
}
