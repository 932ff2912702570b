// Package parquet provides data structures and functions for exporting spend
// summaries and tracked analysis runs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/spendwrap/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single tracked analysis run with metadata.
// This struct maps to the spendwrap_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RunUUID is the globally unique id of the run
	RunUUID string `parquet:"run_uuid,snappy"`

	// TargetYear is the calendar year that was analyzed
	TargetYear int32 `parquet:"target_year,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalRecords  int32   `parquet:"total_records,snappy"`
	AcceptedLines int32   `parquet:"accepted_lines,snappy"`
	TotalOrders   int32   `parquet:"total_orders,snappy"`
	TotalSpend    float64 `parquet:"total_spend,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MonthlyTotal maps to the spendwrap_monthly_totals database table.
type MonthlyTotal struct {
	AnalysisID int64   `parquet:"analysis_id,snappy"`
	MonthKey   string  `parquet:"month_key,snappy"`
	Amount     float64 `parquet:"amount,snappy"`
	IsPeak     bool    `parquet:"is_peak,snappy"`
}

// CategoryTotal maps to the spendwrap_category_totals database table.
type CategoryTotal struct {
	AnalysisID   int64   `parquet:"analysis_id,snappy"`
	CategoryName string  `parquet:"category_name,snappy"`
	Rank         int32   `parquet:"category_rank,snappy"`
	Amount       float64 `parquet:"amount,snappy"`
}

// MonthRow is one month of a summary's monthly trend.
type MonthRow struct {
	TargetYear int32   `parquet:"target_year,snappy"`
	Month      string  `parquet:"month,snappy"`
	Amount     float64 `parquet:"amount,snappy"`
	Share      float64 `parquet:"share,snappy"`
	IsPeak     bool    `parquet:"is_peak,snappy"`
}

// CategoryRow is one ranked category of a summary.
type CategoryRow struct {
	TargetYear int32   `parquet:"target_year,snappy"`
	Rank       int32   `parquet:"rank,snappy"`
	Category   string  `parquet:"category,snappy"`
	Amount     float64 `parquet:"amount,snappy"`
	Share      float64 `parquet:"share,snappy"`
}

// ItemRow is one ranked item of a summary. Ranking is "count" or "spend".
type ItemRow struct {
	TargetYear int32   `parquet:"target_year,snappy"`
	Ranking    string  `parquet:"ranking,snappy"`
	Rank       int32   `parquet:"rank,snappy"`
	Title      string  `parquet:"title,snappy"`
	Value      float64 `parquet:"value,snappy"`
}

// Item rankings carried by ItemRow.
const (
	CountRanking = "count"
	SpendRanking = "spend"
)

// writeRows writes data to a new Parquet file at outputPath, with the schema
// inferred from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteMonthlyTotalsParquet writes tracked monthly totals to a Parquet file.
func WriteMonthlyTotalsParquet(data []MonthlyTotal, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteCategoryTotalsParquet writes tracked category totals to a Parquet file.
func WriteCategoryTotalsParquet(data []CategoryTotal, outputPath string) error {
	return writeRows(data, outputPath)
}

// SummaryFiles names the three files written for one summary.
type SummaryFiles struct {
	Monthly    string
	Categories string
	Items      string
}

// SummaryFilesFor derives the summary file names from an output prefix.
func SummaryFilesFor(prefix string) SummaryFiles {
	return SummaryFiles{
		Monthly:    prefix + ".monthly.parquet",
		Categories: prefix + ".categories.parquet",
		Items:      prefix + ".items.parquet",
	}
}

// WriteSummaryParquet writes the monthly trend, top categories and top items of
// summary next to prefix and returns the file names.
func WriteSummaryParquet(summary schema.AnalysisSummary, prefix string) (SummaryFiles, error) {
	files := SummaryFilesFor(prefix)
	if err := writeRows(SummaryMonthRows(summary), files.Monthly); err != nil {
		return files, fmt.Errorf("monthly trend: %w", err)
	}
	if err := writeRows(SummaryCategoryRows(summary), files.Categories); err != nil {
		return files, fmt.Errorf("top categories: %w", err)
	}
	if err := writeRows(SummaryItemRows(summary), files.Items); err != nil {
		return files, fmt.Errorf("top items: %w", err)
	}
	return files, nil
}

// SummaryMonthRows flattens the monthly trend of a summary.
func SummaryMonthRows(s schema.AnalysisSummary) []MonthRow {
	rows := make([]MonthRow, len(s.MonthlyTrend))
	for i, m := range s.MonthlyTrend {
		rows[i] = MonthRow{
			TargetYear: int32(s.TargetYear),
			Month:      m.Date,
			Amount:     m.Amount,
			Share:      schema.ShareOf(m.Amount, s.TotalSpend),
			IsPeak:     s.PeakMonth != nil && s.PeakMonth.Date == m.Date,
		}
	}
	return rows
}

// SummaryCategoryRows flattens the top categories of a summary.
func SummaryCategoryRows(s schema.AnalysisSummary) []CategoryRow {
	rows := make([]CategoryRow, len(s.TopCategories))
	for i, c := range s.TopCategories {
		rows[i] = CategoryRow{
			TargetYear: int32(s.TargetYear),
			Rank:       int32(i + 1),
			Category:   c.Name,
			Amount:     c.Value,
			Share:      schema.ShareOf(c.Value, s.TotalSpend),
		}
	}
	return rows
}

// SummaryItemRows flattens both item rankings of a summary, by count first.
func SummaryItemRows(s schema.AnalysisSummary) []ItemRow {
	rows := make([]ItemRow, 0, len(s.TopItems)+len(s.TopItemsBySpend))
	for i, it := range s.TopItems {
		rows = append(rows, ItemRow{
			TargetYear: int32(s.TargetYear),
			Ranking:    CountRanking,
			Rank:       int32(i + 1),
			Title:      it.Name,
			Value:      float64(it.Count),
		})
	}
	for i, it := range s.TopItemsBySpend {
		rows = append(rows, ItemRow{
			TargetYear: int32(s.TargetYear),
			Ranking:    SpendRanking,
			Rank:       int32(i + 1),
			Title:      it.Name,
			Value:      it.Amount,
		})
	}
	return rows
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:    record.AnalysisID,
			RunUUID:       record.RunUUID,
			TargetYear:    record.TargetYear,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRecords:  record.TotalRecords,
			AcceptedLines: record.AcceptedLines,
			TotalOrders:   record.TotalOrders,
			TotalSpend:    record.TotalSpend,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertMonthlyTotalRecords converts schema.MonthlyTotalRecord to MonthlyTotal for Parquet export.
func ConvertMonthlyTotalRecords(records []schema.MonthlyTotalRecord) []MonthlyTotal {
	result := make([]MonthlyTotal, len(records))
	for i, r := range records {
		result[i] = MonthlyTotal(r)
	}
	return result
}

// ConvertCategoryTotalRecords converts schema.CategoryTotalRecord to CategoryTotal for Parquet export.
func ConvertCategoryTotalRecords(records []schema.CategoryTotalRecord) []CategoryTotal {
	result := make([]CategoryTotal, len(records))
	for i, r := range records {
		result[i] = CategoryTotal{
			AnalysisID:   r.AnalysisID,
			CategoryName: r.CategoryName,
			Rank:         r.Rank,
			Amount:       r.Amount,
		}
	}
	return result
}
