package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spendwrap/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() schema.AnalysisSummary {
	return schema.AnalysisSummary{
		TargetYear:      2025,
		TotalSpend:      100,
		TopCategories:   []schema.CategorySpend{{Name: schema.Groceries, Value: 60}, {Name: schema.Electronics, Value: 40}},
		TopItems:        []schema.ItemCount{{Name: "Milk", Count: 3}},
		TopItemsBySpend: []schema.ItemSpend{{Name: "Cable", Amount: 40}, {Name: "Milk", Amount: 9}},
		MonthlyTrend:    []schema.MonthAmount{{Date: "2025-01", Amount: 30}, {Date: "2025-02", Amount: 70}},
		PeakMonth:       &schema.MonthAmount{Date: "2025-02", Amount: 70},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:  "analysis run",
			model: new(AnalysisRun),
			columns: []string{
				"analysis_id", "run_uuid", "target_year", "start_time", "end_time", "run_duration_ms",
				"total_records", "accepted_lines", "total_orders", "total_spend", "config_params",
			},
		},
		{name: "monthly total", model: new(MonthlyTotal), columns: []string{"analysis_id", "month_key", "amount", "is_peak"}},
		{name: "category total", model: new(CategoryTotal), columns: []string{"analysis_id", "category_name", "category_rank", "amount"}},
		{name: "month row", model: new(MonthRow), columns: []string{"target_year", "month", "amount", "share", "is_peak"}},
		{name: "category row", model: new(CategoryRow), columns: []string{"target_year", "rank", "category", "amount", "share"}},
		{name: "item row", model: new(ItemRow), columns: []string{"target_year", "ranking", "rank", "title", "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist in schema", col)
			}
		})
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	duration := int32(2000)
	params := `{"target_year":2025}`
	data := []AnalysisRun{
		{AnalysisID: 1, RunUUID: "a", TargetYear: 2025, StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalSpend: 12.5, ConfigParams: &params},
		{AnalysisID: 2, RunUUID: "b", TargetYear: 2024, StartTime: start}, // still running
	}

	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))

	got, err := parquet.ReadFile[AnalysisRun](outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].RunUUID)
	assert.InDelta(t, 12.5, got[0].TotalSpend, 1e-9)
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, int32(2000), *got[0].RunDurationMs)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteTrackedTotalsParquet(t *testing.T) {
	dir := t.TempDir()

	monthly := ConvertMonthlyTotalRecords([]schema.MonthlyTotalRecord{
		{AnalysisID: 1, MonthKey: "2025-01", Amount: 10, IsPeak: false},
		{AnalysisID: 1, MonthKey: "2025-02", Amount: 20, IsPeak: true},
	})
	monthlyPath := filepath.Join(dir, "monthly.parquet")
	require.NoError(t, WriteMonthlyTotalsParquet(monthly, monthlyPath))

	gotMonthly, err := parquet.ReadFile[MonthlyTotal](monthlyPath)
	require.NoError(t, err)
	assert.Equal(t, monthly, gotMonthly)

	categories := ConvertCategoryTotalRecords([]schema.CategoryTotalRecord{
		{AnalysisID: 1, CategoryName: schema.Groceries, Rank: 1, Amount: 20},
	})
	categoriesPath := filepath.Join(dir, "categories.parquet")
	require.NoError(t, WriteCategoryTotalsParquet(categories, categoriesPath))

	gotCategories, err := parquet.ReadFile[CategoryTotal](categoriesPath)
	require.NoError(t, err)
	assert.Equal(t, categories, gotCategories)
}

func TestWriteSummaryParquet(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "spend")

	files, err := WriteSummaryParquet(sampleSummary(), prefix)
	require.NoError(t, err)
	assert.Equal(t, prefix+".monthly.parquet", files.Monthly)
	assert.Equal(t, prefix+".categories.parquet", files.Categories)
	assert.Equal(t, prefix+".items.parquet", files.Items)

	months, err := parquet.ReadFile[MonthRow](files.Monthly)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.False(t, months[0].IsPeak)
	assert.True(t, months[1].IsPeak)
	assert.InDelta(t, 70.0, months[1].Share, 1e-9)

	categories, err := parquet.ReadFile[CategoryRow](files.Categories)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int32(1), categories[0].Rank)
	assert.Equal(t, schema.Groceries, categories[0].Category)

	items, err := parquet.ReadFile[ItemRow](files.Items)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, CountRanking, items[0].Ranking)
	assert.Equal(t, SpendRanking, items[1].Ranking)
	assert.Equal(t, "Cable", items[1].Title)
}

func TestWriteSummaryParquet_Empty(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "empty")

	files, err := WriteSummaryParquet(schema.AnalysisSummary{TargetYear: 2025}, prefix)
	require.NoError(t, err)

	months, err := parquet.ReadFile[MonthRow](files.Monthly)
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestWriteRows_BadPath(t *testing.T) {
	err := WriteAnalysisRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "runs.parquet"))
	assert.Error(t, err)
}

func TestConvertAnalysisRunRecords(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.AnalysisRunRecord{
		{AnalysisID: 7, RunUUID: "uuid-7", TargetYear: 2025, StartTime: start, TotalRecords: 10, AcceptedLines: 8, TotalOrders: 3, TotalSpend: 42},
	}

	got := ConvertAnalysisRunRecords(records)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].AnalysisID)
	assert.Equal(t, "uuid-7", got[0].RunUUID)
	assert.Equal(t, int32(8), got[0].AcceptedLines)
	assert.InDelta(t, 42.0, got[0].TotalSpend, 1e-9)
	assert.Nil(t, got[0].EndTime)
}
