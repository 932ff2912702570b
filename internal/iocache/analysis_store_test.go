package iocache

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spendwrap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	t.Helper()
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*AnalysisStoreImpl)
	require.True(t, ok)
	return impl
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	analysisID, err := store.BeginAnalysis("run", 2025, time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), analysisID)

	assert.NoError(t, store.EndAnalysis(1, time.Now(), schema.RunTotals{TotalRecords: 3}))
	assert.NoError(t, store.RecordMonthlyTotal(1, "2025-01", 10, true))
	assert.NoError(t, store.RecordCategoryTotal(1, schema.Groceries, 1, 10))

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestAnalysisStore_RunLifecycle(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	params := map[string]any{"target_year": 2025, "paths": []string{"orders.csv"}}
	analysisID, err := store.BeginAnalysis("8d6a1f7e-run", 2025, start, params)
	require.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	require.NoError(t, store.RecordMonthlyTotal(analysisID, "2025-01", 30.5, false))
	require.NoError(t, store.RecordMonthlyTotal(analysisID, "2025-02", 70, true))
	require.NoError(t, store.RecordCategoryTotal(analysisID, schema.Electronics, 2, 40))
	require.NoError(t, store.RecordCategoryTotal(analysisID, schema.Groceries, 1, 60))

	totals := schema.RunTotals{TotalRecords: 12, AcceptedLines: 10, TotalOrders: 4, TotalSpend: 100.5}
	require.NoError(t, store.EndAnalysis(analysisID, start.Add(1500*time.Millisecond), totals))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, analysisID, run.AnalysisID)
	assert.Equal(t, "8d6a1f7e-run", run.RunUUID)
	assert.Equal(t, int32(2025), run.TargetYear)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(12), run.TotalRecords)
	assert.Equal(t, int32(10), run.AcceptedLines)
	assert.Equal(t, int32(4), run.TotalOrders)
	assert.InDelta(t, 100.5, run.TotalSpend, 1e-9)

	require.NotNil(t, run.ConfigParams)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &stored))
	assert.Equal(t, float64(2025), stored["target_year"])

	monthly, err := store.GetAllMonthlyTotals()
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2025-01", monthly[0].MonthKey)
	assert.False(t, monthly[0].IsPeak)
	assert.True(t, monthly[1].IsPeak)

	categories, err := store.GetAllCategoryTotals()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, schema.Groceries, categories[0].CategoryName, "ordered by rank")
	assert.Equal(t, int32(1), categories[0].Rank)
}

func TestAnalysisStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	_, err := store.BeginAnalysis("pending", 2024, time.Now(), nil)
	require.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
}

func TestAnalysisStore_EndUnknownRun(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	err := store.EndAnalysis(42, time.Now(), schema.RunTotals{})
	assert.Error(t, err)
}

func TestAnalysisStore_DuplicateMonth(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	id, err := store.BeginAnalysis("dup", 2025, time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordMonthlyTotal(id, "2025-03", 1, false))
	assert.Error(t, store.RecordMonthlyTotal(id, "2025-03", 2, false))
}

func TestAnalysisStore_GetStatus(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, uint(0), status.SchemaVersion)
	assert.Len(t, status.TableSizes, len(analysisTables))

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	for i, start := range []time.Time{first, second} {
		id, err := store.BeginAnalysis("run", 2025, start, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordMonthlyTotal(id, "2025-01", 5, true))
		require.NoError(t, store.EndAnalysis(id, start.Add(time.Second), schema.RunTotals{AcceptedLines: 3 + i}))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.True(t, second.Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 7, status.TotalLinesTracked)
	assert.Equal(t, int64(2), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[monthlyTotalsTable])
	assert.Equal(t, int64(0), status.TableSizes[categoryTotalsTable])
}

func TestGetCreateAnalysisQueries(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			assert.Contains(t, getCreateAnalysisRunsQuery(backend), analysisRunsTable)
			assert.Contains(t, getCreateMonthlyTotalsQuery(backend), monthlyTotalsTable)
			assert.Contains(t, getCreateCategoryTotalsQuery(backend), categoryTotalsTable)
		})
	}
	assert.Contains(t, getCreateAnalysisRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateAnalysisRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
}

func TestClearAnalysis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginAnalysis("run", 2025, time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath, ""))

	reopened, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	status, err := reopened.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
}

func TestPrintAnalysisStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintAnalysisStatus(&buf, schema.AnalysisStatus{
		Backend:           "sqlite",
		Connected:         true,
		SchemaVersion:     2,
		TotalRuns:         3,
		LastRunID:         3,
		TotalLinesTracked: 42,
		TableSizes: map[string]int64{
			monthlyTotalsTable: 12,
			analysisRunsTable:  3,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Schema Version: 2")
	assert.Contains(t, out, "Total Runs: 3")
	assert.Contains(t, out, "Total Lines Tracked: 42")
	runsAt := bytes.Index(buf.Bytes(), []byte(analysisRunsTable))
	monthlyAt := bytes.Index(buf.Bytes(), []byte(monthlyTotalsTable))
	assert.Less(t, runsAt, monthlyAt, "tables are listed in sorted order")
}
