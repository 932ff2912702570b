// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/spendwrap/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSummaryStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and their totals.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(runUUID string, targetYear int, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totals schema.RunTotals) error

	// RecordMonthlyTotal stores the spend of one month for a run
	RecordMonthlyTotal(analysisID int64, monthKey string, amount float64, isPeak bool) error

	// RecordCategoryTotal stores one ranked category for a run
	RecordCategoryTotal(analysisID int64, category string, rank int, amount float64) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)
	GetAllMonthlyTotals() ([]schema.MonthlyTotalRecord, error)
	GetAllCategoryTotals() ([]schema.CategoryTotalRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Publisher delivers a finished summary to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, output *schema.SummaryOutput) error
	Close() error
}
