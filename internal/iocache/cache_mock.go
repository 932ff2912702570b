package iocache

import (
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetSummaryStore implements the CacheManager interface.
func (m *MockCacheManager) GetSummaryStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(runUUID string, targetYear int, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(runUUID, targetYear, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endTime time.Time, totals schema.RunTotals) error {
	args := m.Called(analysisID, endTime, totals)
	return args.Error(0)
}

// RecordMonthlyTotal implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordMonthlyTotal(analysisID int64, monthKey string, amount float64, isPeak bool) error {
	args := m.Called(analysisID, monthKey, amount, isPeak)
	return args.Error(0)
}

// RecordCategoryTotal implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordCategoryTotal(analysisID int64, category string, rank int, amount float64) error {
	args := m.Called(analysisID, category, rank, amount)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return runs, args.Error(1)
}

// GetAllMonthlyTotals implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllMonthlyTotals() ([]schema.MonthlyTotalRecord, error) {
	args := m.Called()
	totals, _ := args.Get(0).([]schema.MonthlyTotalRecord)
	return totals, args.Error(1)
}

// GetAllCategoryTotals implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllCategoryTotals() ([]schema.CategoryTotalRecord, error) {
	args := m.Called()
	totals, _ := args.Get(0).([]schema.CategoryTotalRecord)
	return totals, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
