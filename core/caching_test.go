package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/iocache"
	"github.com/huangsam/spendwrap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ordersCSV = "Order ID,Order Date,Title,Total Owed\n" +
	"111-1,2025-01-15,Organic Avocado,$4.50\n" +
	"111-2,2025-02-20,USB-C Charging Cable,\"$1,012.00\"\n" +
	"111-3,2024-12-31,Paperback Novel,$9.99\n"

func writeOrders(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(paths ...string) *contract.Config {
	return &contract.Config{
		Paths:      paths,
		TargetYear: 2025,
		Workers:    2,
		Precision:  contract.DefaultPrecision,
		Output:     schema.TextOut,
	}
}

func TestGenerateCacheKey(t *testing.T) {
	path := writeOrders(t, ordersCSV)
	cfg := testConfig(path)

	key1, err := generateCacheKey(cfg)
	require.NoError(t, err)
	assert.Len(t, key1, 64)

	key2, err := generateCacheKey(cfg)
	require.NoError(t, err)
	assert.Equal(t, key1, key2, "same inputs give the same key")

	other := cfg.CloneWithYear(2024)
	key3, err := generateCacheKey(other)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3, "year is part of the key")

	require.NoError(t, os.WriteFile(path, []byte(ordersCSV+"111-4,2025-03-01,Lemon,$1.00\n"), 0o600))
	key4, err := generateCacheKey(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key4, "file contents are part of the key")

	_, err = generateCacheKey(testConfig(filepath.Join(t.TempDir(), "missing.csv")))
	assert.Error(t, err)
}

func TestCheckCacheHit(t *testing.T) {
	summary := schema.AnalysisSummary{TargetYear: 2025, TotalSpend: 12.5}
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	now := time.Now().Unix()

	tests := []struct {
		name    string
		data    []byte
		version int
		ts      int64
		err     error
		hit     bool
	}{
		{"fresh entry", data, currentCacheVersion, now, nil, true},
		{"missing entry", nil, 0, 0, sql.ErrNoRows, false},
		{"old version", data, currentCacheVersion + 1, now, nil, false},
		{"stale entry", data, currentCacheVersion, time.Now().Add(-cacheTTL - time.Hour).Unix(), nil, false},
		{"corrupt payload", []byte("{"), currentCacheVersion, now, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", "key").Return(tt.data, tt.version, tt.ts, tt.err)

			got := checkCacheHit(store, "key")
			if tt.hit {
				require.NotNil(t, got)
				assert.InDelta(t, 12.5, got.TotalSpend, 1e-9)
			} else {
				assert.Nil(t, got)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestCachedSummary_MissThenStore(t *testing.T) {
	cfg := testConfig(writeOrders(t, ordersCSV))

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.AnythingOfType("string")).Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", mock.AnythingOfType("string"), mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSummaryStore").Return(store)

	out, err := cachedSummary(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.False(t, out.CacheHit)
	assert.InDelta(t, 1016.5, out.Summary.TotalSpend, 1e-9)
	assert.Equal(t, cfg.Paths, out.Sources)

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestCachedSummary_Hit(t *testing.T) {
	cfg := testConfig(writeOrders(t, ordersCSV))
	cached, err := json.Marshal(schema.AnalysisSummary{TargetYear: 2025, TotalSpend: 1})
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.AnythingOfType("string")).Return(cached, currentCacheVersion, time.Now().Unix(), nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSummaryStore").Return(store)

	out, err := cachedSummary(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.True(t, out.CacheHit)
	assert.InDelta(t, 1.0, out.Summary.TotalSpend, 1e-9)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedSummary_SetFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(writeOrders(t, ordersCSV))

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSummaryStore").Return(store)

	out, err := cachedSummary(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Summary.AcceptedLines)
}

func TestCachedSummary_NoStore(t *testing.T) {
	cfg := testConfig(writeOrders(t, ordersCSV))

	out, err := cachedSummary(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.SkippedRecords)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSummaryStore").Return(nil)
	out, err = cachedSummary(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Summary.AcceptedLines)
}

func TestCachedSummary_MissingFile(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.csv"))

	store := &iocache.MockCacheStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSummaryStore").Return(store)

	_, err := cachedSummary(context.Background(), cfg, mgr)
	assert.Error(t, err)
	store.AssertNotCalled(t, "Get", mock.Anything)
}
