// Package iocache persists cached summaries and tracked analysis runs.
package iocache

import (
	"sync"

	"github.com/huangsam/spendwrap/internal/contract"
)

// CacheStoreManager manages the summary cache and the analysis run store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	summary      contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSummaryStore returns the summary CacheStore.
func (mgr *CacheStoreManager) GetSummaryStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.summary
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
