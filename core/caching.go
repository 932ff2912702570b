package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/reader"
	"github.com/huangsam/spendwrap/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a stored summary stays fresh.
const cacheTTL = 7 * 24 * time.Hour

// cachedSummary returns the summary for cfg, consulting the summary store first.
func cachedSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.SummaryOutput, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetSummaryStore()
	}
	if store == nil {
		// Fallback to direct computation
		return computeSummary(ctx, cfg)
	}

	key, err := generateCacheKey(cfg)
	if err != nil {
		// Let the reader report unreadable inputs
		return computeSummary(ctx, cfg)
	}

	// Check for cache hit
	if summary := checkCacheHit(store, key); summary != nil {
		return &schema.SummaryOutput{Summary: *summary, Sources: cfg.Paths, CacheHit: true}, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.AnalysisSummary {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}

	var summary schema.AnalysisSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}
	return &summary
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, store contract.CacheStore, key string) (*schema.SummaryOutput, error) {
	output, err := computeSummary(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(output.Summary); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store summary in cache", err)
		}
	}

	return output, nil
}

// computeSummary reads every input file and runs the engine over the rows.
func computeSummary(ctx context.Context, cfg *contract.Config) (*schema.SummaryOutput, error) {
	records, err := reader.ReadFiles(ctx, cfg.Paths)
	if err != nil {
		return nil, err
	}
	summary, err := AnalyzeParallel(ctx, records, cfg.TargetYear, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}
	return &schema.SummaryOutput{Summary: summary, Sources: cfg.Paths}, nil
}

// generateCacheKey hashes the target year with the name and contents of every input,
// so editing a file invalidates its cached summary.
func generateCacheKey(cfg *contract.Config) (string, error) {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "v%d:year=%d", currentCacheVersion, cfg.TargetYear)
	for _, p := range cfg.Paths {
		_, _ = fmt.Fprintf(h, ":%s=", filepath.Clean(p))
		if err := hashFile(h, p); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = io.Copy(w, f)
	return err
}
