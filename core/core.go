// Package core wires the spend engine to its inputs, stores and outputs.
package core

import (
	"context"
	"time"

	"github.com/huangsam/spendwrap/core/classify"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/notify"
	"github.com/huangsam/spendwrap/internal/outwriter"
	"github.com/huangsam/spendwrap/schema"
)

// newPublisher opens the summary publisher for cfg. Tests swap it out.
var newPublisher = func(cfg *contract.Config) (contract.Publisher, error) {
	return notify.NewAMQPPublisher(cfg.PublishURL, cfg.PublishExchange, cfg.PublishRoutingKey)
}

// ExecuteSummary analyzes the configured order-history files, writes the summary in the
// configured output format and publishes it when a broker URL is set.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := GetSummaryResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteSummary(output, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.PublishURL != "" {
		publishSummary(ctx, cfg, output)
	}
	return nil
}

// GetSummaryResult runs the analysis with caching and run tracking and returns the
// summary without printing it.
func GetSummaryResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.SummaryOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogSummaryHeader(cfg)
	}

	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	ctx = beginAnalysisRun(ctx, cfg, analysisStore, time.Now())

	output, err := cachedSummary(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}

	finishAnalysisRun(ctx, analysisStore, output.Summary)
	return output, nil
}

// ExecuteClassify classifies each title and writes the results.
func ExecuteClassify(_ context.Context, cfg *contract.Config, titles []string) error {
	results := GetClassifyResults(titles, cfg.Category)
	return outwriter.NewOutWriter().WriteClassified(results, cfg)
}

// GetClassifyResults classifies titles with an optional explicit category.
func GetClassifyResults(titles []string, explicit string) []schema.ClassifiedTitle {
	results := make([]schema.ClassifiedTitle, 0, len(titles))
	for _, t := range titles {
		results = append(results, classify.Describe(t, explicit))
	}
	return results
}

// ExecuteCategories writes the ordered keyword tables of the classifier.
func ExecuteCategories(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteCategories(GetCategoryRules(), cfg)
}

// GetCategoryRules returns the classifier tables with their 1-based priority.
func GetCategoryRules() []schema.CategoryRule {
	rules := classify.Rules()
	out := make([]schema.CategoryRule, 0, len(rules))
	for i, r := range rules {
		out = append(out, schema.CategoryRule{Priority: i + 1, Category: r.Category, Keywords: r.Keywords})
	}
	return out
}

// publishSummary sends output to the configured broker. Failures are reported, not returned.
func publishSummary(ctx context.Context, cfg *contract.Config, output *schema.SummaryOutput) {
	pub, err := newPublisher(cfg)
	if err != nil {
		contract.LogWarn("Cannot connect to summary broker", err)
		return
	}
	defer func() { _ = pub.Close() }()

	if err := pub.Publish(ctx, output); err != nil {
		contract.LogWarn("Failed to publish summary", err)
	}
}
