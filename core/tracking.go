package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
)

// beginAnalysisRun opens a tracked run and returns a context carrying its id.
// Tracking failures never stop the analysis.
func beginAnalysisRun(ctx context.Context, cfg *contract.Config, store contract.AnalysisStore, startTime time.Time) context.Context {
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"paths":       cfg.Paths,
		"target_year": cfg.TargetYear,
		"workers":     cfg.Workers,
		"output":      string(cfg.Output),
	}
	analysisID, err := store.BeginAnalysis(uuid.NewString(), cfg.TargetYear, startTime, configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	if analysisID > 0 {
		ctx = withAnalysisID(ctx, analysisID)
	}
	return ctx
}

// finishAnalysisRun records the monthly and category totals of summary and closes the run.
func finishAnalysisRun(ctx context.Context, store contract.AnalysisStore, summary schema.AnalysisSummary) {
	analysisID, ok := getAnalysisID(ctx)
	if store == nil || !ok || analysisID <= 0 {
		return
	}

	peak := ""
	if summary.PeakMonth != nil {
		peak = summary.PeakMonth.Date
	}
	for _, m := range summary.MonthlyTrend {
		if err := store.RecordMonthlyTotal(analysisID, m.Date, m.Amount, m.Date == peak); err != nil {
			contract.LogWarn("Failed to record monthly total", err)
		}
	}
	for i, c := range summary.TopCategories {
		if err := store.RecordCategoryTotal(analysisID, c.Name, i+1, c.Value); err != nil {
			contract.LogWarn("Failed to record category total", err)
		}
	}

	totals := schema.RunTotals{
		TotalRecords:  summary.TotalRecords,
		AcceptedLines: summary.AcceptedLines,
		TotalOrders:   summary.TotalOrders,
		TotalSpend:    summary.TotalSpend,
	}
	if err := store.EndAnalysis(analysisID, time.Now(), totals); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
