package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/parquet"
)

// ExecuteAnalysisExport writes every tracked run, monthly total and category total
// of store to three Parquet files next to outputFile.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not configured. Set --analysis-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	monthly, err := store.GetAllMonthlyTotals()
	if err != nil {
		return fmt.Errorf("failed to retrieve monthly totals: %w", err)
	}
	categories, err := store.GetAllCategoryTotals()
	if err != nil {
		return fmt.Errorf("failed to retrieve category totals: %w", err)
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertAnalysisRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(runs), runsFile)

	monthlyFile := outputFile + ".monthly_totals.parquet"
	if err := parquet.WriteMonthlyTotalsParquet(parquet.ConvertMonthlyTotalRecords(monthly), monthlyFile); err != nil {
		return fmt.Errorf("failed to write monthly totals: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d monthly totals to: %s\n", len(monthly), monthlyFile)

	categoriesFile := outputFile + ".category_totals.parquet"
	if err := parquet.WriteCategoryTotalsParquet(parquet.ConvertCategoryTotalRecords(categories), categoriesFile); err != nil {
		return fmt.Errorf("failed to write category totals: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d category totals to: %s\n", len(categories), categoriesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")

	return nil
}
