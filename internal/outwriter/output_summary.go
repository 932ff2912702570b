package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/parquet"
	"github.com/huangsam/spendwrap/schema"
)

const dateFormat = "2006-01-02"

// PrintSummary outputs a summary, dispatching based on the output format configured.
func PrintSummary(output *schema.SummaryOutput, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, output.Summary, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeSummaryParquet(os.Stderr, output.Summary, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(w, output, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryCSV writes every ranked section as section,rank,name,value rows.
func writeSummaryCSV(w io.Writer, s schema.AnalysisSummary, fmtFloat func(float64) string) error {
	header := []string{"section", "rank", "name", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range schema.FlattenSummary(s) {
			rec := []string{string(e.Section), strconv.Itoa(e.Rank), e.Name, fmtFloat(e.Value)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeSummaryParquet writes the three summary tables next to prefix.
func writeSummaryParquet(w io.Writer, s schema.AnalysisSummary, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	files, err := parquet.WriteSummaryParquet(s, prefix)
	if err != nil {
		return err
	}
	for _, f := range []string{files.Monthly, files.Categories, files.Items} {
		_, _ = fmt.Fprintf(w, "Wrote Parquet to %s\n", f)
	}
	return nil
}

// writeSummaryText renders the human-readable tables.
func writeSummaryText(w io.Writer, output *schema.SummaryOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	s := output.Summary
	nameWidth := GetMaxTableNameWidth(cfg)

	overview := [][]string{
		{"Total spend", fmtFloat(s.TotalSpend)},
		{"Orders", strconv.Itoa(s.TotalOrders)},
		{"Lines", fmt.Sprintf("%d of %d records", s.AcceptedLines, s.TotalRecords)},
	}
	if s.EarliestDate != nil && s.LatestDate != nil {
		overview = append(overview, []string{"Range", s.EarliestDate.Format(dateFormat) + " → " + s.LatestDate.Format(dateFormat)})
	}
	if s.PeakMonth != nil {
		overview = append(overview, []string{"Peak month", fmt.Sprintf("%s (%s)", s.PeakMonth.Date, fmtFloat(s.PeakMonth.Amount))})
	}
	if err := writeTable(w, heading(cfg, "💰", "Overview"), []string{"Metric", "Value"}, overview); err != nil {
		return err
	}

	var categories [][]string
	for i, c := range s.TopCategories {
		share := schema.ShareOf(c.Value, s.TotalSpend)
		categories = append(categories, []string{strconv.Itoa(i + 1), c.Name, fmtFloat(c.Value), formatShare(share), shareLabel(share, cfg)})
	}
	if err := writeTable(w, heading(cfg, "🏷️ ", "Top categories"), []string{"Rank", "Category", "Spend", "Share", "Label"}, categories); err != nil {
		return err
	}

	var items [][]string
	for i, it := range s.TopItems {
		items = append(items, []string{strconv.Itoa(i + 1), contract.TruncateName(it.Name, nameWidth), strconv.Itoa(it.Count)})
	}
	if err := writeTable(w, heading(cfg, "🛒", "Most purchased"), []string{"Rank", "Item", "Count"}, items); err != nil {
		return err
	}

	var itemSpend [][]string
	for i, it := range s.TopItemsBySpend {
		share := schema.ShareOf(it.Amount, s.TotalSpend)
		itemSpend = append(itemSpend, []string{strconv.Itoa(i + 1), contract.TruncateName(it.Name, nameWidth), fmtFloat(it.Amount), formatShare(share)})
	}
	if err := writeTable(w, heading(cfg, "💸", "Top items by spend"), []string{"Rank", "Item", "Spend", "Share"}, itemSpend); err != nil {
		return err
	}

	var months [][]string
	for _, m := range s.MonthlyTrend {
		marker := ""
		if s.PeakMonth != nil && s.PeakMonth.Date == m.Date {
			marker = "peak"
			if cfg.UseColors {
				marker = contract.PeakColor.Sprint(marker)
			}
		}
		months = append(months, []string{m.Date, fmtFloat(m.Amount), formatShare(schema.ShareOf(m.Amount, s.TotalSpend)), marker})
	}
	if err := writeTable(w, heading(cfg, "📈", "Monthly trend"), []string{"Month", "Spend", "Share", ""}, months); err != nil {
		return err
	}

	var weekdays [][]string
	for day := range 7 {
		if n, ok := s.WeekdaySpend[day]; ok {
			weekdays = append(weekdays, []string{schema.WeekdayName(day), strconv.Itoa(n), formatShare(schema.ShareOf(float64(n), float64(s.AcceptedLines)))})
		}
	}
	if err := writeTable(w, heading(cfg, "🗓️ ", "Weekdays"), []string{"Day", "Lines", "Share"}, weekdays); err != nil {
		return err
	}

	source := "computed"
	if output.CacheHit {
		source = "cached"
	}
	_, err := fmt.Fprintf(w, "Summary %s in %v with %d workers. Cache backend: %s\n", source, duration, cfg.Workers, cfg.CacheBackend)
	return err
}

// heading prefixes a table title with an emoji when enabled.
func heading(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}
