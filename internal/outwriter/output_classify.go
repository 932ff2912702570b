package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
)

// PrintClassified outputs classified titles in the configured format.
func PrintClassified(results []schema.ClassifiedTitle, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassifiedCSV(w, results)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for summaries")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassifiedText(w, results, cfg)
		}, "Wrote table")
	}
}

func writeClassifiedCSV(w io.Writer, results []schema.ClassifiedTitle) error {
	return writeCSVWithHeader(w, []string{"title", "category", "explicit"}, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := cw.Write([]string{r.Title, r.Category, strconv.FormatBool(r.Explicit)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeClassifiedText(w io.Writer, results []schema.ClassifiedTitle, cfg *contract.Config) error {
	width := GetMaxTableNameWidth(cfg)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		source := "keyword"
		if r.Explicit {
			source = "explicit"
		}
		rows = append(rows, []string{contract.TruncateName(r.Title, width), r.Category, source})
	}
	return writeTable(w, heading(cfg, "🏷️ ", "Classified titles"), []string{"Title", "Category", "Source"}, rows)
}

// PrintCategoryRules outputs the ordered keyword tables in the configured format.
func PrintCategoryRules(rules []schema.CategoryRule, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rules)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCategoryRulesCSV(w, rules)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for summaries")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCategoryRulesText(w, rules, cfg)
		}, "Wrote table")
	}
}

func writeCategoryRulesCSV(w io.Writer, rules []schema.CategoryRule) error {
	return writeCSVWithHeader(w, []string{"priority", "category", "keywords"}, func(cw *csv.Writer) error {
		for _, r := range rules {
			if err := cw.Write([]string{strconv.Itoa(r.Priority), r.Category, strings.Join(r.Keywords, "|")}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeCategoryRulesText(w io.Writer, rules []schema.CategoryRule, cfg *contract.Config) error {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{strconv.Itoa(r.Priority), r.Category, strconv.Itoa(len(r.Keywords)), strings.Join(r.Keywords, ", ")})
	}
	if err := writeTable(w, heading(cfg, "📚", "Category keywords"), []string{"Priority", "Category", "Count", "Keywords"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "The first category with a keyword contained in the lower-cased title wins. Unmatched titles are Other.")
	return err
}
