// Package reader decodes order-history CSV exports into raw records.
package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
	"golang.org/x/sync/errgroup"
)

// ErrNoData is returned when none of the inputs yielded a single row.
var ErrNoData = errors.New("no valid data found in input files")

const utf8BOM = "\uFEFF"

// IsCSV reports whether a path carries a .csv extension.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// ReadCSV decodes one CSV stream. The first row is the header; every later row
// becomes a record keyed by header name. Short rows leave trailing keys absent
// and extra trailing fields are dropped.
func ReadCSV(r io.Reader) ([]schema.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []schema.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlankRow(row) {
			continue
		}
		rec := make(schema.RawRecord, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			if name == "" {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// isBlankRow matches rows made only of empty fields, such as a stray ",,,".
func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ReadFile opens and decodes a single CSV file.
func ReadFile(path string) ([]schema.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// ReadFiles decodes every CSV path concurrently and concatenates the rows in
// argument order. Paths without a .csv extension are skipped with a warning.
// It returns ErrNoData when no file produced a row.
func ReadFiles(ctx context.Context, paths []string) ([]schema.RawRecord, error) {
	results := make([][]schema.RawRecord, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		if !IsCSV(p) {
			contract.LogWarn("Skipping non-CSV file", errors.New(p))
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := ReadFile(p)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	if total == 0 {
		return nil, ErrNoData
	}

	all := make([]schema.RawRecord, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
