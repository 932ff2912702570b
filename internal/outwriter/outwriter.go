// Package outwriter renders summaries, classifications and keyword tables.
package outwriter

import (
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints a spend summary using the configured output format.
func (ow *OutWriter) WriteSummary(output *schema.SummaryOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(output, cfg, duration)
}

// WriteClassified prints classified titles using the configured output format.
func (ow *OutWriter) WriteClassified(results []schema.ClassifiedTitle, cfg *contract.Config) error {
	return PrintClassified(results, cfg)
}

// WriteCategories prints the ordered keyword tables using the configured output format.
func (ow *OutWriter) WriteCategories(rules []schema.CategoryRule, cfg *contract.Config) error {
	return PrintCategoryRules(rules, cfg)
}
