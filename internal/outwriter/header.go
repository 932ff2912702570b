package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/spendwrap/internal/contract"
)

// LogSummaryHeader prints the inputs and year of a summary run to stderr,
// leaving stdout to the rendered output.
func LogSummaryHeader(cfg *contract.Config) {
	writeSummaryHeader(os.Stderr, cfg)
}

func writeSummaryHeader(w io.Writer, cfg *contract.Config) {
	names := make([]string, len(cfg.Paths))
	for i, p := range cfg.Paths {
		names[i] = filepath.Base(p)
	}
	files := strings.Join(names, ", ")
	if files == "" {
		files = "none"
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "🧾 Files: %s\n", files)
		_, _ = fmt.Fprintf(w, "📅 Year: %d\n", cfg.TargetYear)
		return
	}
	_, _ = fmt.Fprintf(w, "Files: %s\n", files)
	_, _ = fmt.Fprintf(w, "Year: %d\n", cfg.TargetYear)
}
