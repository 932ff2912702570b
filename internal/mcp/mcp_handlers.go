package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/spendwrap/core"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// splitPaths turns a comma-separated list into trimmed, non-empty paths.
func splitPaths(raw string) []string {
	var paths []string
	for p := range strings.SplitSeq(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (h *toolHandler) handleSummarizeOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := splitPaths(request.GetString("paths", ""))
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Paths = paths
	if y := request.GetInt("year", 0); y != 0 {
		if y < schema.MinTargetYear || y > schema.MaxTargetYear {
			return mcp.NewToolResultError(fmt.Sprintf("year must be between %d and %d (received %d)", schema.MinTargetYear, schema.MaxTargetYear, y)), nil
		}
		cfg.TargetYear = y
	}

	output, err := core.GetSummaryResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyTitle(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := request.GetString("title", "")
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	results := core.GetClassifyResults([]string{title}, request.GetString("category", ""))
	jsonData, _ := json.MarshalIndent(results[0], "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetCategoryRules(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
