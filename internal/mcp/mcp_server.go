// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the spendwrap MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Spendwrap Order Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("summarize_orders",
		mcp.WithDescription("Summarize spending for one calendar year from order-history CSV exports."),
		mcp.WithString("paths", mcp.Description("Comma-separated list of CSV files to analyze."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Calendar year to analyze. Defaults to the configured year.")),
	), h.handleSummarizeOrders)

	s.AddTool(mcp.NewTool("classify_title",
		mcp.WithDescription("Assign a spend category to a product title by keyword matching."),
		mcp.WithString("title", mcp.Description("The product title to classify."), mcp.Required()),
		mcp.WithString("category", mcp.Description("Explicit category; used as-is when not blank.")),
	), h.handleClassifyTitle)

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the ordered keyword tables used to classify titles."),
	), h.handleListCategories)

	return s
}

// StartMCPServer starts the spendwrap MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
