package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/config"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/evidence"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/gitinfo"
	"github.com/xeenaa/implaudit/internal/application"
	"github.com/xeenaa/implaudit/internal/domain/registry"
)

func registerTools(s *server.MCPServer, projectPath string, logger *zap.Logger) {
	s.AddTool(
		mcplib.NewTool("implaudit_validate",
			mcplib.WithDescription("Runs the implementation audit on the project and returns results and summary as JSON"),
			mcplib.WithString("format", mcplib.Description("Output format: json or md (default: json)")),
		),
		handleValidate(projectPath, logger),
	)

	s.AddTool(
		mcplib.NewTool("implaudit_patterns",
			mcplib.WithDescription("Returns the registered source checks, log patterns and behavior flows as JSON"),
		),
		handlePatterns(),
	)
}

func handleValidate(projectPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewAuditService(registry.Default(), evidence.New(), config.New(), gitinfo.New(), logger)
		audit, err := svc.Run(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}

		reports := application.NewReportService()
		format, _ := request.GetArguments()["format"].(string)
		if format == "" {
			format = "json"
		}
		switch format {
		case "md":
			return textResult(reports.RenderMarkdown(audit)), nil
		case "json":
			data, err := reports.RenderJSON(audit)
			if err != nil {
				return nil, fmt.Errorf("marshaling audit: %w", err)
			}
			return textResult(string(data)), nil
		default:
			return errorResult(fmt.Sprintf("unknown format %q (valid: json, md)", format)), nil
		}
	}
}

func handlePatterns() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(registry.Default())
	}
}

// jsonResult marshals v to indented JSON and wraps it in a tool result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error tool result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
