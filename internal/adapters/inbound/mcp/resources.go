package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xeenaa/implaudit/internal/domain/registry"
)

const flowsURI = "implaudit://flows"

func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			flowsURI,
			"Behavior Flows",
			mcplib.WithResourceDescription("Expected log sequences for the end-to-end profession scenarios"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFlowsResource(),
	)
}

func handleFlowsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(registry.Default().Flows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling flows: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      flowsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
