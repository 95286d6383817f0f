package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for bmi resources.
	uriScheme = "bmi://"

	historyURI = uriScheme + "history"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "history",
		Description: "All recorded measurements, oldest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: historyURI + "/{id}",
		Name:        "measurement",
		Description: "A single recorded measurement",
		MIMEType:    "text/plain",
	}, s.handleMeasurementResource)
}

// handleHistoryResource returns the full history as the JSON export.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "[]"
	if s.ports.History != nil {
		var buf strings.Builder
		if err := s.ports.History.Export(ctx, &buf, domain.ExportJSON); err != nil {
			return nil, fmt.Errorf("exporting history: %w", err)
		}
		text = buf.String()
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handleMeasurementResource returns one measurement formatted for reading.
func (s *Server) handleMeasurementResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractMeasurementID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.History.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	for i := range results {
		if results[i].ID != id {
			continue
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     s.ports.Calculator.Format(results[i]),
			}},
		}, nil
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractMeasurementID extracts the ID from a URI like bmi://history/{id}.
func extractMeasurementID(uri string) string {
	const prefix = historyURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
