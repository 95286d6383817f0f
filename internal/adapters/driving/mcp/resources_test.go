package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bmi-cli/internal/core/services"
)

func TestExtractMeasurementID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid measurement URI",
			uri:      "bmi://history/abc-123",
			expected: "abc-123",
		},
		{
			name:     "history list URI",
			uri:      "bmi://history",
			expected: "",
		},
		{
			name:     "invalid prefix",
			uri:      "file://history/abc-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMeasurementID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: services.NewCalculatorService(nil)})
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("bmi://history"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns recorded measurements", func(t *testing.T) {
		ports := newPorts(t)
		_, err := ports.History.Record(ctx, 170, 65, "first")
		require.NoError(t, err)
		_, err = ports.History.Record(ctx, 170, 70, "")
		require.NoError(t, err)

		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("bmi://history"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0]["note"])
		assert.Equal(t, 22.5, entries[0]["bmi"])
	})

	t.Run("export failure is returned", func(t *testing.T) {
		ports := newPorts(t)
		ports.History = &mockHistoryService{err: errors.New("locked")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleHistoryResource(ctx, makeReadResourceRequest("bmi://history"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})
}

func TestServer_handleMeasurementResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns formatted measurement", func(t *testing.T) {
		ports := newPorts(t)
		recorded, err := ports.History.Record(ctx, 170, 65, "after run")
		require.NoError(t, err)

		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleMeasurementResource(ctx, makeReadResourceRequest("bmi://history/"+recorded.ID))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "BMI: 22.5")
		assert.Contains(t, result.Contents[0].Text, "Note: after run")
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		server, err := NewServer(newPorts(t))
		require.NoError(t, err)

		_, err = server.handleMeasurementResource(ctx, makeReadResourceRequest("bmi://history/missing"))
		assert.Error(t, err)
	})

	t.Run("nil history service is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: services.NewCalculatorService(nil)})
		require.NoError(t, err)

		_, err = server.handleMeasurementResource(ctx, makeReadResourceRequest("bmi://history/x"))
		assert.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server, err := NewServer(newPorts(t))
		require.NoError(t, err)

		_, err = server.handleMeasurementResource(ctx, makeReadResourceRequest("bmi://other"))
		assert.Error(t, err)
	})
}
