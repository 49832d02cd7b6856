package mcp_test

import (
	"context"
	"testing"

	"github.com/fragmede/fundcli/internal/contract"
	mcp_internal "github.com/fragmede/fundcli/internal/mcp"
	"github.com/fragmede/fundcli/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Period:   schema.MonthPeriod,
		Limit:    20,
		Strategy: schema.CountStrategy,
	}

	// Dependencies stay nil, validation errors fire before any of them is touched
	var store contract.HistoryStore
	var registry contract.Registry
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, store, registry, mgr)

	ctx := context.Background()

	t.Run("analyze_usage invalid period", func(t *testing.T) {
		tool := s.GetTool("analyze_usage")
		require.NotNil(t, tool, "Tool analyze_usage should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_usage",
				Arguments: map[string]any{
					"period": "fortnight",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid period")
	})

	t.Run("recommend_donations missing amount", func(t *testing.T) {
		tool := s.GetTool("recommend_donations")
		require.NotNil(t, tool, "Tool recommend_donations should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "recommend_donations",
				Arguments: map[string]any{
					"amount": "",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "amount must be a positive decimal")
	})

	t.Run("recommend_donations negative amount", func(t *testing.T) {
		tool := s.GetTool("recommend_donations")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "recommend_donations",
				Arguments: map[string]any{
					"amount": "-5.00",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "amount must be a positive decimal")
	})

	t.Run("recommend_donations invalid weight", func(t *testing.T) {
		tool := s.GetTool("recommend_donations")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "recommend_donations",
				Arguments: map[string]any{
					"amount": "10.00",
					"weight": "popularity",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid weighting strategy")
	})

	t.Run("investigate_executable missing name", func(t *testing.T) {
		tool := s.GetTool("investigate_executable")
		require.NotNil(t, tool, "Tool investigate_executable should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "investigate_executable",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "executable is required")
	})
}
