package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startClient connects an in-process MCP client to s.
func startClient(t *testing.T, s *Server) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(s.mcpServer)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "tokengen-test", Version: "1.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func TestServer_ListTools(t *testing.T) {
	s, _ := testServer(t, designJSON)
	c := startClient(t, s)

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_tokens", "get_token", "get_stylesheet", "get_preset", "get_scale"}, names)
}

func TestServer_CallTool(t *testing.T) {
	s, _ := testServer(t, designJSON)
	c := startClient(t, s)

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_token"
	req.Params.Arguments = map[string]any{"name": "sidebar-primary"}

	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "#18181b")
}
