// Package tools exposes the canvas to agents as MCP tools. Every tool
// invocation is recorded as a tool_used event before its effect is
// applied, so the log captures intent even when the operation fails.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/muralhq/mural/internal/canvas"
	"github.com/muralhq/mural/pkg/pixelboard"
)

// Server wires the canvas service into an MCP tool server.
type Server struct {
	svc *canvas.Service
	mcp *server.MCPServer
}

// New creates the MCP server and registers the four canvas tools.
func New(svc *canvas.Service, version string) *Server {
	s := &Server{
		svc: svc,
		mcp: server.NewMCPServer(
			"mural",
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
			server.WithInstructions("Mural is a shared pixel canvas. Read it with get_canvas, paint with set_pixel or set_pixels, and inspect recent activity with get_events. Coordinates are zero-based with (0,0) in the top-left corner; colors are CSS-style strings like #ff8800."),
		),
	}

	s.mcp.AddTool(mcp.NewTool("get_canvas",
		mcp.WithDescription("Get the current canvas state: dimensions, color palette, and the base64-encoded grid of palette indices"),
		mcp.WithBoolean("showUI", mcp.Description("Include a text rendering of the grid, one row per line")),
	), s.handleGetCanvas)

	s.mcp.AddTool(mcp.NewTool("set_pixel",
		mcp.WithDescription("Paint a single pixel"),
		mcp.WithNumber("x", mcp.Description("X coordinate, 0-based from the left"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y coordinate, 0-based from the top"), mcp.Required()),
		mcp.WithString("color", mcp.Description("Color to paint, e.g. #ff8800 or #f80"), mcp.Required()),
	), s.handleSetPixel)

	s.mcp.AddTool(mcp.NewTool("set_pixels",
		mcp.WithDescription("Paint multiple pixels in one atomic write. Pass a JSON array of updates; later updates to the same coordinate win."),
		mcp.WithString("updates", mcp.Description(`JSON array of updates [{"x":0,"y":0,"color":"#abc"}, ...]`), mcp.Required()),
	), s.handleSetPixels)

	s.mcp.AddTool(mcp.NewTool("get_events",
		mcp.WithDescription("List canvas events oldest-first"),
		mcp.WithNumber("limit", mcp.Description("Return only the most recent N events")),
	), s.handleGetEvents)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server, for transports other than
// stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) handleGetCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	s.svc.LogToolUsed(ctx, pixelboard.ToolGetCanvas, args)

	state, err := s.svc.GetCanvas(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	showUI, _ := args["showUI"].(bool)
	if !showUI {
		return jsonResult(state)
	}

	view, err := renderRows(state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(struct {
		Meta         pixelboard.Meta `json:"meta"`
		PixelsBase64 string          `json:"pixelsBase64"`
		View         []string        `json:"view"`
	}{state.Meta, state.PixelsBase64, view})
}

func (s *Server) handleSetPixel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	s.svc.LogToolUsed(ctx, pixelboard.ToolSetPixel, args)

	x, ok := args["x"].(float64)
	if !ok {
		return mcp.NewToolResultError("x must be a number"), nil
	}
	y, ok := args["y"].(float64)
	if !ok {
		return mcp.NewToolResultError("y must be a number"), nil
	}
	color, ok := args["color"].(string)
	if !ok {
		return mcp.NewToolResultError("color must be a string"), nil
	}

	state, err := s.svc.SetPixel(ctx, int(x), int(y), color, pixelboard.SourceToolProtocol)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(state)
}

func (s *Server) handleSetPixels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	s.svc.LogToolUsed(ctx, pixelboard.ToolSetPixels, args)

	raw, ok := args["updates"].(string)
	if !ok {
		return mcp.NewToolResultError("updates must be a JSON array string"), nil
	}

	var updates []canvas.PixelUpdate
	if err := json.Unmarshal([]byte(raw), &updates); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid updates array: %v", err)), nil
	}

	state, err := s.svc.SetPixels(ctx, updates, pixelboard.SourceToolProtocol)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(state)
}

func (s *Server) handleGetEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	s.svc.LogToolUsed(ctx, pixelboard.ToolGetEvents, args)

	limit := 0
	if n, ok := args["limit"].(float64); ok {
		limit = int(n)
	}

	events, err := s.svc.Events(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(struct {
		Events []*pixelboard.Event `json:"events"`
	}{events})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
