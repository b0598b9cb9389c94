// Package mcptools exposes the document reader as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markdave123-py/docreader/internal/core/reader"
)

// DocumentReader is the part of *reader.Reader the tools use.
type DocumentReader interface {
	ReadDocument(ctx context.Context, path string) (*reader.DocumentContent, error)
}

type endpoint func(ctx context.Context, args json.RawMessage) (any, error)

// Register adds the docreader tools to srv.
func Register(srv *mcp.Server, r DocumentReader) {
	addTool(srv, &mcp.Tool{
		Name:        "docreader_read",
		Description: "Extract text and statistics from a pdf, docx, doc, pptx, ppt or txt file on disk.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to read"},
		}, []string{"path"}),
	}, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		if req.Path == "" {
			return nil, errors.New("path is required")
		}
		return r.ReadDocument(ctx, req.Path)
	})

	addTool(srv, &mcp.Tool{
		Name:        "docreader_formats",
		Description: "List the supported document formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, func(context.Context, json.RawMessage) (any, error) {
		return map[string]any{"formats": reader.SupportedFormats()}, nil
	})

	addTool(srv, &mcp.Tool{
		Name:        "docreader_supported",
		Description: "Report whether a file name has a supported extension.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "File name or path"},
		}, []string{"name"}),
	}, func(_ context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return map[string]any{
			"name":      req.Name,
			"supported": reader.IsFormatSupportedByName(req.Name),
		}, nil
	})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// addTool registers fn with JSON text results. Failures become tool
// errors prefixed with their reader code when they have one.
func addTool(srv *mcp.Server, tool *mcp.Tool, fn endpoint) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}

		resp, err := fn(ctx, args)
		if err != nil {
			var res mcp.CallToolResult
			if code := reader.CodeOf(err); code != "" {
				err = fmt.Errorf("%s: %s", code, err.Error())
			}
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
