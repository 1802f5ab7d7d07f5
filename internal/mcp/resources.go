package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resCatalog = mcp.NewResource(
	"setforge://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("The canonical exercise catalog with category keywords, in match priority order"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) catalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.index.Entries())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
