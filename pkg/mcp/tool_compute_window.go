package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/vscroll/pkg/scrolling"
)

// ComputeWindowParams defines parameters for the compute_window tool.
type ComputeWindowParams struct {
	OutlineCount   *int    `json:"outlineCount,omitempty"`
	ItemSize       float64 `json:"itemSize"`
	ViewportSize   float64 `json:"viewportSize"`
	Offset         float64 `json:"offset,omitempty"`
	TotalItemCount int     `json:"totalItemCount"`
}

// ComputeWindowResult contains the computed window.
type ComputeWindowResult struct {
	Message           string                `json:"message"`
	Window            scrolling.WindowState `json:"window"`
	MaxScrollPosition float64               `json:"maxScrollPosition"`
	PageSize          int                   `json:"pageSize"`
	OutlineCount      int                   `json:"outlineCount"`
}

// AxisConfig converts the parameters. Negative outline counts use the
// default.
func (p ComputeWindowParams) AxisConfig() scrolling.AxisConfig {
	cfg := scrolling.NewAxisConfig(p.TotalItemCount, p.ItemSize, p.ViewportSize)
	if p.OutlineCount != nil && *p.OutlineCount >= 0 {
		cfg.OutlineCount = *p.OutlineCount
	}

	return cfg
}

func (s *Server) handleComputeWindow(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ComputeWindowParams],
) (*mcp.CallToolResultFor[ComputeWindowResult], error) {
	args := params.Arguments

	if args.TotalItemCount < 0 || !(args.ItemSize > 0) || !(args.ViewportSize > 0) {
		msg := "INVALID INPUT ERROR: totalItemCount must not be negative, and itemSize and viewportSize must be positive."

		return &mcp.CallToolResultFor[ComputeWindowResult]{
			Content:           []mcp.Content{&mcp.TextContent{Text: msg}},
			StructuredContent: ComputeWindowResult{Message: msg},
			IsError:           true,
		}, nil
	}

	cfg := args.AxisConfig()
	state := scrolling.Calculate(cfg, args.Offset)

	msg := fmt.Sprintf("Render items %d to %d of %d; %g before and %g after are virtual.",
		state.StartIndex, state.EndIndex(), cfg.TotalItemCount,
		state.VirtualItemSizeBefore, state.VirtualItemSizeAfter)

	return &mcp.CallToolResultFor[ComputeWindowResult]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		StructuredContent: ComputeWindowResult{
			Message:           msg,
			Window:            state,
			MaxScrollPosition: cfg.MaxScrollPosition(),
			PageSize:          cfg.PageSize(),
			OutlineCount:      cfg.OutlineCount,
		},
	}, nil
}
