package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/vscroll/api/v1beta1/traces"
	"github.com/macropower/vscroll/pkg/config"
	"github.com/macropower/vscroll/pkg/replay"
)

// ReplayTraceParams defines parameters for the replay_trace tool.
type ReplayTraceParams struct {
	Trace string `json:"trace"`
}

// ReplayTraceResult contains the outcome of a replay.
type ReplayTraceResult struct {
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Table   string              `json:"table,omitempty"`
	Steps   []replay.StepResult `json:"steps"`
	Failed  int                 `json:"failed"`
}

func (s *Server) handleReplayTrace(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ReplayTraceParams],
) (*mcp.CallToolResultFor[ReplayTraceResult], error) {
	loader := config.NewLoaderFromBytes([]byte(params.Arguments.Trace), traces.New, traces.DefaultValidator)

	tr, err := loader.LoadValid()
	if err != nil {
		return replayErrorResult(fmt.Errorf("load trace: %w", err)), nil
	}

	res, err := s.replayer.Run(ctx, tr)
	if err != nil {
		return replayErrorResult(err), nil
	}

	msg := fmt.Sprintf("Replayed %d steps, %d failed.", len(res.Steps), res.Failed)

	return &mcp.CallToolResultFor[ReplayTraceResult]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		StructuredContent: ReplayTraceResult{
			Message: msg,
			Table:   truncateString(res.Table(), maxTableLen),
			Steps:   res.Steps,
			Failed:  res.Failed,
		},
	}, nil
}

func replayErrorResult(err error) *mcp.CallToolResultFor[ReplayTraceResult] {
	msg := "INVALID INPUT ERROR: " + err.Error()

	return &mcp.CallToolResultFor[ReplayTraceResult]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		StructuredContent: ReplayTraceResult{
			Message: msg,
			Error:   err.Error(),
			Steps:   []replay.StepResult{},
		},
		IsError: true,
	}
}
