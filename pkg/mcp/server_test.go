package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/vscroll/pkg/mcp"
)

const trace = `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 100, cellCount: 200, cellWidth: 150, cellHeight: 50, width: 600, height: 300}
scrolling: {renderDelay: immediate}
steps:
  - name: jump
    top: 3980
    expect: vertical.startIndex == 76
  - name: wrong
    left: 900
    expect: horizontal.startIndex == 0
`

func connect(t *testing.T, s *mcp.Server) *sdk.ClientSession {
	t.Helper()

	clientTransport, serverTransport := sdk.NewInMemoryTransports()

	ctx := t.Context()

	serverSession, err := s.Server().Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := sdk.NewClient(&sdk.Implementation{Name: "client"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, clientSession.Close())
		assert.NoError(t, serverSession.Wait())
	})

	return clientSession
}

func TestServerTools(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(""))

	tcs := map[string]struct {
		params  *sdk.CallToolParams
		check   func(t *testing.T, content map[string]any)
		isError bool
	}{
		"compute_window": {
			params: &sdk.CallToolParams{
				Name: "compute_window",
				Arguments: map[string]any{
					"totalItemCount": 100,
					"itemSize":       50,
					"viewportSize":   300,
					"offset":         3980,
				},
			},
			check: func(t *testing.T, content map[string]any) {
				t.Helper()

				window, ok := content["window"].(map[string]any)
				require.True(t, ok)
				assert.InDelta(t, 76, window["startIndex"], 0)
				assert.InDelta(t, 12, window["itemCount"], 0)
				assert.InDelta(t, 3800, window["virtualItemSizeBefore"], 0)
				assert.InDelta(t, 6, content["pageSize"], 0)
				assert.InDelta(t, 3, content["outlineCount"], 0)
				assert.InDelta(t, 4700, content["maxScrollPosition"], 0)
				assert.Equal(t, "Render items 76 to 88 of 100; 3800 before and 600 after are virtual.", content["message"])
			},
		},
		"compute_window with outline": {
			params: &sdk.CallToolParams{
				Name: "compute_window",
				Arguments: map[string]any{
					"totalItemCount": 100,
					"itemSize":       50,
					"viewportSize":   300,
					"offset":         3980,
					"outlineCount":   1,
				},
			},
			check: func(t *testing.T, content map[string]any) {
				t.Helper()

				window, ok := content["window"].(map[string]any)
				require.True(t, ok)
				assert.InDelta(t, 78, window["startIndex"], 0)
				assert.InDelta(t, 8, window["itemCount"], 0)
			},
		},
		"compute_window invalid": {
			params: &sdk.CallToolParams{
				Name: "compute_window",
				Arguments: map[string]any{
					"totalItemCount": 100,
					"itemSize":       0,
					"viewportSize":   300,
				},
			},
			isError: true,
		},
		"replay_trace": {
			params: &sdk.CallToolParams{
				Name:      "replay_trace",
				Arguments: map[string]any{"trace": trace},
			},
			check: func(t *testing.T, content map[string]any) {
				t.Helper()

				assert.Equal(t, "Replayed 2 steps, 1 failed.", content["message"])
				assert.InDelta(t, 1, content["failed"], 0)

				steps, ok := content["steps"].([]any)
				require.True(t, ok)
				require.Len(t, steps, 2)

				first, ok := steps[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, true, first["passed"])
				assert.Contains(t, content["table"], "76–88/100")
			},
		},
		"replay_trace invalid": {
			params: &sdk.CallToolParams{
				Name:      "replay_trace",
				Arguments: map[string]any{"trace": "kind: ScrollTrace\n"},
			},
			isError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r, err := session.CallTool(t.Context(), tc.params)
			require.NoError(t, err)
			require.NotNil(t, r)

			assert.Equal(t, tc.isError, r.IsError)
			require.NotEmpty(t, r.Content)

			if tc.check == nil {
				return
			}

			content, ok := r.StructuredContent.(map[string]any)
			require.True(t, ok)
			tc.check(t, content)
		})
	}
}

func TestServerTracing(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	session := connect(t, mcp.NewServer("", mcp.WithTracerProvider(tp)))

	_, err := session.CallTool(t.Context(), &sdk.CallToolParams{
		Name:      "replay_trace",
		Arguments: map[string]any{"trace": trace},
	})
	require.NoError(t, err)

	_, err = session.CallTool(t.Context(), &sdk.CallToolParams{
		Name:      "compute_window",
		Arguments: map[string]any{"totalItemCount": 1, "itemSize": -1, "viewportSize": 1},
	})
	require.NoError(t, err)

	names := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		names[s.Name()] = s
	}

	require.Contains(t, names, "mcp.tool replay_trace")
	require.Contains(t, names, "replay")
	require.Contains(t, names, "mcp.tool compute_window")

	assert.Equal(t,
		names["mcp.tool replay_trace"].SpanContext().SpanID(),
		names["replay"].Parent().SpanID(),
	)
	assert.Equal(t, codes.Error, names["mcp.tool compute_window"].Status().Code)
}
