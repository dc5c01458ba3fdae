// Package mcp serves vscroll's window computations as MCP tools.
//
// Tools:
//   - compute_window: compute the rendered window of one axis
//   - replay_trace: replay an inline ScrollTrace document
package mcp

import "github.com/modelcontextprotocol/go-sdk/jsonschema"

const (
	name         = "vscroll"
	instructions = `MCP Server 'vscroll' computes virtual scrolling windows: which rows or cells of a large grid must be rendered for a scroll offset, and how much space the unrendered (virtual) items before and after them take.

When to use these tools:
- Checking which items a virtual list or grid renders at a given offset
- Sizing scrollbars and spacer elements for virtualized content
- Reproducing scrolling bugs as a sequence of scroll events

Workflow:
1. Use 'compute_window' for a single axis and offset.
2. Use 'replay_trace' with a ScrollTrace YAML document to replay many events against both axes, with optional CEL expectations per step.
`

	// maxTableLen bounds the table preview of replay results.
	maxTableLen = 4000
)

func newComputeWindowSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"totalItemCount": {
				Type:        "integer",
				Description: "The number of logical items on the axis.",
			},
			"itemSize": {
				Type:        "number",
				Description: "The size of one item, e.g. the row height in pixels.",
			},
			"viewportSize": {
				Type:        "number",
				Description: "The visible extent of the axis, in the same unit as itemSize.",
			},
			"offset": {
				Type:        "number",
				Description: "The scroll offset. Offsets outside the scrollable range are clamped.",
			},
			"outlineCount": {
				Type:        "integer",
				Description: "Extra items rendered on each side of the viewport. Defaults to half a page.",
			},
		},
		Required: []string{"totalItemCount", "itemSize", "viewportSize"},
	}
}

func newReplayTraceSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"trace": {
				Type: "string",
				Description: "A ScrollTrace YAML document, with apiVersion vscroll.jacobcolvin.com/v1beta1, " +
					"kind ScrollTrace, a workspace, and steps.",
			},
		},
		Required: []string{"trace"},
	}
}

// truncateString truncates a string to maxLen bytes if needed.
func truncateString(str string, maxLen int) string {
	if len(str) > maxLen {
		return str[:maxLen] + "\n[OUTPUT TRUNCATED]"
	}

	return str
}
