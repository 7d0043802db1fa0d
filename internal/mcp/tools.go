package mcp

import "github.com/mark3labs/mcp-go/mcp"

// createPresentationTool defines the create_presentation MCP tool.
var createPresentationTool = mcp.NewTool("create_presentation",
	mcp.WithDescription("Generate a new multi-slide HTML presentation from a topic description. Returns the session ID for follow-up edits."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("What the presentation should cover"),
	),
)

// editPresentationTool defines the edit_presentation MCP tool.
var editPresentationTool = mcp.NewTool("edit_presentation",
	mcp.WithDescription("Apply a natural-language edit to an existing presentation. Edits are scoped: only the referenced slides change. Returns a clarifying question if the instruction is ambiguous."),
	mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session ID returned by create_presentation"),
	),
	mcp.WithString("instruction",
		mcp.Required(),
		mcp.Description("The edit to apply, e.g. 'make slide 2 dark blue' or 'add a slide about pricing'"),
	),
	mcp.WithString("selection",
		mcp.Description("Comma-separated 1-based slide numbers to scope the edit to, e.g. '2' or '2,3'"),
	),
)

// getPresentationTool defines the get_presentation MCP tool.
var getPresentationTool = mcp.NewTool("get_presentation",
	mcp.WithDescription("Get the current state of a presentation: title, slide count, and revision history."),
	mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session ID of the presentation"),
	),
)

// listPresentationsTool defines the list_presentations MCP tool.
var listPresentationsTool = mcp.NewTool("list_presentations",
	mcp.WithDescription("List all presentation sessions, most recently updated first."),
)

// exportPresentationTool defines the export_presentation MCP tool.
var exportPresentationTool = mcp.NewTool("export_presentation",
	mcp.WithDescription("Export a presentation as a self-contained HTML document."),
	mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session ID of the presentation"),
	),
	mcp.WithNumber("revision",
		mcp.Description("Specific revision to export (default: latest)"),
	),
)
