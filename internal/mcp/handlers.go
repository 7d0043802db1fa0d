package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/intent"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

// handleCreatePresentation generates a new deck in a fresh session.
func (s *Server) handleCreatePresentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}

	sess, err := s.engine.Store().CreateSession(ctx, "", "mcp", "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating session: %v", err)), nil
	}

	result, err := s.engine.Generate(ctx, sess.ID, topic)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created presentation (session %s) with %d slides at revision %d. Use edit_presentation with this session_id to refine it.",
		result.SessionID, result.SlideCount, result.Revision,
	)), nil
}

// handleEditPresentation applies one natural-language edit turn.
func (s *Server) handleEditPresentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}
	instruction, err := request.RequireString("instruction")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: instruction"), nil
	}

	sess, err := s.engine.Store().GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("looking up session: %v", err)), nil
	}
	if sess == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no session %q. Use create_presentation first.", sessionID)), nil
	}

	sel, err := s.parseSelection(ctx, sessionID, request.GetString("selection", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Edit(ctx, sessionID, instruction, sel)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("edit failed: %v", err)), nil
	}

	if result.Operation == "clarification" {
		return mcp.NewToolResultText("Clarification needed: " + result.Clarification), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Applied %s; deck is now %d slides at revision %d.", result.Operation, result.SlideCount, result.Revision)
	if result.Note != "" {
		fmt.Fprintf(&sb, "\nNote: %s", result.Note)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&sb, "\nWarning: %s", w)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// parseSelection turns a comma-separated list of 1-based slide numbers into
// a selection carrying the slides' current HTML.
func (s *Server) parseSelection(ctx context.Context, sessionID, raw string) (*intent.Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	d, _, err := s.engine.CurrentDeck(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	if d == nil {
		return nil, nil
	}

	sel := &intent.Selection{}
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q: slide numbers must be integers", raw)
		}
		i := n - 1
		if i < 0 || i >= len(d.Slides) {
			return nil, fmt.Errorf("selection references slide %d but the deck has %d slides", n, len(d.Slides))
		}
		sel.Indices = append(sel.Indices, i)
		sel.HTML = append(sel.HTML, d.Slides[i].HTML)
	}
	return sel, nil
}

// handleGetPresentation reports a presentation's current state and history.
func (s *Server) handleGetPresentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}

	sess, err := s.engine.Store().GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("looking up session: %v", err)), nil
	}
	if sess == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no session %q", sessionID)), nil
	}

	revisions, err := s.engine.Store().ListRevisions(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing revisions: %v", err)), nil
	}

	return mcp.NewToolResultText(formatPresentation(sess, revisions)), nil
}

// handleListPresentations lists all sessions.
func (s *Server) handleListPresentations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.engine.Store().ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sessions: %v", err)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No presentations yet. Use create_presentation to start one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d presentation(s):\n", len(sessions))
	for _, sess := range sessions {
		title := sess.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "\n- %s\n  session: %s\n  updated: %s\n", title, sess.ID, sess.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleExportPresentation returns a deck knitted into one HTML document.
func (s *Server) handleExportPresentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}

	if revision := request.GetInt("revision", 0); revision > 0 {
		d, err := s.engine.Store().GetRevision(ctx, sessionID, revision)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading revision: %v", err)), nil
		}
		if d == nil {
			return mcp.NewToolResultError(fmt.Sprintf("session %q has no revision %d", sessionID, revision)), nil
		}
		return mcp.NewToolResultText(d.Knit()), nil
	}

	doc, err := s.engine.Export(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(doc), nil
}

// formatPresentation renders session state in a text format optimized for
// AI agent consumption.
func formatPresentation(sess *session.Session, revisions []session.Revision) string {
	var sb strings.Builder

	title := sess.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&sb, "Presentation: %s\nSession: %s\n", title, sess.ID)

	if len(revisions) == 0 {
		sb.WriteString("No deck yet; the first generation turn is pending.\n")
		return sb.String()
	}

	latest := revisions[len(revisions)-1]
	fmt.Fprintf(&sb, "Slides: %d\nRevision: %d\n\nHistory:\n", latest.SlideCount, latest.Revision)
	for _, rev := range revisions {
		fmt.Fprintf(&sb, "  r%d: %s (%d slides) at %s\n",
			rev.Revision, rev.Operation, rev.SlideCount, rev.CreatedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}
