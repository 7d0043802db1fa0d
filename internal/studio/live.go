package studio

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/composer"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/intent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// turnRequest is the incoming WebSocket message format.
type turnRequest struct {
	Type      string `json:"type"`       // "generate", "edit" or "export"
	SessionID string `json:"session_id"` // empty starts a new session on generate
	Content   string `json:"content"`
	Selection []int  `json:"selection,omitempty"` // slide indexes selected in the UI
}

// turnResponse is the outgoing WebSocket message format.
type turnResponse struct {
	Type          string `json:"type"` // "result", "export" or "error"
	SessionID     string `json:"session_id"`
	Operation     string `json:"operation,omitempty"`
	Revision      int    `json:"revision,omitempty"`
	SlideCount    int    `json:"slide_count,omitempty"`
	Clarification string `json:"clarification,omitempty"`
	Note          string `json:"note,omitempty"`
	Content       string `json:"content,omitempty"`
}

func (s *Studio) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("studio: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("studio: websocket read: %v", err)
			}
			return
		}

		var req turnRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError(conn, "", "invalid message format")
			continue
		}

		switch req.Type {
		case "generate":
			s.handleGenerate(conn, r, req)
		case "edit":
			s.handleEdit(conn, r, req)
		case "export":
			s.handleExport(conn, r, req)
		default:
			s.sendError(conn, req.SessionID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Studio) handleGenerate(conn *websocket.Conn, r *http.Request, req turnRequest) {
	if req.Content == "" {
		s.sendError(conn, req.SessionID, "content is required")
		return
	}

	ctx := r.Context()
	sessionID := req.SessionID

	// Create a new session if needed.
	if sessionID == "" {
		sess, err := s.engine.Store().CreateSession(ctx, "", "studio", "")
		if err != nil {
			s.sendError(conn, "", "failed to create session: "+err.Error())
			return
		}
		sessionID = sess.ID
	}

	result, err := s.engine.Generate(ctx, sessionID, req.Content)
	if err != nil {
		s.sendError(conn, sessionID, "generation failed: "+err.Error())
		return
	}
	s.sendResponse(conn, resultResponse(result))
}

func (s *Studio) handleEdit(conn *websocket.Conn, r *http.Request, req turnRequest) {
	if req.Content == "" {
		s.sendError(conn, req.SessionID, "content is required")
		return
	}
	if req.SessionID == "" {
		s.sendError(conn, "", "session_id is required for edits")
		return
	}

	ctx := r.Context()
	sel, err := s.resolveSelection(r, req)
	if err != nil {
		s.sendError(conn, req.SessionID, err.Error())
		return
	}

	result, err := s.engine.Edit(ctx, req.SessionID, req.Content, sel)
	if err != nil {
		s.sendError(conn, req.SessionID, "edit failed: "+err.Error())
		return
	}
	s.sendResponse(conn, resultResponse(result))
}

func (s *Studio) handleExport(conn *websocket.Conn, r *http.Request, req turnRequest) {
	if req.SessionID == "" {
		s.sendError(conn, "", "session_id is required for export")
		return
	}

	doc, err := s.engine.Export(r.Context(), req.SessionID)
	if err != nil {
		s.sendError(conn, req.SessionID, "export failed: "+err.Error())
		return
	}
	s.sendResponse(conn, turnResponse{
		Type:      "export",
		SessionID: req.SessionID,
		Content:   doc,
	})
}

// resolveSelection turns UI-selected slide indexes into a selection carrying
// the slides' current HTML.
func (s *Studio) resolveSelection(r *http.Request, req turnRequest) (*intent.Selection, error) {
	if len(req.Selection) == 0 {
		return nil, nil
	}
	d, _, err := s.engine.CurrentDeck(r.Context(), req.SessionID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	sel := &intent.Selection{}
	for _, i := range req.Selection {
		if i < 0 || i >= len(d.Slides) {
			continue
		}
		sel.Indices = append(sel.Indices, i)
		sel.HTML = append(sel.HTML, d.Slides[i].HTML)
	}
	if len(sel.Indices) == 0 {
		return nil, nil
	}
	return sel, nil
}

func resultResponse(result *composer.Result) turnResponse {
	return turnResponse{
		Type:          "result",
		SessionID:     result.SessionID,
		Operation:     result.Operation,
		Revision:      result.Revision,
		SlideCount:    result.SlideCount,
		Clarification: result.Clarification,
		Note:          result.Note,
	}
}

func (s *Studio) sendResponse(conn *websocket.Conn, resp turnResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("studio: websocket write: %v", err)
	}
}

func (s *Studio) sendError(conn *websocket.Conn, sessionID, message string) {
	resp := turnResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("studio: websocket write error: %v", err)
	}
}
