package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/composer"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/db"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/llm"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

const sampleDeck = `<!DOCTYPE html>
<html>
<head><title>Espresso</title><style>.slide { padding: 16px; }</style></head>
<body>
<div class="slide"><h1>Espresso</h1></div>
<div class="slide"><h2>Brewing</h2><p>25 to 30 seconds.</p></div>
</body>
</html>`

// cannedProvider returns the same response to every completion call.
type cannedProvider struct {
	response string
}

func (p *cannedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{
		Content:      p.response,
		InputTokens:  50,
		OutputTokens: 100,
		Model:        req.Model,
		FinishReason: "stop",
	}, nil
}

func (p *cannedProvider) Name() string { return "canned" }

func setupTest(t *testing.T) (*Studio, *session.Store) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := session.NewStore(database)
	engine := composer.NewEngine(store, &cannedProvider{response: sampleDeck}, "test-model", composer.Options{})
	return New(engine), store
}

func setupRouter(s *Studio) chi.Router {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

func dialWS(t *testing.T, r chi.Router) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/studio"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStatsEndpoint(t *testing.T) {
	s, store := setupTest(t)
	r := setupRouter(s)
	ctx := t.Context()

	store.CreateSession(ctx, "first", "openai", "gpt-4o")
	store.CreateSession(ctx, "second", "openai", "gpt-4o")

	req := httptest.NewRequest(http.MethodGet, "/api/studio/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats statsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("expected 2 sessions, got %d", stats.TotalSessions)
	}
}

func TestRecentEndpointLimits(t *testing.T) {
	s, store := setupTest(t)
	r := setupRouter(s)
	ctx := t.Context()

	for i := 0; i < 15; i++ {
		store.CreateSession(ctx, "session", "openai", "gpt-4o")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/studio/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var recent recentResponse
	json.NewDecoder(w.Body).Decode(&recent)

	if len(recent.Sessions) != 10 {
		t.Errorf("expected 10 sessions, got %d", len(recent.Sessions))
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	s, _ := setupTest(t)
	r := setupRouter(s)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/studio"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
}

func TestWebSocketGenerateAndExport(t *testing.T) {
	s, _ := setupTest(t)
	conn := dialWS(t, setupRouter(s))

	if err := conn.WriteJSON(turnRequest{Type: "generate", Content: "a deck about espresso"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp turnResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "result" || resp.Operation != "generation" {
		t.Fatalf("got %+v", resp)
	}
	if resp.SessionID == "" || resp.Revision != 1 || resp.SlideCount != 2 {
		t.Errorf("got %+v", resp)
	}

	if err := conn.WriteJSON(turnRequest{Type: "export", SessionID: resp.SessionID}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var exported turnResponse
	if err := conn.ReadJSON(&exported); err != nil {
		t.Fatalf("read: %v", err)
	}
	if exported.Type != "export" || !strings.Contains(exported.Content, "Espresso") {
		t.Errorf("got %+v", exported)
	}
}

func TestWebSocketEmptyContent(t *testing.T) {
	s, _ := setupTest(t)
	conn := dialWS(t, setupRouter(s))

	if err := conn.WriteJSON(turnRequest{Type: "generate", Content: ""}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp turnResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("expected error type, got %q", resp.Type)
	}
	if !strings.Contains(resp.Content, "content is required") {
		t.Errorf("expected content error, got %q", resp.Content)
	}
}

func TestWebSocketEditWithoutSession(t *testing.T) {
	s, _ := setupTest(t)
	conn := dialWS(t, setupRouter(s))

	if err := conn.WriteJSON(turnRequest{Type: "edit", Content: "make slide 1 blue"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp turnResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Content, "session_id is required") {
		t.Errorf("got %+v", resp)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	s, _ := setupTest(t)
	conn := dialWS(t, setupRouter(s))

	if err := conn.WriteJSON(turnRequest{Type: "unknown", Content: "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp turnResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Content, "unknown message type") {
		t.Errorf("got %+v", resp)
	}
}

func TestServeIndex(t *testing.T) {
	s, _ := setupTest(t)
	r := setupRouter(s)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Slidegen Studio") {
		t.Error("expected HTML to contain 'Slidegen Studio'")
	}
}
