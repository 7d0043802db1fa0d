package composer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/intent"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

// RegisterRoutes mounts the presentation API routes.
func RegisterRoutes(r chi.Router, engine *Engine) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleCreateSession(engine))
		r.Get("/", handleListSessions(engine))
		r.Get("/{id}", handleGetSession(engine))
		r.Delete("/{id}", handleDeleteSession(engine))
		r.Post("/{id}/generate", handleGenerate(engine))
		r.Post("/{id}/edit", handleEdit(engine))
		r.Get("/{id}/deck", handleGetDeck(engine))
		r.Get("/{id}/export", handleExport(engine))
		r.Get("/{id}/slides/{index}", handleGetSlide(engine))
		r.Get("/{id}/revisions", handleListRevisions(engine))
		r.Get("/{id}/messages", handleGetMessages(engine))
	})
}

type createSessionRequest struct {
	Title string `json:"title"`
}

func handleCreateSession(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		json.NewDecoder(r.Body).Decode(&req)

		sess, err := engine.Store().CreateSession(r.Context(), req.Title, engine.provider.Name(), engine.model)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sess)
	}
}

func handleListSessions(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := engine.Store().ListSessions(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if sessions == nil {
			sessions = []session.Session{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sessions)
	}
}

func handleGetSession(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := engine.Store().GetSession(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if sess == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sess)
	}
}

func handleDeleteSession(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := engine.Store().DeleteSession(r.Context(), id); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func handleGenerate(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Prompt == "" {
			http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
			return
		}

		result, err := engine.Generate(r.Context(), chi.URLParam(r, "id"), req.Prompt)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

type editRequest struct {
	Instruction string `json:"instruction"`
	Selection   []int  `json:"selection,omitempty"`
}

func handleEdit(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Instruction == "" {
			http.Error(w, `{"error":"instruction is required"}`, http.StatusBadRequest)
			return
		}
		id := chi.URLParam(r, "id")

		sel, err := selectionFromIndices(engine, r, id, req.Selection)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}

		result, err := engine.Edit(r.Context(), id, req.Instruction, sel)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// selectionFromIndices resolves UI-supplied slide indices against the live
// deck so the intent resolver sees the slides' current HTML.
func selectionFromIndices(engine *Engine, r *http.Request, sessionID string, indices []int) (*intent.Selection, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	d, _, err := engine.CurrentDeck(r.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	sel := &intent.Selection{}
	for _, i := range indices {
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

func handleGetDeck(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, revision, err := engine.CurrentDeck(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if d == nil {
			http.Error(w, `{"error":"session has no deck"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"revision": revision,
			"deck":     d.ToSerializable(),
		})
	}
}

func handleExport(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := engine.Export(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(doc))
	}
}

func handleGetSlide(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(w, `{"error":"invalid slide index"}`, http.StatusBadRequest)
			return
		}
		d, _, err := engine.CurrentDeck(r.Context(), chi.URLParam(r, "id"))
		if err != nil || d == nil {
			http.Error(w, `{"error":"session has no deck"}`, http.StatusNotFound)
			return
		}
		doc, err := d.RenderSingle(index)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(doc))
	}
}

func handleListRevisions(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		revisions, err := engine.Store().ListRevisions(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if revisions == nil {
			revisions = []session.Revision{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(revisions)
	}
}

func handleGetMessages(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := engine.Store().GetMessages(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if messages == nil {
			messages = []session.Message{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}
