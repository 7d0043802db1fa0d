package studio

import (
	"github.com/go-chi/chi/v5"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/composer"
)

// Studio provides the browser editing surface: a live websocket for
// generation and edit turns, plus a small stats API for the landing page.
type Studio struct {
	router chi.Router
	engine *composer.Engine
}

// New creates a new Studio.
func New(engine *composer.Engine) *Studio {
	return &Studio{
		router: chi.NewRouter(),
		engine: engine,
	}
}

// RegisterRoutes mounts all studio routes onto the given router.
func (s *Studio) RegisterRoutes(r chi.Router) {
	r.Get("/", s.ServeIndex)
	r.Get("/api/studio/stats", s.handleStats)
	r.Get("/api/studio/recent", s.handleRecent)
	r.Get("/ws/studio", s.handleWebSocket)
}
