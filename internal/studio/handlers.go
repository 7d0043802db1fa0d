package studio

import (
	"encoding/json"
	"net/http"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	TotalSessions int `json:"total_sessions"`
}

// recentResponse is the JSON response for the recent activity endpoint.
type recentResponse struct {
	Sessions []session.Session `json:"sessions"`
}

func (s *Studio) handleStats(w http.ResponseWriter, r *http.Request) {
	total, err := s.engine.Store().CountSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{TotalSessions: total})
}

func (s *Studio) handleRecent(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.engine.Store().ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(sessions) > 10 {
		sessions = sessions[:10]
	}
	if sessions == nil {
		sessions = []session.Session{}
	}

	writeJSON(w, http.StatusOK, recentResponse{Sessions: sessions})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
