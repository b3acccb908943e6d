package handlers

import (
	"net/http"

	"github.com/lojf/kindernet/internal/dashboard"
)

// GET /api/state
func State(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.State())
	}
}

// GET /api/settings
func Settings(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.State().Settings)
	}
}
