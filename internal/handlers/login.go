package handlers

import (
	"net/http"

	"github.com/lojf/kindernet/internal/dashboard"
)

type teacherLogin struct {
	Code string `json:"code"`
}

type parentLogin struct {
	Phone string `json:"phone"`
}

// POST /api/login/teacher
// Picks the user for the UI session; there are no credentials.
func LoginTeacher(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in teacherLogin
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}
		u, err := dashboard.LoginTeacher(s.State(), in.Code)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// POST /api/login/parent
func LoginParent(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in parentLogin
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}
		u, err := dashboard.LoginParent(s.State(), in.Phone)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
