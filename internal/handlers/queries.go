package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/models"
)

// GET /api/overview
func Overview(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dashboard.PlatformOverview(s.State()))
	}
}

// GET /api/kindergartens/{id}/overview
func KindergartenOverview(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := dashboard.KindergartenStats(s.State(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, o)
	}
}

// GET /api/teachers/{id}/summary
// The month is the current month in the server timezone.
func TeacherSummary(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := s.State().Teachers[id]; !ok {
			writeError(w, &dashboard.NotFoundError{Kind: "teacher", ID: id})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"month":    s.Now().Format("2006-01"),
			"students": s.Summary(id),
		})
	}
}

// GET /api/students/{id}/profile
func StudentProfile(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := dashboard.StudentStats(s.State(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// GET /api/notifications?audience=&sender=&limit=
func Notifications(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := dashboard.NotificationFilter{
			Audience: models.Audience(q.Get("audience")),
			SenderID: q.Get("sender"),
		}
		switch f.Audience {
		case "", models.AudienceTeachers, models.AudienceParents:
		default:
			writeError(w, fmt.Errorf("%w: audience %q", errBadRequest, f.Audience))
			return
		}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, fmt.Errorf("%w: limit %q", errBadRequest, v))
				return
			}
			f.Limit = n
		}
		writeJSON(w, http.StatusOK, dashboard.Notifications(s.State(), f))
	}
}

// GET /api/users?role=
func Users(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := models.Role(r.URL.Query().Get("role"))
		for _, known := range models.Roles {
			if role == known {
				writeJSON(w, http.StatusOK, dashboard.UsersByRole(s.State(), role))
				return
			}
		}
		writeError(w, fmt.Errorf("%w: role %q", errBadRequest, role))
	}
}
