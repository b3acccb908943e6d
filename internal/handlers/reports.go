package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/report"
)

// Reports serves the SQL-backed kindergarten reports.
type Reports struct {
	Store     *dashboard.Store
	Projector *report.Projector
}

// kindergarten resolves {id} and brings the projection up to date with the
// store before querying it.
func (h Reports) kindergarten(w http.ResponseWriter, r *http.Request) (string, bool) {
	st := h.Store.State()
	id := chi.URLParam(r, "id")
	if _, ok := st.Kindergartens[id]; !ok {
		writeError(w, &dashboard.NotFoundError{Kind: "kindergarten", ID: id})
		return "", false
	}
	if err := h.Projector.Sync(st); err != nil {
		writeError(w, fmt.Errorf("sync report tables: %w", err))
		return "", false
	}
	return id, true
}

// GET /api/kindergartens/{id}/groups/load
func (h Reports) GroupLoad(w http.ResponseWriter, r *http.Request) {
	id, ok := h.kindergarten(w, r)
	if !ok {
		return
	}
	rows, err := h.Projector.GroupLoad(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/kindergartens/{id}/attendance?month=YYYY-MM
// month defaults to the current month in the server timezone.
func (h Reports) Attendance(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.Store.Now().Format("2006-01")
	} else if _, err := time.Parse("2006-01", month); err != nil {
		writeError(w, fmt.Errorf("%w: month %q, want YYYY-MM", errBadRequest, month))
		return
	}
	id, ok := h.kindergarten(w, r)
	if !ok {
		return
	}
	rows, err := h.Projector.AttendanceTotals(id, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"month": month, "groups": rows})
}

// GET /api/kindergartens/{id}/roster.csv
func (h Reports) RosterCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := h.kindergarten(w, r)
	if !ok {
		return
	}
	rows, err := h.Projector.Roster(id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster-`+id+`.csv"`)
	if err := report.WriteRosterCSV(w, rows); err != nil {
		log.Printf("roster csv %s: %v", id, err)
	}
}
