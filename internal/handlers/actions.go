package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lojf/kindernet/internal/dashboard"
)

type dispatchResponse struct {
	Version uint64   `json:"version"`
	IDs     []string `json:"ids"`
}

func respondDispatch(w http.ResponseWriter, s *dashboard.Store, a dashboard.Action) {
	res, err := s.Dispatch(a)
	if err != nil {
		writeError(w, err)
		return
	}
	ids := res.IDs
	if ids == nil {
		ids = []string{}
	}
	status := http.StatusOK
	if len(ids) > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, dispatchResponse{Version: res.State.Version, IDs: ids})
}

// Actions accepts the {"type": ..., "payload": ...} envelope.
// POST /api/actions
func Actions(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			writeError(w, err)
			return
		}
		a, err := dashboard.DecodeAction(body)
		if err != nil {
			writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}
		respondDispatch(w, s, a)
	}
}

// typed decodes the body into T, lets bind copy URL parameters into it
// and dispatches the result.
func typed[T dashboard.Action](s *dashboard.Store, bind func(r *http.Request, a *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a T
		if err := decodeJSON(r, &a); err != nil {
			writeError(w, err)
			return
		}
		if bind != nil {
			if err := bind(r, &a); err != nil {
				writeError(w, err)
				return
			}
		}
		respondDispatch(w, s, a)
	}
}

// POST /api/kindergartens
func CreateKindergarten(s *dashboard.Store) http.HandlerFunc {
	return typed[dashboard.CreateKindergarten](s, nil)
}

// POST /api/applications
func SubmitApplication(s *dashboard.Store) http.HandlerFunc {
	return typed[dashboard.SubmitApplication](s, nil)
}

// POST /api/applications/{id}/review
func ReviewApplication(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.ReviewApplication) error {
		a.ApplicationID = chi.URLParam(r, "id")
		return nil
	})
}

// POST /api/kindergartens/{id}/branches
func AddBranch(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.AddBranch) error {
		a.KindergartenID = chi.URLParam(r, "id")
		return nil
	})
}

// POST /api/branches/{id}/groups
func AddGroup(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.AddGroup) error {
		a.BranchID = chi.URLParam(r, "id")
		return fillKindergarten(s, a.BranchID, &a.KindergartenID)
	})
}

// POST /api/branches/{id}/teachers
func AddTeacher(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.AddTeacher) error {
		a.BranchID = chi.URLParam(r, "id")
		return fillKindergarten(s, a.BranchID, &a.KindergartenID)
	})
}

// PUT /api/groups/{id}/teacher
func AssignTeacher(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.AssignTeacher) error {
		a.GroupID = chi.URLParam(r, "id")
		return nil
	})
}

// POST /api/groups/{id}/students
func AddStudent(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.AddStudent) error {
		a.GroupID = chi.URLParam(r, "id")
		g, ok := s.State().Groups[a.GroupID]
		if !ok {
			return &dashboard.NotFoundError{Kind: "group", ID: a.GroupID}
		}
		if a.BranchID == "" {
			a.BranchID = g.BranchID
		}
		if a.KindergartenID == "" {
			a.KindergartenID = g.KindergartenID
		}
		return nil
	})
}

// POST /api/students/{id}/payments
func RecordPayment(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.RecordPayment) error {
		a.StudentID = chi.URLParam(r, "id")
		return nil
	})
}

// POST /api/students/{id}/attendance
func RecordAttendance(s *dashboard.Store) http.HandlerFunc {
	return typed(s, func(r *http.Request, a *dashboard.RecordAttendance) error {
		a.StudentID = chi.URLParam(r, "id")
		return nil
	})
}

// POST /api/notifications
func SendNotification(s *dashboard.Store) http.HandlerFunc {
	return typed[dashboard.SendNotification](s, nil)
}

// PATCH /api/settings
func UpdateSettings(s *dashboard.Store) http.HandlerFunc {
	return typed[dashboard.UpdateSettings](s, nil)
}

// fillKindergarten sets *kgID to the branch's kindergarten when the body
// leaves it out. A kindergarten given in the body is kept so the reducer
// can report a mismatch.
func fillKindergarten(s *dashboard.Store, branchID string, kgID *string) error {
	br, ok := s.State().Branches[branchID]
	if !ok {
		return &dashboard.NotFoundError{Kind: "branch", ID: branchID}
	}
	if *kgID == "" {
		*kgID = br.KindergartenID
	}
	return nil
}
