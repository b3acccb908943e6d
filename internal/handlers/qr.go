package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lojf/kindernet/internal/dashboard"
)

// TeacherCodeQR renders the teacher's telegram code as a PNG so it can be
// scanned from the director's screen.
// GET /api/teachers/{id}/code.png
func TeacherCodeQR(s *dashboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.State().Teachers[chi.URLParam(r, "id")]
		if !ok || t.TelegramCode == "" {
			http.NotFound(w, r)
			return
		}

		png, err := qrcode.Encode(t.TelegramCode, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to generate qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
