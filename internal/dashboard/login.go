package dashboard

import (
	"sort"
	"strings"

	"github.com/lojf/kindernet/internal/models"
	"github.com/lojf/kindernet/internal/services"
)

// LoginTeacher picks the teacher user owning a telegram code. This is a
// selection helper for the UI, not an authentication check.
func LoginTeacher(st models.State, code string) (models.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.User{}, ErrInvalidCode
	}
	ids := make([]string, 0, len(st.Teachers))
	for id := range st.Teachers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t := st.Teachers[id]
		if !strings.EqualFold(t.TelegramCode, code) {
			continue
		}
		for _, u := range st.Users {
			if u.Role == models.RoleTeacher && u.RelatedTeacherID == t.ID {
				return u, nil
			}
		}
		return models.User{}, ErrNotLinked
	}
	return models.User{}, ErrInvalidCode
}

func LoginParent(st models.State, phone string) (models.User, error) {
	u, err := services.FindParentByAny(st.Users, phone)
	if err != nil {
		return models.User{}, ErrPhoneNotFound
	}
	return u, nil
}
