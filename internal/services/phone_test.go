package services

import (
	"errors"
	"testing"

	"github.com/lojf/kindernet/internal/models"
)

func TestNormPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0812 3456 789", "+628123456789"},
		{"62812-3456-789", "+628123456789"},
		{"0062 (812) 3456789", "+628123456789"},
		{"+1 415 555 0100", "+14155550100"},
		{"", ""},
		{"call me", ""},
		{"0812#55", ""},
	}
	for _, tt := range tests {
		if got := NormPhone(tt.in); got != tt.want {
			t.Errorf("NormPhone(%q): want %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSamePhone(t *testing.T) {
	if !SamePhone("0812 3456 789", "+62 812 3456 789") {
		t.Error("local and international forms should match")
	}
	if SamePhone("0812", "0813") {
		t.Error("different numbers matched")
	}
	if SamePhone("", "") {
		t.Error("empty numbers must not match")
	}
}

func TestFindParentByAny(t *testing.T) {
	users := map[string]models.User{
		"t1": {ID: "t1", Role: models.RoleTeacher, Phone: "0812 1111"},
		"p2": {ID: "p2", Role: models.RoleParent, Phone: "0812 1111"},
		"p1": {ID: "p1", Role: models.RoleParent, Phone: "+62 812-1111"},
	}
	u, err := FindParentByAny(users, "08121111")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.ID != "p1" {
		t.Errorf("want lowest matching parent id p1, got %s", u.ID)
	}
	if _, err := FindParentByAny(users, "  "); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("blank phone: want ErrParentNotFound, got %v", err)
	}
}

func TestNormEmail(t *testing.T) {
	if e, ok := NormEmail("  Dina@Example.COM "); !ok || e != "dina@example.com" {
		t.Errorf("got %q %v", e, ok)
	}
	if _, ok := NormEmail("not-an-email"); ok {
		t.Error("invalid address accepted")
	}
	if e, ok := NormEmail(""); !ok || e != "" {
		t.Error("empty address should be allowed")
	}
	if got := NormName("  Amina   Sari "); got != "Amina Sari" {
		t.Errorf("NormName: got %q", got)
	}
}
