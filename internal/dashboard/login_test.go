package dashboard

import (
	"errors"
	"testing"
)

func TestLoginTeacher(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"exact", "AMINA-1234", nil},
		{"padded and lower case", "  amina-1234 ", nil},
		{"wrong number", "AMINA-1235", ErrInvalidCode},
		{"empty", "", ErrInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := LoginTeacher(f.st, tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if err == nil && u.ID != f.teacherID {
				t.Errorf("user: got %q", u.ID)
			}
		})
	}
}

func TestLoginTeacher_NotLinked(t *testing.T) {
	f := newFixture(t)
	st := f.st
	st.Users = cloneMap(st.Users)
	delete(st.Users, f.teacherID)
	if _, err := LoginTeacher(st, "AMINA-1234"); !errors.Is(err, ErrNotLinked) {
		t.Errorf("want ErrNotLinked, got %v", err)
	}
}

func TestLoginParent(t *testing.T) {
	f := newFixture(t)
	for _, phone := range []string{"0812 3456 789", "081234567 89", "+62 812-3456-789"} {
		u, err := LoginParent(f.st, phone)
		if err != nil {
			t.Errorf("%q: %v", phone, err)
			continue
		}
		if u.RelatedParentStudentID != f.stID {
			t.Errorf("%q: got user %+v", phone, u)
		}
	}
	if _, err := LoginParent(f.st, "0899"); !errors.Is(err, ErrPhoneNotFound) {
		t.Errorf("unknown phone: want ErrPhoneNotFound, got %v", err)
	}
}
