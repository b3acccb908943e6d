package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/lojf/kindernet/internal/models"
)

var (
	reLetters = regexp.MustCompile(`[A-Za-z]`)
	// Only allow digits, spaces, +, -, (, )
	reAllowed = regexp.MustCompile(`^[0-9+\-\s\(\)]+$`)
)

var ErrParentNotFound = errors.New("parent not found")

// NormPhone normalizes phone numbers to the +E.164-like form used in the app.
// Rules: strip spaces/dashes/parens; 00.. -> +..; 62.. -> +62..; 0.. -> +62..; ensure leading +
func NormPhone(p string) string {
	s := strings.TrimSpace(p)

	if s == "" {
		return ""
	}
	if reLetters.MatchString(s) {
		return ""
	}
	if !reAllowed.MatchString(s) {
		return ""
	}

	repl := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\n", "", "\r", "", "\t", "")
	s = repl.Replace(s)

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	if strings.HasPrefix(s, "62") && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	// 0.. (local) -> +62..
	if strings.HasPrefix(s, "0") {
		s = "+62" + s[1:]
	}
	if !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SamePhone compares two numbers ignoring separators. Numbers that
// normalize cleanly are compared in normalized form, so "0812 1111"
// and "+62 812-1111" match.
func SamePhone(a, b string) bool {
	na, nb := NormPhone(a), NormPhone(b)
	if na != "" && nb != "" {
		return na == nb
	}
	da, db := digitsOnly(a), digitsOnly(b)
	return da != "" && da == db
}

// FindParentByAny returns the parent user whose phone matches, trying the
// normalized form first and a digits-only compare as fallback. Ties go to
// the lowest user id so the answer is stable across map iteration.
func FindParentByAny(users map[string]models.User, phone string) (models.User, error) {
	if strings.TrimSpace(phone) == "" {
		return models.User{}, ErrParentNotFound
	}
	var hits []models.User
	for _, u := range users {
		if u.Role != models.RoleParent || u.Phone == "" {
			continue
		}
		if SamePhone(u.Phone, phone) {
			hits = append(hits, u)
		}
	}
	if len(hits) == 0 {
		return models.User{}, ErrParentNotFound
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
	return hits[0], nil
}
