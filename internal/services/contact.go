package services

import (
	"net/mail"
	"strings"
)

// NormEmail lower-cases and validates an address. Empty input is allowed.
func NormEmail(s string) (string, bool) {
	e := strings.TrimSpace(strings.ToLower(s))
	if e == "" {
		return "", true
	}
	addr, err := mail.ParseAddress(e)
	if err != nil {
		return e, false
	}
	return addr.Address, true
}

// NormName collapses runs of whitespace and trims the ends.
func NormName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
