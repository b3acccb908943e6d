package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Telegram login codes look like "AMINA-4821": the first word of the
// teacher's name, upper-cased, and a four digit number.
const (
	TelegramCodeMin = 1000
	TelegramCodeMax = 9999
)

var TelegramCodeRE = regexp.MustCompile(`^\S+-[1-9][0-9]{3}$`)

func TelegramCode(name string, n int) string {
	prefix := "TEACHER"
	if f := strings.Fields(name); len(f) > 0 {
		prefix = strings.ToUpper(f[0])
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
