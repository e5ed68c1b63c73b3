package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND formats an amount in Vietnamese đồng with locale thousands
// grouping, e.g. 200000 -> "200.000 ₫".
func FormatVND(amount int64) string {
	return vndPrinter.Sprintf("%d", amount) + " ₫"
}

// FormatNumber formats an integer with Vietnamese thousands grouping and no
// currency sign.
func FormatNumber(n int64) string {
	return vndPrinter.Sprintf("%d", n)
}

// ParseVND inverts FormatVND: every non-digit rune is stripped and the rest is
// parsed as a base-10 integer, so ParseVND(FormatVND(n)) == n for all
// non-negative n. Strings without any digit are an error.
func ParseVND(s string) (int64, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	return strconv.ParseInt(digits.String(), 10, 64)
}
