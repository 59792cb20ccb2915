package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyBRL renders a value the way the restaurant staff expect to
// read it, e.g. 25.5 -> "R$ 25,50". Thousands get a dot separator.
func FormatCurrencyBRL(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	whole := fmt.Sprintf("%.2f", value)
	intPart := whole[:len(whole)-3]
	centPart := whole[len(whole)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + centPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPhoneBR formats a Brazilian phone number: 11 digits become
// "(DD) NNNNN-NNNN", 10 digits "(DD) NNNN-NNNN". Anything else is returned
// as stored.
func FormatPhoneBR(phone string) string {
	if phone == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return phone
	}
}

// FormatDateBR converts the stored "MM/DD/YYYY" reservation date into the
// "DD/MM/YYYY" form used on screen. Unparseable input is returned unchanged.
func FormatDateBR(date string) string {
	year, month, day, ok := ParseReservationDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}
