// Package invoice prepares the printable invoice: formatted amounts,
// the amount-in-words line and the settlement QR URL.
package invoice

import "strconv"

// FormatVND renders an amount with dot thousands separators, the way
// the shop prints prices (e.g. 1.250.000).
func FormatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
