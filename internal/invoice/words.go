package invoice

import "strings"

var (
	unitWords  = []string{"", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}
	levelWords = []string{"", "nghìn", "triệu", "tỷ", "nghìn tỷ", "triệu tỷ"}
)

// AmountInWords spells a VND amount in Vietnamese for the invoice's
// "bằng chữ" line.
func AmountInWords(amount int64) string {
	if amount == 0 {
		return "Không đồng"
	}

	n := amount
	if n < 0 {
		n = -n
	}

	var parts []string
	level := 0
	for n > 0 {
		group := int(n % 1000)
		if group > 0 {
			s := readGroup(group)
			if levelWords[level] != "" {
				s += " " + levelWords[level]
			}
			parts = append([]string{s}, parts...)
		}
		n /= 1000
		level++
	}

	out := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	return strings.ToUpper(out[:1]) + out[1:] + " đồng"
}

func readGroup(group int) string {
	h := group / 100
	t := (group % 100) / 10
	d := group % 10

	var s strings.Builder
	if h > 0 {
		s.WriteString(unitWords[h] + " trăm ")
	}
	switch {
	case t > 1:
		s.WriteString(unitWords[t] + " mươi ")
	case t == 1:
		s.WriteString("mười ")
	case h > 0 && d > 0:
		s.WriteString("lẻ ")
	}

	switch {
	case d == 1 && t > 1:
		s.WriteString("mốt")
	case d == 5 && t > 0:
		s.WriteString("lăm")
	case d > 0:
		s.WriteString(unitWords[d])
	}
	return strings.TrimSpace(s.String())
}
