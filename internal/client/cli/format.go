package cli

import (
	"strconv"
	"strings"
	"time"
)

const displayDate = "02 Jan 2006"

// formatPrice renders a whole-unit amount with thousands separators:
// 1250000 -> "₦1,250,000".
func formatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₦" + b.String()
}

func formatDate(t time.Time) string {
	return t.Local().Format(displayDate)
}
