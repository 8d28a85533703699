package roadmap

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ManSuffix is the currency unit appended to every amount (10,000 yen).
const ManSuffix = "万円"

// FormatMan formats an amount with Japanese thousands separators and the 万円 suffix,
// e.g. 1350 -> "1,350万円".
func FormatMan(v float64) string {
	p := message.NewPrinter(language.Japanese)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + ManSuffix
}

// FormatNumber prints v without grouping or trailing zeros ("2.5", "40").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// YearsLabel renders a month count as years and months: 54 -> "4年6ヶ月", 48 -> "4年".
func YearsLabel(months int) string {
	yr, mo := months/12, months%12
	if mo == 0 {
		return fmt.Sprintf("%d年", yr)
	}
	return fmt.Sprintf("%d年%dヶ月", yr, mo)
}

// DateLabel renders a date in the long Japanese form, e.g. "2024年1月1日".
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
