package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder выводится вместо пустого значения
const Placeholder = "N/A"

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatNumberWithSeparators форматирует число по-вьетнамски ("1.234.567", "2,5").
// Пустое значение дает Placeholder, нечисловое ("Thỏa thuận") возвращается как есть.
func FormatNumberWithSeparators(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Placeholder
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	v, ok := parseLeadingFloat(cleaned)
	if !ok {
		return raw
	}
	return viPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
