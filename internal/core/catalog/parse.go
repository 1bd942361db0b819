// Package catalog содержит чистые функции конвейера каталога:
// разбор чисел, фильтрацию, сортировку, пагинацию и подготовку карточек.
package catalog

import (
	"strconv"
	"strings"
)

// ParsePrice переводит цену в число: остаются только цифры и запятые,
// первая запятая становится десятичной точкой. Неразборчивое значение дает 0.
func ParsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, s)
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	v, ok := parseLeadingFloat(cleaned)
	if !ok {
		return 0
	}
	return v
}

// ParseArea переводит площадь в число, запятая считается десятичным разделителем.
func ParseArea(s string) float64 {
	v, ok := parseLeadingFloat(strings.Replace(s, ",", ".", 1))
	if !ok {
		return 0
	}
	return v
}

// ParseBound разбирает границу диапазона площади из поля ввода.
// nil означает, что граница не задана.
func ParseBound(s string) *float64 {
	v, ok := parseLeadingFloat(s)
	if !ok {
		return nil
	}
	return &v
}

// parseLeadingFloat читает самое длинное число в начале строки,
// игнорируя хвост: "12.5 m2" -> 12.5, "abc" -> false.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v ")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// переполнение: ParseFloat уже вернул ±Inf
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
