package match

import "strings"

// NormalizeName normalizes a schema name for fuzzy matching: case-fold
// to lower and strip separators (_, -, ., spaces). "AlarmInfo",
// "alarm_info", and "alarm-info" all normalize to "alarminfo", so
// spelling variants of the same name score as identical.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}

// isSeparator returns true if the rune is a common name separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}
