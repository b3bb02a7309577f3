package model

import "strings"

// UnixName converts a schema name to snake_case. CamelCase humps become
// underscore-separated, runs of capitals stay joined until the run ends,
// and dots become underscores.
//
// "fooBar" -> "foo_bar", "HTMLParser" -> "html_parser",
// "foo.barBaz" -> "foo_bar_baz".
func UnixName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i := 0; i < len(name); i++ {
		c := name[i]

		if isUpper(c) && i > 0 && name[i-1] != '_' {
			if isLower(name[i-1]) || (i+1 < len(name) && isLower(name[i+1])) {
				b.WriteByte('_')
			}
		}

		if c == '.' {
			b.WriteByte('_')
		} else {
			b.WriteByte(toLower(c))
		}
	}

	return b.String()
}

// SplitNamespace splits a qualified schema name into its namespace and
// simple parts. Names without a dot have an empty namespace part.
func SplitNamespace(name string) (namespace, simple string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

// GetNamespace returns the namespace part of a qualified name, or ""
// when the name is unqualified.
func GetNamespace(name string) string {
	namespace, _ := SplitNamespace(name)

	return namespace
}

// StripNamespace returns the simple name without its namespace part.
func StripNamespace(name string) string {
	_, simple := SplitNamespace(name)

	return simple
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}

	return c
}
