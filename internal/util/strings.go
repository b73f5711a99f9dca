package util

import "strings"

// ToIdentifier keeps ASCII letters, digits and underscores, mapping any other
// rune to an underscore.
func ToIdentifier(s string) string {
	var builder strings.Builder
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}

	return builder.String()
}

func AsPtr[T any](v T) *T {
	return &v
}
