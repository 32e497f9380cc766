package session

import "strings"

const MaxIdentifierLength = 64

// SanitizeIdentifier keeps only ASCII letters and digits and truncates the
// result to MaxIdentifierLength.
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < MaxIdentifierLength; i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SanitizeColor keeps '#', lowercase hex letters and digits. No length cap.
func SanitizeColor(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '#' || ('a' <= c && c <= 'f') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
