// Package strings provides string helpers shared across services
package strings

import std "strings"

// StripSpaces removes every space character from s
// scraped phone fields carry thousand-separator style spaces ("020 8555 1234")
func StripSpaces(s string) string { return std.ReplaceAll(s, " ", "") }

// FirstCSV returns the first comma-separated entry of s, trimmed
func FirstCSV(s string) string {
	if i := std.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return std.TrimSpace(s)
}

// EmptyToNil returns empty string if s is all whitespace, otherwise returns s
func EmptyToNil(s string) string {
	if std.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" if ps is nil, else *ps.
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// SQLNull returns nil if s is blank/whitespace, else the original string.
// Useful for query args where NULL is desired for blanks
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// SQLNullPtr returns nil if ps is nil or points to a blank string, else the dereferenced string
func SQLNullPtr(ps *string) any {
	if ps == nil || std.TrimSpace(*ps) == "" {
		return nil
	}
	return *ps
}
