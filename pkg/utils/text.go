package utils

import (
	"io"
	"strings"
)

// LTrim removes every leading occurrence of chr from s.
//
// Examples:
//   - ("xxabc", 'x') -> "abc"
//   - ("abc", 'x') -> "abc"
func LTrim(s string, chr rune) string {
	return strings.TrimLeft(s, string(chr))
}

// RTrim removes every trailing occurrence of chr from s.
//
// Examples:
//   - ("abc//", '/') -> "abc"
func RTrim(s string, chr rune) string {
	return strings.TrimRight(s, string(chr))
}

// Trim removes chr from both ends of s.
//
// Examples:
//   - ("*quoted*", '*') -> "quoted"
func Trim(s string, chr rune) string {
	return LTrim(RTrim(s, chr), chr)
}

// Coalesce returns the first non-empty value, or "" when every value is empty.
//
// Example:
//
//	name := utils.Coalesce(flagValue, os.Getenv("CMDREG_NAME"), "ccTest")
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// WriteLine writes line followed by a newline to w.
func WriteLine(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}
