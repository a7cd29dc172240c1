// Package util provides small helpers shared across packages.
package util

import (
	"strings"
)

// shellSafe are the bytes that never need quoting in a shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:,+@%"

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
// This is safe for use in shell commands where the string should be treated literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// ShellWord quotes s only when a shell would otherwise split or expand it.
func ShellWord(s string) string {
	if s == "" {
		return "''"
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(shellSafe, s[i]) < 0 {
			return ShellQuote(s)
		}
	}
	return s
}

// ShellJoin renders argv as a command line that could be pasted into a shell.
func ShellJoin(argv []string) string {
	words := make([]string, len(argv))
	for i, arg := range argv {
		words[i] = ShellWord(arg)
	}
	return strings.Join(words, " ")
}
