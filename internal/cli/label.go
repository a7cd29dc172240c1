package cli

import (
	"path/filepath"
	"strings"
)

// labelEllipsis is appended to labels cut at the label_max limit.
const labelEllipsis = "…"

// DeriveLabel builds a status label from the command line: the program name
// and the words after it, up to the first flag. "go test -v ./..." becomes
// "go test". Labels longer than limit runes are cut and marked with "…".
func DeriveLabel(args []string, limit int) string {
	if len(args) == 0 {
		return ""
	}

	words := []string{filepath.Base(strings.TrimSpace(args[0]))}
	for _, arg := range args[1:] {
		arg = strings.TrimSpace(arg)
		if strings.HasPrefix(arg, "-") {
			break
		}
		if arg == "" {
			continue
		}
		words = append(words, arg)
	}

	label := strings.Join(words, " ")
	if limit < 1 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return strings.TrimRight(string(runes[:limit]), " ") + labelEllipsis
}
