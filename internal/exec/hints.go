package exec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/liveline/internal/ansi"
)

// commandNotFoundPatterns match "command not found" messages from common
// shells. They only count when the exit code is 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)zsh: command not found: (\S+)`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)-bash: (\S+): No such file or directory`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// dependencyNotFoundPatterns catch a tool failing because something it
// shells out to is missing, whatever the exit code.
var dependencyNotFoundPatterns = []*regexp.Regexp{
	// make: go: No such file or directory
	regexp.MustCompile(`(?i)make: (\S+): No such file or directory`),
	// 'go' is not recognized as an internal or external command
	regexp.MustCompile(`(?i)'(\S+)' is not recognized`),
	// /bin/sh: go: not found
	regexp.MustCompile(`(?i)/bin/sh: (\S+): not found`),
	// env: go: No such file or directory (from #!/usr/bin/env go)
	regexp.MustCompile(`(?i)env: (\S+): No such file or directory`),
}

// IsCommandNotFound checks whether output from a child that exited with
// exitCode looks like a missing command. It returns the command name when it
// can be extracted.
func IsCommandNotFound(output string, exitCode int) (string, bool) {
	if exitCode != 127 {
		return "", false
	}
	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(output); len(matches) > 1 {
			return matches[1], true
		}
	}
	return "", true
}

// IsDependencyNotFound checks whether a tool failed because a command it
// depends on is missing.
func IsDependencyNotFound(output string) (string, bool) {
	for _, pattern := range dependencyNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(output); len(matches) > 1 {
			return matches[1], true
		}
	}
	return "", false
}

// FailureHint returns a one-line suggestion for a failed run, or "" when
// the output doesn't match a known pattern.
func FailureHint(c Command, output []byte, exitCode int) string {
	text := ansi.Strip(string(output))

	name, missing := IsCommandNotFound(text, exitCode)
	if !missing {
		name, missing = IsDependencyNotFound(text)
	}
	if !missing {
		return ""
	}

	if name == "" {
		name = c.Name
		if fields := strings.Fields(name); len(fields) > 0 {
			name = fields[0]
		}
		if name == "" {
			name = "command"
		}
	}
	return fmt.Sprintf("'%s' wasn't found on your PATH. Install it or check your shell setup.", name)
}
