package exec

import (
	"sort"
	"strings"
)

// ForceColorEnv convinces most tools to keep emitting color when their
// output is a pipe instead of a terminal.
var ForceColorEnv = map[string]string{
	"TERM":           "xterm-256color",
	"FORCE_COLOR":    "1",
	"CLICOLOR_FORCE": "1",
}

// MergeEnv returns base with the variables in extra set, replacing any
// existing values. New variables are appended in sorted order.
func MergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := extra[key]; ok {
			if !seen[key] {
				out = append(out, key+"="+v)
				seen[key] = true
			}
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
