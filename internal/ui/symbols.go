package ui

// Unicode symbols for the final status of a run.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
)
