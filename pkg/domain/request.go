package domain

// Request asks the runtime to play a compiled dialogue script.
// Requests are immutable once enqueued; only the admission gate consumes them.
type Request struct {
	// Locator identifies the script (and its string table) to the
	// configured asset source. Validity is a caller contract; enqueueing
	// never fails.
	Locator string

	// StartNode optionally names the node to begin at. If the bound
	// program has no node by this name, the interpreter is left at its
	// implicit default entry point.
	StartNode string
}
