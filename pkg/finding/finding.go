package finding

// Severity levels for findings, mapped to SARIF levels on output.
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// Finding is a single audit result: a rule, a message, and where it applies.
// Line, Column, and Snippet are filled in by resolving Location.Route
// against the workflow's structural index; they are zero if resolution
// failed.
type Finding struct {
	RuleID   string
	Level    string
	Message  string
	Location SymbolicLocation
	Line     int
	Column   int
	Snippet  string
}
