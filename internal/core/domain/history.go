package domain

import "time"

// HistoryEntry is one completed calculation on the history tape.
type HistoryEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// SessionID links to the calculator session that produced it.
	// Empty for one-shot evaluations.
	SessionID string

	// Expression is the operand/operator trail, e.g. "5 + 3".
	Expression string

	// Result is the displayed result, e.g. "8".
	Result string

	// CreatedAt is when equals was pressed.
	CreatedAt time.Time
}

// String renders the entry as "5 + 3 = 8".
func (h HistoryEntry) String() string {
	return h.Expression + " = " + h.Result
}
