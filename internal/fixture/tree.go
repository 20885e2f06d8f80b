package fixture

import "github.com/dekarrin/ictiorec/internal/recovery"

// TreeEvent is one call a RecordingTree received, in order.
type TreeEvent struct {
	Shifted bool // false means Delete
	Lexeme  recovery.Lexeme
}

// RecordingTree is a minimal recovery.TreeSink that just records what
// happened, standing in for a real parse-tree builder. It is enough to
// observe and assert on Replay's effects (spec §4.7) without needing an
// actual AST.
type RecordingTree struct {
	Events []TreeEvent
}

// Shift implements recovery.TreeSink.
func (r *RecordingTree) Shift(lx recovery.Lexeme) {
	r.Events = append(r.Events, TreeEvent{Shifted: true, Lexeme: lx})
}

// Delete implements recovery.TreeSink.
func (r *RecordingTree) Delete(lx recovery.Lexeme) {
	r.Events = append(r.Events, TreeEvent{Shifted: false, Lexeme: lx})
}
