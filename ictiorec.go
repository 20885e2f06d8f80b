// Package ictiorec is the public facade for the error-recovery engine: a
// small, stateless front door over internal/recovery that selects a
// recovery strategy by an enum, the same way dekarrin-tunaq's own root
// engine.go selects game subsystems by constructor argument rather than
// exposing its internal/ packages directly.
package ictiorec

import (
	"time"

	"github.com/dekarrin/ictiorec/internal/recovery"
)

// Re-exported so callers never need to import internal/recovery directly.
type (
	TIdx           = recovery.TIdx
	StIdx          = recovery.StIdx
	Lexeme         = recovery.Lexeme
	Action         = recovery.Action
	ActionKind     = recovery.ActionKind
	Grammar        = recovery.Grammar
	StateTable     = recovery.StateTable
	LexemeSource   = recovery.LexemeSource
	Stepper        = recovery.Stepper
	TreeSink       = recovery.TreeSink
	TermCoster     = recovery.TermCoster
	RepairKind     = recovery.RepairKind
	ParseRepair    = recovery.ParseRepair
	RepairSequence = recovery.RepairSequence
)

const (
	InvalidTIdx = recovery.InvalidTIdx

	ActionShift  = recovery.ActionShift
	ActionReduce = recovery.ActionReduce
	ActionAccept = recovery.ActionAccept
	ActionError  = recovery.ActionError

	RepairInsert = recovery.RepairInsert
	RepairDelete = recovery.RepairDelete
	RepairShift  = recovery.RepairShift
)

// RecoveryKind selects which algorithm a Recoverer runs (spec.md §6,
// "Selection").
type RecoveryKind int

const (
	// Corchuelo is the fixed-threshold BFS baseline (Corchuelo, Perez, Ruiz
	// & Toro).
	Corchuelo RecoveryKind = iota
	// CPCTPlus is the cost-directed shortest-path variant with node
	// merging.
	CPCTPlus
)

func (k RecoveryKind) String() string {
	switch k {
	case Corchuelo:
		return "Corchuelo"
	case CPCTPlus:
		return "CPCTPlus"
	default:
		return "Unknown"
	}
}

// Recoverer is the one capability this engine exposes to a parser host
// (spec.md §6): given where parsing stopped, search for a repair and, if
// one is found, replay it against the host's real stack and tree. An empty
// result is not an error - it means no repair was found (or the deadline
// expired first); the host should surface its original parse error.
type Recoverer interface {
	Recover(deadline time.Time, inLaIdx int, pstack *[]StIdx, tree TreeSink) (int, []RepairSequence)
}

// NewRecoverer builds a Recoverer of the requested kind. grammar, table,
// lexemes and step are read-only for the lifetime of every Recover call;
// termCost is only consulted by CPCTPlus.
func NewRecoverer(kind RecoveryKind, grammar Grammar, table StateTable, lexemes LexemeSource, step Stepper, termCost TermCoster) Recoverer {
	switch kind {
	case CPCTPlus:
		return &cpctPlusRecoverer{
			inner: &recovery.CPCTPlus{
				Grammar:  grammar,
				Table:    table,
				Lexemes:  lexemes,
				Step:     step,
				TermCost: termCost,
			},
		}
	default:
		return &corchueloRecoverer{
			inner: &recovery.Corchuelo{
				Grammar: grammar,
				Table:   table,
				Lexemes: lexemes,
				Step:    step,
			},
		}
	}
}

// cpctPlusRecoverer wraps *recovery.CPCTPlus, whose Recover signature
// already matches Recoverer exactly, and forwards Recover to it unchanged.
type cpctPlusRecoverer struct {
	inner *recovery.CPCTPlus
}

func (r *cpctPlusRecoverer) Recover(deadline time.Time, inLaIdx int, pstack *[]StIdx, tree TreeSink) (int, []RepairSequence) {
	return r.inner.Recover(deadline, inLaIdx, pstack, tree)
}

// corchueloRecoverer adapts *recovery.Corchuelo the same way.
type corchueloRecoverer struct {
	inner *recovery.Corchuelo
}

func (r *corchueloRecoverer) Recover(deadline time.Time, inLaIdx int, pstack *[]StIdx, tree TreeSink) (int, []RepairSequence) {
	return r.inner.Recover(deadline, inLaIdx, pstack, tree)
}
