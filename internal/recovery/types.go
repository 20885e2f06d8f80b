// Package recovery implements the error-recovery engine: given an LR parser
// stopped on a token it cannot shift, it searches for repair sequences
// (insert/delete/shift edits over the remaining input) that let parsing
// resume. It implements both the Corchuelo et al. baseline algorithm and the
// cost-directed CPCT+ variant.
//
// The package only consumes a handful of narrow, read-only interfaces from
// its host (the actual LR parser): a terminal/state index space, an action
// table, a lexeme stream, and a primitive that steps the LR automaton by a
// bounded window of input. It never mutates the host's real parse stack or
// tree except during Replay.
package recovery

import "fmt"

// TIdx is an opaque handle into the grammar's terminal table.
type TIdx int

// InvalidTIdx is never assigned to a real terminal by a host Grammar. Hosts
// report their own end-of-input terminal from Grammar.EOFTermIdx.
const InvalidTIdx TIdx = -1

// StIdx is an opaque handle into the LR automaton's state table.
type StIdx int

// Lexeme is a single token of input: a terminal kind, a byte offset, and a
// length. A Lexeme with Len == 0 is synthetic - it was invented by the
// recoverer for an Insert repair, not read from source text.
type Lexeme struct {
	Term  TIdx
	Start int
	Len   int
}

// Synthetic reports whether the Lexeme was invented by a repair rather than
// read from source.
func (l Lexeme) Synthetic() bool {
	return l.Len == 0
}

// ActionKind distinguishes the possible outcomes of an LR table lookup.
type ActionKind int

const (
	ActionShift ActionKind = iota
	ActionReduce
	ActionAccept
	ActionError
)

// Action is the result of looking up a state/terminal pair in the host's LR
// table. Reduce/production details are the host's business; the recoverer
// only needs to distinguish Shift/Reduce/Accept/Error.
type Action struct {
	Kind  ActionKind
	Shift StIdx // valid when Kind == ActionShift
}

// Grammar is the read-only slice of grammar information the recoverer needs:
// knowing which terminal means end-of-input, and being able to name
// terminals for diagnostics.
type Grammar interface {
	// EOFTermIdx returns the terminal index that represents end-of-input.
	EOFTermIdx() TIdx

	// TermName returns the grammar's name for the given terminal, for use
	// in diagnostics and test output.
	TermName(t TIdx) string
}

// StateTable is the read-only LR action table the recoverer searches over.
type StateTable interface {
	// StateActions returns every terminal for which State has a defined
	// (non-error) action.
	StateActions(s StIdx) []TIdx

	// Action returns the action State takes on Term.
	Action(s StIdx, t TIdx) Action
}

// LexemeSource is the read-only, indexable stream of real input lexemes the
// recoverer searches and replays over. LaIdx == Len() represents an EOF
// sentinel position one past the last real lexeme; both NextLexeme and
// NextTerm must be defined there.
type LexemeSource interface {
	// Len returns the number of real lexemes in the stream (not counting
	// the EOF sentinel position).
	Len() int

	// NextLexeme returns the lexeme at laIdx, or the EOF sentinel lexeme if
	// laIdx == Len().
	NextLexeme(laIdx int) Lexeme

	// NextTerm returns the terminal kind at laIdx without needing to build
	// a full Lexeme.
	NextTerm(laIdx int) TIdx
}

// Stepper advances the LR automaton. It is the "LR Step Primitive" from
// spec §4.2: starting from pstack, it processes input beginning at laIdx,
// optionally treating injected as the lexeme at laIdx, until either
// laIdx == endLaIdx, the parser would Accept, or the parser would Error. It
// never unwinds past pstack's bottom. StepCactus never touches a real parse
// tree; StepMutable updates the tree-builder it is given.
type Stepper interface {
	// StepCactus advances pstack (a persistent stack) and returns the new
	// lookahead index and new stack. Used during search, where stacks are
	// forked thousands of times and must never be mutated in place.
	StepCactus(injected *Lexeme, laIdx, endLaIdx int, pstack Cactus[StIdx]) (int, Cactus[StIdx])

	// StepMutable advances a real, exclusively-owned parse stack and
	// tree-builder in place, recording any errors encountered into errs.
	// endLaIdx of nil means "run until Accept or Error, ignoring laIdx".
	// The recoverer calls it only during Replay (§4.7), where a repair is
	// executed for real.
	StepMutable(injected *Lexeme, laIdx int, endLaIdx *int, pstack *[]StIdx, tree TreeSink, errs *[]error) int
}

// TreeSink receives the effects of a Shift or Delete during Replay. Hosts
// implement this over their real parse-tree builder; the recoverer never
// constructs tree nodes itself.
type TreeSink interface {
	// Shift is called when a lexeme (real or synthetic) is consumed as-is.
	Shift(lx Lexeme)

	// Delete is called when a real lexeme is dropped without being shifted.
	Delete(lx Lexeme)
}

// TermCoster supplies the nonnegative cost of inserting or deleting a given
// terminal. The Corchuelo baseline ignores this (cost is a pure count);
// CPCT+ uses it to drive its priority search.
type TermCoster func(t TIdx) uint32

// RepairKind distinguishes the three primitive edits a Repair can be.
type RepairKind int

const (
	RepairInsert RepairKind = iota
	RepairDelete
	RepairShift
)

func (k RepairKind) String() string {
	switch k {
	case RepairInsert:
		return "Insert"
	case RepairDelete:
		return "Delete"
	case RepairShift:
		return "Shift"
	default:
		return "Unknown"
	}
}

// repair is one edit in a repair sequence under construction. Term is only
// meaningful when Kind == RepairInsert.
type repair struct {
	Kind RepairKind
	Term TIdx
}

func (r repair) String(g Grammar) string {
	if r.Kind == RepairInsert {
		return fmt.Sprintf("Insert %q", g.TermName(r.Term))
	}
	return r.Kind.String()
}

// ParseRepair is the user-visible variant of a single repair, returned to
// the host. InsertSeq is reserved for other recoverers (e.g. one that
// repairs via production-level insertion); this package's two recoverers
// only ever produce Insert, Delete, and Shift.
type ParseRepair struct {
	Kind      RepairKind
	Term      TIdx     // valid when Kind == RepairInsert
	InsertSeq [][]TIdx // reserved, unused by Corchuelo/CPCT+
}

func (pr ParseRepair) String(g Grammar) string {
	switch pr.Kind {
	case RepairInsert:
		return fmt.Sprintf("Insert %q", g.TermName(pr.Term))
	default:
		return pr.Kind.String()
	}
}

// RepairSequence is an ordered list of repairs, root to top, that together
// let the parser resume.
type RepairSequence []ParseRepair

func (seq RepairSequence) String(g Grammar) string {
	parts := make([]string, len(seq))
	for i, r := range seq {
		parts[i] = r.String(g)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// PathFNode is a single node of the search frontier: an LR stack, a
// lookahead position, the repair history that reached it, and the
// accumulated cost of that history.
type PathFNode struct {
	Pstack  Cactus[StIdx]
	LaIdx   int
	Repairs RepairHistory
	Cf      uint32
}

// LastRepair returns the most recently appended repair, or false if Repairs
// is empty (only the Terminator).
func (n PathFNode) LastRepair() (repair, bool) {
	return n.Repairs.lastRepair()
}

// trailingShifts counts consecutive Shift repairs at the top of n's
// history, stopping at the first non-Shift (or at max, whichever comes
// first). It is used both for the merge-compatibility relation (§3) and
// for the CPCT+ success predicate (§4.4.3).
func (n PathFNode) trailingShifts(max int) int {
	return n.Repairs.trailingShifts(max)
}

// mergeKey is the coarse, O(1) hash used to bucket search nodes: pstack and
// la_idx only, deliberately coarser than full node equality so that
// mergeable nodes land in the same bucket (spec §3 "Hashing").
func (n PathFNode) mergeKey() uint64 {
	h := n.Pstack.Hash()
	h ^= uint64(n.LaIdx) * 0x9e3779b97f4a7c15
	return h
}

// mergeable implements the §3 equivalence used by CPCT+ to decide whether
// two nodes may be collapsed: same pstack, same la_idx, same number of
// trailing shifts, and either both or neither end in Delete.
func mergeable(a, b PathFNode) bool {
	if a.LaIdx != b.LaIdx || !a.Pstack.Equal(b.Pstack) {
		return false
	}
	ar, aok := a.LastRepair()
	br, bok := b.LastRepair()
	aDel := aok && ar.Kind == RepairDelete
	bDel := bok && br.Kind == RepairDelete
	if aDel != bDel {
		return false
	}
	const window = 1 << 20 // effectively "count them all"
	return a.trailingShifts(window) == b.trailingShifts(window)
}

// addCost is checked addition: spec §7 requires cost overflow be treated as
// a fatal invariant violation rather than silently wrapping.
func addCost(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		panic(newInvariantError("cost overflow: %d + %d overflows uint32", a, b))
	}
	return sum
}
