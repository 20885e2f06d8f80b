package recovery

import "time"

// Fixed thresholds from Corchuelo, Perez, Ruiz & Toro, "Repairing syntax
// errors in LR parsers" (spec §4.3).
const (
	portionThreshold = 10 // N_t
	insertThreshold  = 4  // N_i
	deleteThreshold  = 3  // N_d
)

// Corchuelo is the baseline recoverer (spec §4.3): a breadth-first search
// over (la_idx, pstack, repairs) tuples with fixed insertion/deletion/
// portion thresholds, no cost weighting, and no node merging. It is a
// close, line-for-line port of corchuelo.rs's recover function.
type Corchuelo struct {
	Grammar Grammar
	Table   StateTable
	Lexemes LexemeSource
	Step    Stepper

	tracer
}

type corchueloNode struct {
	laIdx   int
	pstack  []StIdx
	repairs []repair
}

// Recover searches for repair sequences starting at inLaIdx/*inPstack and
// replays the first equally-optimal finisher found against the caller's
// real stack and tree-builder. Unlike CPCT+, the baseline's own output is
// never ranked or simplified - corchuelo.rs has no such stage, and
// spec §8's scenario S1/S5 expectations are written against its raw
// output (see DESIGN.md).
func (c *Corchuelo) Recover(deadline time.Time, inLaIdx int, inPstack *[]StIdx, tree TreeSink) (int, []RepairSequence) {
	todo := []corchueloNode{{laIdx: inLaIdx, pstack: cloneStack(*inPstack), repairs: nil}}
	var finished []corchueloNode
	var finishedScore *int

	for len(todo) > 0 {
		if time.Now().After(deadline) {
			break
		}

		cur := todo[0]
		todo = todo[1:]

		if finishedScore != nil && *finishedScore < countCost(cur.repairs) {
			continue
		}

		c.insertRule(cur, &todo)
		c.deleteRule(cur, &todo)
		c.forwardMoveRule(cur, inLaIdx, &todo, &finished, &finishedScore)
	}

	if len(finished) == 0 {
		return inLaIdx, nil
	}

	seqs := make([]RepairSequence, 0, len(finished))
	for _, f := range finished {
		seqs = append(seqs, toRepairSequence(f.repairs))
	}

	resumeLaIdx := applyRepairs(c.Step, c.Lexemes, inLaIdx, inPstack, tree, seqs[0])
	return resumeLaIdx, seqs
}

// insertRule is ER1: never follow a Delete with an Insert (the symmetry
// break Corchuelo et al. suggest, since [Del, Ins x] and [Ins x, Del] reach
// the same place); otherwise try every terminal the top state has a
// defined action for, excluding EOF.
func (c *Corchuelo) insertRule(cur corchueloNode, todo *[]corchueloNode) {
	if last, ok := lastRepair(cur.repairs); ok && last.Kind == RepairDelete {
		return
	}
	if countKind(cur.repairs, RepairInsert) > insertThreshold {
		return
	}

	st := cur.pstack[len(cur.pstack)-1]
	for _, t := range c.Table.StateActions(st) {
		if t == c.Grammar.EOFTermIdx() {
			continue
		}
		next := c.Lexemes.NextLexeme(cur.laIdx)
		injected := Lexeme{Term: t, Start: next.Start, Len: 0}
		newLaIdx, newPstack := c.Step.StepCactus(&injected, cur.laIdx, cur.laIdx+1, toCactus(cur.pstack))
		if newLaIdx > cur.laIdx {
			repairs := append(cloneRepairs(cur.repairs), repair{Kind: RepairInsert, Term: t})
			*todo = append(*todo, corchueloNode{laIdx: cur.laIdx, pstack: fromCactus(newPstack), repairs: repairs})
		}
	}
}

// deleteRule is ER2: drop the current real lexeme.
func (c *Corchuelo) deleteRule(cur corchueloNode, todo *[]corchueloNode) {
	if cur.laIdx >= c.Lexemes.Len() {
		return
	}
	if countKind(cur.repairs, RepairDelete) > deleteThreshold {
		return
	}
	repairs := append(cloneRepairs(cur.repairs), repair{Kind: RepairDelete})
	*todo = append(*todo, corchueloNode{laIdx: cur.laIdx + 1, pstack: cloneStack(cur.pstack), repairs: repairs})
}

// forwardMoveRule is ER3: attempt to shift up to parseAtLeast real symbols
// in one go. A node that manages exactly parseAtLeast shifts, or reaches a
// state from which the next real terminal would Accept, is a finisher and
// is recorded rather than re-queued. A node that makes no progress at all
// is dropped (the caller falls through to Insert/Delete from the original
// node, which already happened above). An unexpected defined action
// (neither Accept nor none) at the truncated window's end discards the
// candidate outright, preserving corchuelo.rs's `_ => continue` fallthrough
// (spec §9).
func (c *Corchuelo) forwardMoveRule(cur corchueloNode, inLaIdx int, todo *[]corchueloNode, finished *[]corchueloNode, finishedScore **int) {
	newLaIdx, newPstack := c.Step.StepCactus(nil, cur.laIdx, cur.laIdx+parseAtLeast, toCactus(cur.pstack))
	if newLaIdx >= inLaIdx+portionThreshold {
		return
	}

	repairs := cloneRepairs(cur.repairs)
	for i := cur.laIdx; i < newLaIdx; i++ {
		repairs = append(repairs, repair{Kind: RepairShift})
	}

	finisher := false
	if newLaIdx == cur.laIdx+parseAtLeast {
		finisher = true
	} else {
		topSt, ok := newPstack.Val()
		if !ok {
			panic(newInvariantError("forwardMoveRule: empty pstack"))
		}
		act := c.Table.Action(topSt, c.Lexemes.NextTerm(newLaIdx))
		switch act.Kind {
		case ActionAccept:
			finisher = true
		case ActionError:
			// no defined action: falls through to the progress check below,
			// exactly as corchuelo.rs's `None => ()` arm.
		default:
			// a defined Shift/Reduce action here means the window merely
			// ended early, not that the candidate is stuck; corchuelo.rs
			// discards it rather than re-queueing a partial match.
			return
		}
	}

	if finisher {
		score := countCost(repairs)
		if *finishedScore == nil || score < **finishedScore {
			s := score
			*finishedScore = &s
			*finished = nil
		}
		*finished = append(*finished, corchueloNode{laIdx: newLaIdx, pstack: fromCactus(newPstack), repairs: repairs})
		return
	}

	if newLaIdx > cur.laIdx {
		*todo = append(*todo, corchueloNode{laIdx: newLaIdx, pstack: fromCactus(newPstack), repairs: repairs})
	}
}

func lastRepair(repairs []repair) (repair, bool) {
	if len(repairs) == 0 {
		return repair{}, false
	}
	return repairs[len(repairs)-1], true
}

func countKind(repairs []repair, kind RepairKind) int {
	n := 0
	for _, r := range repairs {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// countCost is corchuelo.rs's score: a plain count of Inserts and Deletes,
// Shifts free. The baseline has no per-terminal weighting.
func countCost(repairs []repair) int {
	return countKind(repairs, RepairInsert) + countKind(repairs, RepairDelete)
}

func cloneRepairs(repairs []repair) []repair {
	out := make([]repair, len(repairs))
	copy(out, repairs)
	return out
}

func cloneStack(s []StIdx) []StIdx {
	out := make([]StIdx, len(s))
	copy(out, s)
	return out
}

// toCactus builds a persistent stack from a plain bottom-to-top slice.
func toCactus(s []StIdx) Cactus[StIdx] {
	c := Cactus[StIdx]{}
	for _, st := range s {
		c = c.Child(st)
	}
	return c
}

// fromCactus flattens a persistent stack back into a plain bottom-to-top
// slice.
func fromCactus(c Cactus[StIdx]) []StIdx {
	top := c.Values()
	out := make([]StIdx, len(top))
	for i, v := range top {
		out[len(top)-1-i] = v
	}
	return out
}
