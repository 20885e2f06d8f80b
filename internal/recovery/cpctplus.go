package recovery

import "time"

// parseAtLeast is N in Corchuelo et al.: the number of consecutive Shifts
// that declares a repair sequence successful.
const parseAtLeast = 3

// CPCTPlus is the cost-directed recoverer (spec §4.4): a shortest-path
// search over search nodes with weighted insert/delete costs, shift-by-one
// forward moves, and node merging on the §3 compatibility relation.
type CPCTPlus struct {
	Grammar  Grammar
	Table    StateTable
	Lexemes  LexemeSource
	Step     Stepper
	TermCost TermCoster

	tracer
}

// Recover implements the "Exposed to the parser host" capability (spec
// §6): it searches for repair sequences starting at inLaIdx/inPstack,
// ranks and simplifies the candidates, replays the best one against the
// caller's real stack/tree, and returns where parsing should resume plus
// every candidate at that cost.
func (c *CPCTPlus) Recover(deadline time.Time, inLaIdx int, inPstack *[]StIdx, tree TreeSink) (int, []RepairSequence) {
	startCactus := Cactus[StIdx]{}
	for _, st := range *inPstack {
		startCactus = startCactus.Child(st)
	}

	start := PathFNode{
		Pstack:  startCactus,
		LaIdx:   inLaIdx,
		Repairs: NewRepairHistory(),
		Cf:      0,
	}

	cnds := dijkstra(
		start,
		0,
		PathFNode.mergeKey,
		mergeable,
		func(n PathFNode) uint32 { return n.Cf },
		func(exploreAll bool, n PathFNode, nbrs *[]Neighbor[PathFNode]) bool {
			if time.Now().After(deadline) {
				return false
			}
			if last, ok := n.LastRepair(); !ok || last.Kind != RepairDelete {
				if exploreAll {
					c.insert(n, nbrs)
				}
			}
			if exploreAll {
				c.delete(n, nbrs)
			}
			c.shift(n, nbrs)
			return true
		},
		func(old *PathFNode, newN PathFNode) {
			if old.Repairs.sameAs(newN.Repairs) {
				return
			}
			c.notifyTrace("merge: folding alternate history at la_idx=%d cost=%d", newN.LaIdx, newN.Cf)
			old.Repairs = old.Repairs.spliceMerge(newN.Repairs)
		},
		func(n PathFNode) bool {
			if n.trailingShifts(parseAtLeast) == parseAtLeast {
				return true
			}
			st, ok := n.Pstack.Val()
			if !ok {
				panic(newInvariantError("success predicate: empty pstack"))
			}
			act := c.Table.Action(st, c.Lexemes.NextTerm(n.LaIdx))
			return act.Kind == ActionAccept
		},
	)

	if len(cnds) == 0 {
		return inLaIdx, nil
	}

	full := collectRepairs(cnds)
	ranked := rankCandidates(c.Table, c.Lexemes, c.Step, deadline, inLaIdx, *inPstack, full)
	if len(ranked) == 0 {
		return inLaIdx, nil
	}
	ranked = simplifyRepairs(ranked)

	resumeLaIdx := applyRepairs(c.Step, c.Lexemes, inLaIdx, inPstack, tree, ranked[0])
	return resumeLaIdx, ranked
}

// insert is ER1 (spec §4.4.4): try every terminal the current state has a
// defined action for (excluding EOF) and see if injecting a zero-length
// lexeme of that kind lets the automaton advance.
func (c *CPCTPlus) insert(n PathFNode, nbrs *[]Neighbor[PathFNode]) {
	st, ok := n.Pstack.Val()
	if !ok {
		panic(newInvariantError("insert: empty pstack"))
	}
	for _, t := range c.Table.StateActions(st) {
		if t == c.Grammar.EOFTermIdx() {
			continue
		}
		next := c.Lexemes.NextLexeme(n.LaIdx)
		injected := Lexeme{Term: t, Start: next.Start, Len: 0}
		newLaIdx, newPstack := c.Step.StepCactus(&injected, n.LaIdx, n.LaIdx+1, n.Pstack)
		if newLaIdx > n.LaIdx {
			nn := PathFNode{
				Pstack:  newPstack,
				LaIdx:   n.LaIdx,
				Repairs: n.Repairs.child(repair{Kind: RepairInsert, Term: t}),
				Cf:      addCost(n.Cf, c.TermCost(t)),
			}
			*nbrs = append(*nbrs, Neighbor[PathFNode]{Cost: nn.Cf, Node: nn})
		}
	}
}

// delete is ER2 (spec §4.4.4): drop the current real lexeme.
func (c *CPCTPlus) delete(n PathFNode, nbrs *[]Neighbor[PathFNode]) {
	if n.LaIdx == c.Lexemes.Len() {
		return
	}
	t := c.Lexemes.NextTerm(n.LaIdx)
	nn := PathFNode{
		Pstack:  n.Pstack,
		LaIdx:   n.LaIdx + 1,
		Repairs: n.Repairs.child(repair{Kind: RepairDelete}),
		Cf:      addCost(n.Cf, c.TermCost(t)),
	}
	*nbrs = append(*nbrs, Neighbor[PathFNode]{Cost: nn.Cf, Node: nn})
}

// shift is the shift-by-one forward move (spec §4.4.2): advance the
// automaton by at most one real lexeme. Unlike the baseline's multi-shift
// ER3, this only ever looks one token ahead, so a minimal-cost repair whose
// edit sits mid-window is never skipped over (the KimYi correction
// documented in spec §9).
func (c *CPCTPlus) shift(n PathFNode, nbrs *[]Neighbor[PathFNode]) {
	newLaIdx, newPstack := c.Step.StepCactus(nil, n.LaIdx, n.LaIdx+1, n.Pstack)
	if n.Pstack.Equal(newPstack) {
		return
	}
	repairs := n.Repairs
	if newLaIdx > n.LaIdx {
		repairs = n.Repairs.child(repair{Kind: RepairShift})
	}
	nn := PathFNode{
		Pstack:  newPstack,
		LaIdx:   newLaIdx,
		Repairs: repairs,
		Cf:      n.Cf,
	}
	*nbrs = append(*nbrs, Neighbor[PathFNode]{Cost: nn.Cf, Node: nn})
}

// collectRepairs flattens every successful node's RepairHistory into
// concrete RepairSequences, expanding each Merge into the cross product of
// its alternatives (spec §4.6).
func collectRepairs(cnds []PathFNode) [][]RepairSequence {
	out := make([][]RepairSequence, 0, len(cnds))
	for _, n := range cnds {
		seqs := n.Repairs.flatten()
		rs := make([]RepairSequence, 0, len(seqs))
		for _, s := range seqs {
			rs = append(rs, toRepairSequence(s))
		}
		out = append(out, rs)
	}
	return out
}

func toRepairSequence(rs []repair) RepairSequence {
	out := make(RepairSequence, len(rs))
	for i, r := range rs {
		out[i] = ParseRepair{Kind: r.Kind, Term: r.Term}
	}
	return out
}
