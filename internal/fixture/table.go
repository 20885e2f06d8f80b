// Package fixture provides two small, hand-built LR(1)/SLR(1) grammars
// (an arithmetic expression grammar and a grammar designed to exercise
// search-node merging) that act as a parser host for the recovery engine:
// each implements recovery.Grammar, recovery.StateTable, recovery.
// LexemeSource, recovery.Stepper and recovery.TreeSink over a declarative
// action/goto table, the same way test_fixtures.go in the teacher's own
// parse package hand-builds a minimal host for its parser tests.
package fixture

import (
	"fmt"

	"github.com/dekarrin/ictiorec/internal/recovery"
)

// production is A -> rhs, where lhs is a nonterminal id. rhs mixes
// terminals and nonterminals, but since the driver only needs to know how
// many symbols to pop, rhs is stored as just a length.
type production struct {
	lhs    int
	rhsLen int
}

// Table is a hand-assembled LR table: enough to drive shift/reduce/goto
// parsing for a small grammar, plus the narrower StateTable/Grammar views
// the recovery engine itself is allowed to see.
type Table struct {
	termNames map[recovery.TIdx]string
	eof       recovery.TIdx

	shift  map[int]map[recovery.TIdx]int
	reduce map[int]map[recovery.TIdx]int // -> production index
	accept map[int]map[recovery.TIdx]bool
	goTo   map[int]map[int]int // state -> nonterm id -> state
	prods  []production

	termCost recovery.TermCoster
}

// EOFTermIdx implements recovery.Grammar.
func (t *Table) EOFTermIdx() recovery.TIdx { return t.eof }

// TermName implements recovery.Grammar.
func (t *Table) TermName(term recovery.TIdx) string {
	if name, ok := t.termNames[term]; ok {
		return name
	}
	return fmt.Sprintf("<term %d>", term)
}

// StateActions implements recovery.StateTable.
func (t *Table) StateActions(s recovery.StIdx) []recovery.TIdx {
	seen := make(map[recovery.TIdx]bool)
	var out []recovery.TIdx
	for term := range t.shift[int(s)] {
		if !seen[term] {
			seen[term] = true
			out = append(out, term)
		}
	}
	for term := range t.reduce[int(s)] {
		if !seen[term] {
			seen[term] = true
			out = append(out, term)
		}
	}
	for term := range t.accept[int(s)] {
		if !seen[term] {
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}

// Action implements recovery.StateTable.
func (t *Table) Action(s recovery.StIdx, term recovery.TIdx) recovery.Action {
	if next, ok := t.shift[int(s)][term]; ok {
		return recovery.Action{Kind: recovery.ActionShift, Shift: recovery.StIdx(next)}
	}
	if t.accept[int(s)][term] {
		return recovery.Action{Kind: recovery.ActionAccept}
	}
	if _, ok := t.reduce[int(s)][term]; ok {
		return recovery.Action{Kind: recovery.ActionReduce}
	}
	return recovery.Action{Kind: recovery.ActionError}
}

// TermCost implements recovery.TermCoster's host side: CPCT+ takes this as
// a function value directly, so Table exposes it as a method value.
func (t *Table) TermCost(term recovery.TIdx) uint32 {
	return t.termCost(term)
}

// run is the shared driving loop behind StepCactus and StepMutable: it
// processes lexemes (an injected synthetic one, if given, serves as the
// lookahead through any reduces until it is shifted) against pstack until
// la_idx reaches endLaIdx or the parser would
// Accept or Error, mirroring the LR shift/reduce/goto loop in lr.go's
// Parse method, generalised with a bounded window and an optional
// injected lookahead override (spec §4.2).
//
// Reduces never touch tree: the recovery engine's TreeSink only reports
// Shift and Delete (reduction is entirely the host's own business, and a
// real parser would build its reduce nodes from its own token/subtree
// stacks exactly as lr.go's Parse does - nothing about that needs to be
// visible to the recoverer).
func (t *Table) run(injected *recovery.Lexeme, laIdx, endLaIdx int, top func() (int, bool), push func(int), pop func(int), lexemes recovery.LexemeSource, tree recovery.TreeSink) int {
	for laIdx != endLaIdx {
		var term recovery.TIdx
		var lx recovery.Lexeme
		usingInjected := injected != nil
		if usingInjected {
			term, lx = injected.Term, *injected
		} else {
			term, lx = lexemes.NextTerm(laIdx), lexemes.NextLexeme(laIdx)
		}

		st, ok := top()
		if !ok {
			panic(fmt.Sprintf("fixture: empty parse stack at la_idx=%d", laIdx))
		}

		act := t.Action(recovery.StIdx(st), term)
		switch act.Kind {
		case recovery.ActionAccept, recovery.ActionError:
			return laIdx
		case recovery.ActionShift:
			push(int(act.Shift))
			if tree != nil {
				tree.Shift(lx)
			}
			laIdx++
			injected = nil
		case recovery.ActionReduce:
			prodIdx, ok := t.reduce[st][term]
			if !ok {
				panic(fmt.Sprintf("fixture: reduce action with no production at state %d", st))
			}
			p := t.prods[prodIdx]
			for i := 0; i < p.rhsLen; i++ {
				pop(1)
			}
			newTop, ok := top()
			if !ok {
				panic("fixture: stack exhausted during reduce")
			}
			gotoState, ok := t.goTo[newTop][p.lhs]
			if !ok {
				panic(fmt.Sprintf("fixture: no goto from state %d on nonterminal %d", newTop, p.lhs))
			}
			push(gotoState)
		}
	}
	return laIdx
}

// Host bundles a Table with the LexemeSource it was built to drive, since
// StepCactus/StepMutable need to read real lexemes but recovery.Stepper's
// signature doesn't carry one through explicitly (the host already knows
// its own input).
type Host struct {
	*Table
	Lexemes recovery.LexemeSource
}

func (t *Table) bind(lexemes recovery.LexemeSource) *Host {
	return &Host{Table: t, Lexemes: lexemes}
}

// StepCactus implements recovery.Stepper.
func (h *Host) StepCactus(injected *recovery.Lexeme, laIdx, endLaIdx int, pstack recovery.Cactus[recovery.StIdx]) (int, recovery.Cactus[recovery.StIdx]) {
	cur := pstack
	top := func() (int, bool) {
		v, ok := cur.Val()
		return int(v), ok
	}
	push := func(s int) { cur = cur.Child(recovery.StIdx(s)) }
	pop := func(int) {
		p, ok := cur.Parent()
		if !ok {
			panic("fixture: pop from empty persistent stack")
		}
		cur = p
	}
	newLaIdx := h.Table.run(injected, laIdx, endLaIdx, top, push, pop, h.Lexemes, nil)
	return newLaIdx, cur
}

// StepMutable implements recovery.Stepper over a real, exclusively-owned
// stack and tree-builder. Replay (spec §4.7) uses it, and so do the demo and
// the tests to drive ordinary parsing.
func (h *Host) StepMutable(injected *recovery.Lexeme, laIdx int, endLaIdx *int, pstack *[]recovery.StIdx, tree recovery.TreeSink, errs *[]error) int {
	end := laIdx + 1
	if endLaIdx != nil {
		end = *endLaIdx
	} else {
		end = h.Lexemes.Len() + 1 // run to Accept/Error regardless of la_idx
	}
	top := func() (int, bool) {
		if len(*pstack) == 0 {
			return 0, false
		}
		return int((*pstack)[len(*pstack)-1]), true
	}
	push := func(s int) { *pstack = append(*pstack, recovery.StIdx(s)) }
	pop := func(int) { *pstack = (*pstack)[:len(*pstack)-1] }
	return h.Table.run(injected, laIdx, end, top, push, pop, h.Lexemes, tree)
}
