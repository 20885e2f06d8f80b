package fixture

import "github.com/dekarrin/ictiorec/internal/recovery"

// G2 terminal ids: the merge-test grammar from spec §8.
//
//	S : T U
//	T : T1 | 'b' | T2
//	T1: 'a'
//	T2: 'c' | 'a' 'b' 'c'
//	U : 'd'
//
// It is built specifically so that T1 -> 'a' and T2 -> 'a' 'b' 'c' share a
// prefix: after shifting 'a', the parser is in a state with both a pending
// reduce (T1 -> 'a', on lookahead 'd') and a pending shift (on 'b', towards
// T2 -> 'a' 'b' 'c'). That shared prefix is what gives the CPCT+ recoverer
// something to merge in scenario S6: the histories that reach "just shifted
// 'a'" via Insert("a") are the same search node regardless of which of T1's
// or T2's alternatives the repair was eventually headed toward.
const (
	G2A recovery.TIdx = iota
	G2B
	G2C
	G2D
	g2EOF
)

const (
	g2NontermS = iota
	g2NontermT
	g2NontermT1
	g2NontermT2
	g2NontermU
)

// g2Table builds the SLR(1) table for G2 by hand. States:
//
//	0  start                (on a->3, b->4, c->5; goto S->1, T->2, T1->6, T2->7)
//	1  S'->S.                (accept on $)
//	2  S->T.U                (on d->9; goto U->10)
//	3  T1->a. / T2->a.bc     (on b->8; reduce T1->a on d)
//	4  T->b.                 (reduce T->b on d)
//	5  T2->c.                (reduce T2->c on d)
//	6  T->T1.                (reduce T->T1 on d)
//	7  T->T2.                (reduce T->T2 on d)
//	8  T2->ab.c              (on c->11)
//	9  U->d.                 (reduce U->d on $)
//	10 S->TU.                (reduce S->TU on $)
//	11 T2->abc.              (reduce T2->abc on d)
func g2Table() *Table {
	t := &Table{
		termNames: map[recovery.TIdx]string{
			G2A:   "a",
			G2B:   "b",
			G2C:   "c",
			G2D:   "d",
			g2EOF: "$",
		},
		eof:      g2EOF,
		shift:    map[int]map[recovery.TIdx]int{},
		reduce:   map[int]map[recovery.TIdx]int{},
		accept:   map[int]map[recovery.TIdx]bool{},
		goTo:     map[int]map[int]int{},
		termCost: func(recovery.TIdx) uint32 { return 1 },
		prods: []production{
			0: {lhs: g2NontermS, rhsLen: 0},  // unused augmentation slot
			1: {lhs: g2NontermS, rhsLen: 2},  // S -> T U
			2: {lhs: g2NontermT, rhsLen: 1},  // T -> T1
			3: {lhs: g2NontermT, rhsLen: 1},  // T -> 'b'
			4: {lhs: g2NontermT, rhsLen: 1},  // T -> T2
			5: {lhs: g2NontermT1, rhsLen: 1}, // T1 -> 'a'
			6: {lhs: g2NontermT2, rhsLen: 1}, // T2 -> 'c'
			7: {lhs: g2NontermT2, rhsLen: 3}, // T2 -> 'a' 'b' 'c'
			8: {lhs: g2NontermU, rhsLen: 1},  // U -> 'd'
		},
	}

	shift := func(s int, term recovery.TIdx, next int) {
		if t.shift[s] == nil {
			t.shift[s] = map[recovery.TIdx]int{}
		}
		t.shift[s][term] = next
	}
	reduce := func(s int, term recovery.TIdx, prodIdx int) {
		if t.reduce[s] == nil {
			t.reduce[s] = map[recovery.TIdx]int{}
		}
		t.reduce[s][term] = prodIdx
	}
	goTo := func(s int, nonterm int, next int) {
		if t.goTo[s] == nil {
			t.goTo[s] = map[int]int{}
		}
		t.goTo[s][nonterm] = next
	}

	shift(0, G2A, 3)
	shift(0, G2B, 4)
	shift(0, G2C, 5)
	goTo(0, g2NontermS, 1)
	goTo(0, g2NontermT, 2)
	goTo(0, g2NontermT1, 6)
	goTo(0, g2NontermT2, 7)

	t.accept[1] = map[recovery.TIdx]bool{g2EOF: true}

	shift(2, G2D, 9)
	goTo(2, g2NontermU, 10)

	shift(3, G2B, 8)
	reduce(3, G2D, 5) // T1 -> 'a'

	reduce(4, G2D, 3) // T -> 'b'

	reduce(5, G2D, 6) // T2 -> 'c'

	reduce(6, G2D, 2) // T -> T1

	reduce(7, G2D, 4) // T -> T2

	shift(8, G2C, 11)

	reduce(9, g2EOF, 8) // U -> 'd'

	reduce(10, g2EOF, 1) // S -> T U

	reduce(11, G2D, 7) // T2 -> 'a' 'b' 'c'

	return t
}

// G2Host builds a fresh parser host for G2 over the given input string
// (characters 'a', 'b', 'c', 'd').
func G2Host(input string) *Host {
	t := g2Table()
	lexemes := tokenize(input, g2EOF, map[rune]recovery.TIdx{
		'a': G2A,
		'b': G2B,
		'c': G2C,
		'd': G2D,
	})
	return t.bind(lexemes)
}

// G2InitialState is the LR automaton's start state for G2.
const G2InitialState recovery.StIdx = 0
