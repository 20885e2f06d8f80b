package fixture

import "github.com/dekarrin/ictiorec/internal/recovery"

// G1 terminal ids: the arithmetic-with-parentheses grammar from spec §8.
//
//	E : 'N'
//	  | E '+' 'N'
//	  | '(' E ')'
const (
	G1LParen recovery.TIdx = iota
	G1RParen
	G1Plus
	G1N
	g1EOF
)

// G1 nonterminal ids, used only inside this package's own goto table.
const (
	g1NontermE = iota
)

// g1Table builds the SLR(1) table for G1 by hand:
//
//	state 0: start                         (E->., on N shift 2, on '(' shift 3, goto E -> 1)
//	state 1: E->E.+N (accept on $)         (on '+' shift 4)
//	state 2: E->N.                         (reduce E->N on {+,),$})
//	state 3: (.E) closure                  (on N shift 2, on '(' shift 3, goto E -> 5)
//	state 4: E->E+.N                       (on N shift 6)
//	state 5: (E.) / E->E.+N                (on ')' shift 7, on '+' shift 4)
//	state 6: E->E+N.                       (reduce E->E+N on {+,),$})
//	state 7: (E).                          (reduce E->(E) on {+,),$})
func g1Table() *Table {
	follow := []recovery.TIdx{G1Plus, G1RParen, g1EOF}

	t := &Table{
		termNames: map[recovery.TIdx]string{
			G1LParen: "(",
			G1RParen: ")",
			G1Plus:   "+",
			G1N:      "N",
			g1EOF:    "$",
		},
		eof:      g1EOF,
		shift:    map[int]map[recovery.TIdx]int{},
		reduce:   map[int]map[recovery.TIdx]int{},
		accept:   map[int]map[recovery.TIdx]bool{},
		goTo:     map[int]map[int]int{},
		termCost: func(recovery.TIdx) uint32 { return 1 },
		prods: []production{
			0: {lhs: g1NontermE, rhsLen: 0}, // unused augmentation slot
			1: {lhs: g1NontermE, rhsLen: 1}, // E -> N
			2: {lhs: g1NontermE, rhsLen: 3}, // E -> E + N
			3: {lhs: g1NontermE, rhsLen: 3}, // E -> ( E )
		},
	}

	shift := func(s int, term recovery.TIdx, next int) {
		if t.shift[s] == nil {
			t.shift[s] = map[recovery.TIdx]int{}
		}
		t.shift[s][term] = next
	}
	reduceOnFollow := func(s int, prodIdx int) {
		if t.reduce[s] == nil {
			t.reduce[s] = map[recovery.TIdx]int{}
		}
		for _, term := range follow {
			t.reduce[s][term] = prodIdx
		}
	}
	goTo := func(s int, nonterm int, next int) {
		if t.goTo[s] == nil {
			t.goTo[s] = map[int]int{}
		}
		t.goTo[s][nonterm] = next
	}

	shift(0, G1N, 2)
	shift(0, G1LParen, 3)
	goTo(0, g1NontermE, 1)

	t.accept[1] = map[recovery.TIdx]bool{g1EOF: true}
	shift(1, G1Plus, 4)

	reduceOnFollow(2, 1) // E -> N

	shift(3, G1N, 2)
	shift(3, G1LParen, 3)
	goTo(3, g1NontermE, 5)

	shift(4, G1N, 6)

	shift(5, G1RParen, 7)
	shift(5, G1Plus, 4)

	reduceOnFollow(6, 2) // E -> E + N

	reduceOnFollow(7, 3) // E -> ( E )

	return t
}

// G1Host builds a fresh parser host for G1 over the given input string
// (characters '(', ')', '+', 'n').
func G1Host(input string) *Host {
	t := g1Table()
	lexemes := tokenize(input, g1EOF, map[rune]recovery.TIdx{
		'(': G1LParen,
		')': G1RParen,
		'+': G1Plus,
		'n': G1N,
	})
	return t.bind(lexemes)
}

// G1InitialState is the LR automaton's start state for G1.
const G1InitialState recovery.StIdx = 0
