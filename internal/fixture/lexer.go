package fixture

import "github.com/dekarrin/ictiorec/internal/recovery"

// Lexemes is a LexemeSource over an already-tokenised input: one character
// of source maps to one terminal. It is deliberately minimal (no multi-
// character tokens, no whitespace skipping) since the grammars it serves
// (G1, G2) only need single-character terminals.
type Lexemes struct {
	lexemes []recovery.Lexeme
	eof     recovery.TIdx
}

// Len implements recovery.LexemeSource.
func (l *Lexemes) Len() int { return len(l.lexemes) }

// NextLexeme implements recovery.LexemeSource.
func (l *Lexemes) NextLexeme(laIdx int) recovery.Lexeme {
	if laIdx >= len(l.lexemes) {
		return recovery.Lexeme{Term: l.eof, Start: len(l.lexemes), Len: 0}
	}
	return l.lexemes[laIdx]
}

// NextTerm implements recovery.LexemeSource.
func (l *Lexemes) NextTerm(laIdx int) recovery.TIdx {
	return l.NextLexeme(laIdx).Term
}

// tokenize maps each rune of src through charTerms (rune -> TIdx), in
// order, one lexeme per rune. It panics on an unrecognised rune, which is
// appropriate here: callers only ever feed it the fixed alphabets of G1/G2.
func tokenize(src string, eof recovery.TIdx, charTerms map[rune]recovery.TIdx) *Lexemes {
	lexemes := make([]recovery.Lexeme, 0, len(src))
	for i, r := range src {
		term, ok := charTerms[r]
		if !ok {
			panic("fixture: unrecognized input character " + string(r))
		}
		lexemes = append(lexemes, recovery.Lexeme{Term: term, Start: i, Len: 1})
	}
	return &Lexemes{lexemes: lexemes, eof: eof}
}
