package recovery_test

import (
	"testing"
	"time"

	"github.com/dekarrin/ictiorec/internal/fixture"
	"github.com/dekarrin/ictiorec/internal/recovery"
	"github.com/stretchr/testify/assert"
)

// g1ParseToError drives host over input until the first error, returning
// the lookahead index and stack at the point recovery would be invoked.
func g1ParseToError(t *testing.T, input string) (*fixture.Host, int, []recovery.StIdx) {
	t.Helper()
	host := fixture.G1Host(input)
	pstack := []recovery.StIdx{fixture.G1InitialState}
	laIdx := 0
	var errs []error
	laIdx = host.StepMutable(nil, laIdx, nil, &pstack, &fixture.RecordingTree{}, &errs)
	top := pstack[len(pstack)-1]
	term := host.Lexemes.NextTerm(laIdx)
	require := host.Action(top, term)
	if require.Kind != recovery.ActionError {
		t.Fatalf("expected input %q to stop on an error, got action kind %v", input, require.Kind)
	}
	return host, laIdx, pstack
}

// g1ResumeToNextError continues driving host from laIdx (after a repair has
// already been replayed into pstack) until it halts on either an error or
// Accept, returning the halting lookahead index and whether it was an error.
func g1ResumeToNextError(t *testing.T, host *fixture.Host, laIdx int, pstack *[]recovery.StIdx) (int, bool) {
	t.Helper()
	var errs []error
	newLaIdx := host.StepMutable(nil, laIdx, nil, pstack, &fixture.RecordingTree{}, &errs)
	top := (*pstack)[len(*pstack)-1]
	term := host.Lexemes.NextTerm(newLaIdx)
	return newLaIdx, host.Action(top, term).Kind == recovery.ActionError
}

func repairKeys(t *testing.T, seqs []recovery.RepairSequence) []string {
	t.Helper()
	out := make([]string, len(seqs))
	for i, seq := range seqs {
		s := ""
		for j, r := range seq {
			if j > 0 {
				s += ","
			}
			s += r.String(g1Grammar{})
		}
		out[i] = s
	}
	return out
}

// g1Grammar is a minimal recovery.Grammar for rendering repairs in test
// failure messages; it only needs to name G1's four terminals.
type g1Grammar struct{}

func (g1Grammar) EOFTermIdx() recovery.TIdx { return recovery.InvalidTIdx } // unused by these tests
func (g1Grammar) TermName(t recovery.TIdx) string {
	switch t {
	case fixture.G1LParen:
		return "("
	case fixture.G1RParen:
		return ")"
	case fixture.G1Plus:
		return "+"
	case fixture.G1N:
		return "N"
	default:
		return "?"
	}
}

// TestCorchuelo_S1_UnclosedParenExactSet is scenario S1 (spec.md §8): input
// "(nn" against the baseline recoverer produces exactly the candidate set
// { [Insert ")", Insert "+", Shift], [Insert ")", Delete],
//   [Insert "+", Shift, Insert ")"] }, with Shift rendered as "Shift".
func TestCorchuelo_S1_UnclosedParenExactSet(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "(nn")

	c := &recovery.Corchuelo{
		Grammar: host,
		Table:   host,
		Lexemes: host.Lexemes,
		Step:    host,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})

	assert.Equal(t, 3, resumeLaIdx)
	want := []string{
		`Insert ")",Insert "+",Shift`,
		`Insert ")",Delete`,
		`Insert "+",Shift,Insert ")"`,
	}
	assert.ElementsMatch(t, want, repairKeys(t, seqs))
}

func TestCorchuelo_DoubledTerminal(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "nn")

	c := &recovery.Corchuelo{
		Grammar: host,
		Table:   host,
		Lexemes: host.Lexemes,
		Step:    host,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})

	assert.Equal(t, 2, resumeLaIdx)
	if assert.Len(t, seqs, 2, "candidates: %v", repairKeys(t, seqs)) {
		// the baseline never strips trailing shifts (only CPCT+ simplifies),
		// so the forward-move that confirms the Insert("+") repair still
		// carries its accompanying Shift entry.
		keys := repairKeys(t, seqs)
		assert.ElementsMatch(t, []string{"Delete", `Insert "+",Shift`}, keys)
	}
}

// TestCorchuelo_S5_RepeatedErrorsExactSet is scenario S5 (spec.md §8): input
// "n)+n+n+n)" against the baseline recoverer hits two errors. The first
// error's candidate set is { [Delete,Shift,Shift,Shift] }; resuming with
// that repair and continuing to the second error yields
// { [Delete,Shift,Shift,Shift], [Delete] }.
func TestCorchuelo_S5_RepeatedErrorsExactSet(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "n)+n+n+n)")

	c := &recovery.Corchuelo{
		Grammar: host,
		Table:   host,
		Lexemes: host.Lexemes,
		Step:    host,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})
	want1 := []string{"Delete,Shift,Shift,Shift"}
	assert.ElementsMatch(t, want1, repairKeys(t, seqs), "first error candidates")

	nextLaIdx, isError := g1ResumeToNextError(t, host, resumeLaIdx, &pstack)
	if !assert.True(t, isError, "expected a second error after resuming at la_idx=%d", resumeLaIdx) {
		return
	}

	_, seqs2 := c.Recover(time.Now().Add(time.Second), nextLaIdx, &pstack, &fixture.RecordingTree{})
	want2 := []string{"Delete,Shift,Shift,Shift", "Delete"}
	assert.ElementsMatch(t, want2, repairKeys(t, seqs2), "second error candidates")
}
