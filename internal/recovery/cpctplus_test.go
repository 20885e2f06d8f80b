package recovery_test

import (
	"testing"
	"time"

	"github.com/dekarrin/ictiorec/internal/fixture"
	"github.com/dekarrin/ictiorec/internal/recovery"
	"github.com/stretchr/testify/assert"
)

func TestCPCTPlus_DoubledTerminal(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "nn")

	c := &recovery.CPCTPlus{
		Grammar:  host,
		Table:    host,
		Lexemes:  host.Lexemes,
		Step:     host,
		TermCost: host.TermCost,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})

	assert.Equal(t, 2, resumeLaIdx)
	// unlike the baseline, CPCT+ strips the trailing Shift once the repair
	// itself has been confirmed, so both candidates here are a single edit.
	if assert.Len(t, seqs, 2, "candidates: %v", repairKeys(t, seqs)) {
		keys := repairKeys(t, seqs)
		assert.ElementsMatch(t, []string{"Delete", `Insert "+"`}, keys)
	}
}

// TestCPCTPlus_S2_UnclosedParenExactSet is scenario S2 (spec.md §8): input
// "(nn" against CPCT+ produces, after simplification, exactly
// { [Insert ")", Insert "+"], [Insert ")", Delete],
//   [Insert "+", Shift, Insert ")"] } - the same grammar and input as
// baseline scenario S1, but CPCT+'s trailing-shift stripping and one-token
// forward move reach a different candidate set.
func TestCPCTPlus_S2_UnclosedParenExactSet(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "(nn")

	c := &recovery.CPCTPlus{
		Grammar:  host,
		Table:    host,
		Lexemes:  host.Lexemes,
		Step:     host,
		TermCost: host.TermCost,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})

	assert.Equal(t, 3, resumeLaIdx)
	want := []string{
		`Insert ")",Insert "+"`,
		`Insert ")",Delete`,
		`Insert "+",Shift,Insert ")"`,
	}
	assert.ElementsMatch(t, want, repairKeys(t, seqs))
}

// TestCPCTPlus_S3_RepeatedDeleteExactSet is scenario S3 (spec.md §8): input
// "n)+n+n+n)" against CPCT+ hits two errors, each repaired by the single
// candidate [Delete].
func TestCPCTPlus_S3_RepeatedDeleteExactSet(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "n)+n+n+n)")

	c := &recovery.CPCTPlus{
		Grammar:  host,
		Table:    host,
		Lexemes:  host.Lexemes,
		Step:     host,
		TermCost: host.TermCost,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})
	assert.ElementsMatch(t, []string{"Delete"}, repairKeys(t, seqs), "first error candidates")

	nextLaIdx, isError := g1ResumeToNextError(t, host, resumeLaIdx, &pstack)
	if !assert.True(t, isError, "expected a second error after resuming at la_idx=%d", resumeLaIdx) {
		return
	}

	_, seqs2 := c.Recover(time.Now().Add(time.Second), nextLaIdx, &pstack, &fixture.RecordingTree{})
	assert.ElementsMatch(t, []string{"Delete"}, repairKeys(t, seqs2), "second error candidates")
}

// TestCPCTPlus_S4_NestedParensExactSet is scenario S4 (spec.md §8): input
// "(((+n)+n+n+n)" against CPCT+ hits two errors. The first error's
// candidate set is { [Insert "N"], [Delete] }; the second's is
// { [Insert ")"] }.
func TestCPCTPlus_S4_NestedParensExactSet(t *testing.T) {
	host, laIdx, pstack := g1ParseToError(t, "(((+n)+n+n+n)")

	c := &recovery.CPCTPlus{
		Grammar:  host,
		Table:    host,
		Lexemes:  host.Lexemes,
		Step:     host,
		TermCost: host.TermCost,
	}

	resumeLaIdx, seqs := c.Recover(time.Now().Add(time.Second), laIdx, &pstack, &fixture.RecordingTree{})
	assert.ElementsMatch(t, []string{`Insert "N"`, "Delete"}, repairKeys(t, seqs), "first error candidates")

	nextLaIdx, isError := g1ResumeToNextError(t, host, resumeLaIdx, &pstack)
	if !assert.True(t, isError, "expected a second error after resuming at la_idx=%d", resumeLaIdx) {
		return
	}

	_, seqs2 := c.Recover(time.Now().Add(time.Second), nextLaIdx, &pstack, &fixture.RecordingTree{})
	assert.ElementsMatch(t, []string{`Insert ")"`}, repairKeys(t, seqs2), "second error candidates")
}

func TestCPCTPlus_EmptyInputOnMergeGrammar(t *testing.T) {
	host := fixture.G2Host("")
	pstack := []recovery.StIdx{fixture.G2InitialState}

	c := &recovery.CPCTPlus{
		Grammar:  host,
		Table:    host,
		Lexemes:  host.Lexemes,
		Step:     host,
		TermCost: host.TermCost,
	}

	_, seqs := c.Recover(time.Now().Add(time.Second), 0, &pstack, &fixture.RecordingTree{})

	if !assert.NotEmpty(t, seqs) {
		return
	}

	// G2 is S : T U, U : 'd', with T reachable from a single 'a', 'b' or
	// 'c'. From empty input the cheapest repairs all insert one of T's
	// three single-token spellings followed by U's only token, 'd'.
	firstTerms := make(map[string]bool)
	for _, seq := range seqs {
		assert.Len(t, seq, 2, "candidate should simplify to exactly two inserts: %v", seq)
		if len(seq) != 2 {
			continue
		}
		assert.Equal(t, recovery.RepairInsert, seq[0].Kind)
		assert.Equal(t, recovery.RepairInsert, seq[1].Kind)
		assert.Equal(t, fixture.G2D, seq[1].Term, "second insert should always be U's only token, 'd'")
		firstTerms[host.TermName(seq[0].Term)] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, firstTerms)
}
