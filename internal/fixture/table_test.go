package fixture

import (
	"testing"

	"github.com/dekarrin/ictiorec/internal/recovery"
	"github.com/stretchr/testify/assert"
)

func TestG1Host_AcceptsValidInput(t *testing.T) {
	host := G1Host("(n+n)")
	pstack := []recovery.StIdx{G1InitialState}
	tree := &RecordingTree{}
	var errs []error

	laIdx := host.StepMutable(nil, 0, nil, &pstack, tree, &errs)

	top := pstack[len(pstack)-1]
	term := host.Lexemes.NextTerm(laIdx)
	assert.Equal(t, recovery.ActionAccept, host.Action(top, term).Kind)
	assert.Empty(t, errs)

	shifted := 0
	for _, e := range tree.Events {
		if e.Shifted {
			shifted++
		}
	}
	assert.Equal(t, 5, shifted)
}

func TestG1Host_StopsOnError(t *testing.T) {
	host := G1Host("(nn")
	pstack := []recovery.StIdx{G1InitialState}
	var errs []error

	laIdx := host.StepMutable(nil, 0, nil, &pstack, &RecordingTree{}, &errs)

	top := pstack[len(pstack)-1]
	term := host.Lexemes.NextTerm(laIdx)
	assert.Equal(t, recovery.ActionError, host.Action(top, term).Kind)
	assert.Equal(t, 2, laIdx)
}

func TestG2Host_AcceptsEachTAlternative(t *testing.T) {
	for _, input := range []string{"ad", "bd", "cd", "abcd"} {
		host := G2Host(input)
		pstack := []recovery.StIdx{G2InitialState}
		var errs []error

		laIdx := host.StepMutable(nil, 0, nil, &pstack, &RecordingTree{}, &errs)

		top := pstack[len(pstack)-1]
		term := host.Lexemes.NextTerm(laIdx)
		assert.Equalf(t, recovery.ActionAccept, host.Action(top, term).Kind, "input %q", input)
	}
}

func TestG2Host_RejectsMissingU(t *testing.T) {
	host := G2Host("a")
	pstack := []recovery.StIdx{G2InitialState}
	var errs []error

	laIdx := host.StepMutable(nil, 0, nil, &pstack, &RecordingTree{}, &errs)

	top := pstack[len(pstack)-1]
	term := host.Lexemes.NextTerm(laIdx)
	assert.Equal(t, recovery.ActionError, host.Action(top, term).Kind)
}

func TestHost_StepCactusMirrorsStepMutable(t *testing.T) {
	host := G1Host("n+n")
	startCactus := recovery.Cactus[recovery.StIdx]{}.Child(G1InitialState)

	laIdx, pstack := host.StepCactus(nil, 0, host.Lexemes.Len()+1, startCactus)

	assert.Equal(t, 3, laIdx)
	top, ok := pstack.Val()
	assert.True(t, ok)
	assert.Equal(t, recovery.ActionAccept, host.Action(top, host.Lexemes.NextTerm(laIdx)).Kind)

	mutStack := []recovery.StIdx{G1InitialState}
	var errs []error
	mutLaIdx := host.StepMutable(nil, 0, nil, &mutStack, &RecordingTree{}, &errs)
	assert.Equal(t, mutLaIdx, laIdx)
	assert.Equal(t, mutStack[len(mutStack)-1], top)
}
