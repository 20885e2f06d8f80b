package recovery

import (
	"sort"
	"time"
)

// rankCandidates implements spec §4.6's rank_cnds: each candidate sequence
// is replayed (without tree building) from (inLaIdx, inPstack), then
// parsing continues over real input until the next error or EOF. The rank
// key is how far the parser progressed - higher is better. Candidates that
// fail to even apply are discarded; ties keep their original discovery
// order (a stable sort).
func rankCandidates(table StateTable, lexemes LexemeSource, step Stepper, deadline time.Time, inLaIdx int, inPstack []StIdx, groups [][]RepairSequence) []RepairSequence {
	startCactus := Cactus[StIdx]{}
	for _, st := range inPstack {
		startCactus = startCactus.Child(st)
	}

	type scored struct {
		seq      RepairSequence
		progress int
		order    int
	}

	var all []scored
	order := 0
	for _, group := range groups {
		for _, seq := range group {
			if time.Now().After(deadline) {
				break
			}
			laIdx, pstack, ok := applySequenceCactus(lexemes, step, inLaIdx, startCactus, seq)
			if !ok {
				order++
				continue
			}
			finalLaIdx, _ := step.StepCactus(nil, laIdx, lexemes.Len()+1, pstack)
			all = append(all, scored{seq: seq, progress: finalLaIdx, order: order})
			order++
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].progress != all[j].progress {
			return all[i].progress > all[j].progress
		}
		return all[i].order < all[j].order
	})

	out := make([]RepairSequence, len(all))
	for i, s := range all {
		out[i] = s.seq
	}
	return out
}

// applySequenceCactus replays seq against a persistent stack, the same way
// search exploration did, but this time just to measure whether it applies
// cleanly - no tree is built. It mirrors the per-repair semantics of
// insert/delete/shift in cpctplus.go.
func applySequenceCactus(lexemes LexemeSource, step Stepper, laIdx int, pstack Cactus[StIdx], seq RepairSequence) (int, Cactus[StIdx], bool) {
	for _, r := range seq {
		switch r.Kind {
		case RepairInsert:
			next := lexemes.NextLexeme(laIdx)
			injected := Lexeme{Term: r.Term, Start: next.Start, Len: 0}
			newLaIdx, newPstack := step.StepCactus(&injected, laIdx, laIdx+1, pstack)
			if newLaIdx <= laIdx {
				return laIdx, pstack, false
			}
			pstack = newPstack
		case RepairDelete:
			if laIdx >= lexemes.Len() {
				return laIdx, pstack, false
			}
			laIdx++
		case RepairShift:
			newLaIdx, newPstack := step.StepCactus(nil, laIdx, laIdx+1, pstack)
			if newPstack.Equal(pstack) {
				return laIdx, pstack, false
			}
			pstack = newPstack
			laIdx = newLaIdx
		}
	}
	return laIdx, pstack, true
}

// simplifyRepairs strips trailing Shifts from every sequence (they're
// cosmetic once the last real edit has happened) and then drops duplicate
// sequences, preserving first occurrence (spec §4.6).
func simplifyRepairs(seqs []RepairSequence) []RepairSequence {
	out := make([]RepairSequence, 0, len(seqs))
	seen := make(map[string]bool, len(seqs))
	for _, seq := range seqs {
		trimmed := stripTrailingShifts(seq)
		k := repairSequenceKey(trimmed)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, trimmed)
	}
	return out
}

func stripTrailingShifts(seq RepairSequence) RepairSequence {
	end := len(seq)
	for end > 0 && seq[end-1].Kind == RepairShift {
		end--
	}
	out := make(RepairSequence, end)
	copy(out, seq[:end])
	return out
}

func repairSequenceKey(seq RepairSequence) string {
	key := make([]byte, 0, len(seq)*3)
	for _, r := range seq {
		key = append(key, byte(r.Kind), byte(r.Term), byte(r.Term>>8))
	}
	return string(key)
}
