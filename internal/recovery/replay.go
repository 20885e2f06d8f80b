package recovery

// applyRepairs re-executes the chosen repair sequence against the real,
// exclusively-owned parse stack and tree-builder (spec §4.7), mirroring
// the effect each repair had during search:
//
//   - Insert(t) injects a zero-length synthetic lexeme at the current
//     offset; the real lookahead position does not advance, since no real
//     input was consumed.
//   - Delete advances the lookahead index past one real lexeme without
//     shifting it.
//   - Shift consumes one real lexeme through the host's normal
//     shift/reduce loop, which is responsible for building whatever tree
//     node results.
//
// It pays the cost of tree construction exactly once, for the single
// repair that was chosen - search itself never touches tree.
func applyRepairs(step Stepper, lexemes LexemeSource, laIdx int, pstack *[]StIdx, tree TreeSink, seq RepairSequence) int {
	for _, r := range seq {
		switch r.Kind {
		case RepairInsert:
			next := lexemes.NextLexeme(laIdx)
			injected := Lexeme{Term: r.Term, Start: next.Start, Len: 0}
			end := laIdx + 1
			var errs []error
			step.StepMutable(&injected, laIdx, &end, pstack, tree, &errs)
			// la_idx is deliberately left unchanged: the insertion did not
			// consume any real input.
		case RepairDelete:
			lx := lexemes.NextLexeme(laIdx)
			tree.Delete(lx)
			laIdx++
		case RepairShift:
			end := laIdx + 1
			var errs []error
			laIdx = step.StepMutable(nil, laIdx, &end, pstack, tree, &errs)
		}
	}
	return laIdx
}
