package main

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ictiorec"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

const reportWidth = 80

// renderReport formats a Recoverer's output for the terminal: a fresh
// random id for this attempt, where parsing resumed, and
// every equally-ranked repair sequence, wrapped to terminal width the same
// way engine.go wraps game console messages with rosed.
func renderReport(attempt uuid.UUID, grm ictiorec.Grammar, resumeLaIdx int, seqs []ictiorec.RepairSequence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "recovery %s: resume at la_idx=%d\n", attempt, resumeLaIdx)

	if len(seqs) == 0 {
		b.WriteString("no repair found\n")
		return rosed.Edit(b.String()).Wrap(reportWidth).String()
	}

	for i, seq := range seqs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, seq.String(grm))
	}

	return rosed.Edit(b.String()).Wrap(reportWidth).String()
}
