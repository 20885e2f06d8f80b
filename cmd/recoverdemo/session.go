package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dekarrin/ictiorec"
	"github.com/dekarrin/ictiorec/internal/fixture"
	"github.com/google/shlex"
	"github.com/google/uuid"
)

const recoveryDeadline = 2 * time.Second

// maxRecoveryAttempts bounds how many times in a row a single parse will
// call into the recovery engine before giving up; a host grammar that
// somehow cannot make progress after a reported repair would otherwise
// spin the REPL forever.
const maxRecoveryAttempts = 25

// session holds the demo's current grammar and recovery-strategy choice,
// plus per-terminal cost overrides loaded from config.
type session struct {
	grammar string // "g1" or "g2"
	kind    ictiorec.RecoveryKind
	costs   map[string]int64
}

func newSession(grammarName, kindName string, cfg Config) (*session, error) {
	grammarName = strings.ToLower(grammarName)
	if grammarName != "g1" && grammarName != "g2" {
		return nil, fmt.Errorf("unknown grammar %q (want g1 or g2)", grammarName)
	}

	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}

	return &session{grammar: grammarName, kind: kind, costs: cfg.Costs}, nil
}

func parseKind(name string) (ictiorec.RecoveryKind, error) {
	switch strings.ToLower(name) {
	case "corchuelo":
		return ictiorec.Corchuelo, nil
	case "cpctplus", "":
		return ictiorec.CPCTPlus, nil
	default:
		return 0, fmt.Errorf("unknown recovery kind %q (want corchuelo or cpctplus)", name)
	}
}

func (s *session) hostFor(input string) (*fixture.Host, ictiorec.StIdx) {
	if s.grammar == "g2" {
		return fixture.G2Host(input), fixture.G2InitialState
	}
	return fixture.G1Host(input), fixture.G1InitialState
}

func (s *session) termCost(host *fixture.Host) ictiorec.TermCoster {
	return func(t ictiorec.TIdx) uint32 {
		if raw, ok := s.costs[host.TermName(t)]; ok {
			return uint32(raw)
		}
		return host.TermCost(t)
	}
}

// runLine dispatches a pragma (":grammar g2", ":kind corchuelo", ":cost a 5")
// or, for anything else, parses the line as real input against the current
// grammar.
func (s *session) runLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if strings.HasPrefix(line, ":") {
		return s.runPragma(line)
	}
	return s.parse(line)
}

func (s *session) runPragma(line string) string {
	fields, err := shlex.Split(strings.TrimPrefix(line, ":"))
	if err != nil {
		return "malformed pragma: " + err.Error()
	}
	if len(fields) == 0 {
		return "empty pragma"
	}
	switch fields[0] {
	case "grammar":
		if len(fields) != 2 || (fields[1] != "g1" && fields[1] != "g2") {
			return "usage: :grammar g1|g2"
		}
		s.grammar = fields[1]
		return "grammar set to " + s.grammar
	case "kind":
		if len(fields) != 2 {
			return "usage: :kind corchuelo|cpctplus"
		}
		k, err := parseKind(fields[1])
		if err != nil {
			return err.Error()
		}
		s.kind = k
		return "recovery kind set to " + k.String()
	case "cost":
		if len(fields) != 3 {
			return "usage: :cost <terminal> <nonneg int>"
		}
		n, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil || n < 0 {
			return "cost must be a nonnegative integer"
		}
		if s.costs == nil {
			s.costs = map[string]int64{}
		}
		s.costs[fields[1]] = n
		return fmt.Sprintf("cost of %q set to %d", fields[1], n)
	default:
		return "unknown pragma: " + fields[0]
	}
}

// parse drives input through the current grammar's shift/reduce loop,
// invoking the recovery engine on every error and reporting what it found,
// the same shape engine.go's RunUntilQuit loop uses to drive one command
// at a time and print what happened.
func (s *session) parse(input string) string {
	host, start := s.hostFor(input)
	pstack := []ictiorec.StIdx{start}
	tree := &fixture.RecordingTree{}
	laIdx := 0

	var b strings.Builder
	recoverer := ictiorec.NewRecoverer(s.kind, host, host, host.Lexemes, host, s.termCost(host))

	for attempts := 0; attempts < maxRecoveryAttempts; attempts++ {
		var errs []error
		laIdx = host.StepMutable(nil, laIdx, nil, &pstack, tree, &errs)

		top := pstack[len(pstack)-1]
		term := host.Lexemes.NextTerm(laIdx)
		act := host.Action(top, term)

		switch act.Kind {
		case ictiorec.ActionAccept:
			fmt.Fprintf(&b, "accepted after %d shifted token(s)\n", countShifts(tree))
			return b.String()
		case ictiorec.ActionError:
			deadline := time.Now().Add(recoveryDeadline)
			resumeLaIdx, seqs := recoverer.Recover(deadline, laIdx, &pstack, tree)
			b.WriteString(renderReport(uuid.New(), host, resumeLaIdx, seqs))
			if len(seqs) == 0 {
				return b.String()
			}
			laIdx = resumeLaIdx
		default:
			// unreachable: run() only stops on Accept or Error when
			// endLaIdx is nil.
			return b.String()
		}
	}

	fmt.Fprintf(&b, "gave up after %d recovery attempts\n", maxRecoveryAttempts)
	return b.String()
}

func countShifts(tree *fixture.RecordingTree) int {
	n := 0
	for _, e := range tree.Events {
		if e.Shifted {
			n++
		}
	}
	return n
}
