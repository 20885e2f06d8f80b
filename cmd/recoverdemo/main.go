/*
Recoverdemo is an interactive host for the ictiorec error-recovery engine.

It drives one of two small hand-built grammars (an arithmetic expression
grammar, or a grammar built to exercise search-node merging) against
typed-in text, and on every parse error invokes the recovery engine and
prints what it found.

Usage:

	recoverdemo [flags]

The flags are:

	-g, --grammar g1|g2
		Which grammar to parse with. Defaults to the config file's
		default_grammar, or "g1" if absent.

	-k, --kind corchuelo|cpctplus
		Which recovery algorithm to use. Defaults to the config file's
		default_kind, or "cpctplus" if absent.

	-c, --config FILE
		Optional TOML config file. Defaults to "ictiorec.toml" in the
		current directory; a missing file just means "use defaults".

	-i, --input TEXT
		Parse TEXT immediately and exit, instead of starting a REPL.

Once a session has started, any line not beginning with ":" is parsed as
input against the current grammar. Lines beginning with ":" are pragmas:
":grammar g1|g2", ":kind corchuelo|cpctplus", ":cost <terminal> <n>". Exit
with Ctrl-D.
*/
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates a problem before the session could start
	// (bad flags, unreadable config).
	ExitInitError

	// ExitRunError indicates a problem while running the REPL itself.
	ExitRunError
)

var (
	returnCode  = ExitSuccess
	flagGrammar = pflag.StringP("grammar", "g", "", "Grammar to parse with: g1 or g2 (default from config)")
	flagKind    = pflag.StringP("kind", "k", "", "Recovery strategy: corchuelo or cpctplus (default from config)")
	flagConfig  = pflag.StringP("config", "c", "ictiorec.toml", "Optional TOML config file")
	flagInput   = pflag.StringP("input", "i", "", "Parse this input immediately instead of starting a REPL")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we don't lose the panic just
			// because we checked
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", errors.Wrap(err, "load config"))
		returnCode = ExitInitError
		return
	}

	grammarName := *flagGrammar
	if grammarName == "" {
		grammarName = cfg.DefaultGrammar
	}
	kindName := *flagKind
	if kindName == "" {
		kindName = cfg.DefaultKind
	}

	sess, err := newSession(grammarName, kindName, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInitError
		return
	}

	if *flagInput != "" {
		fmt.Print(sess.runLine(*flagInput))
		return
	}

	if err := repl(sess); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitRunError
	}
}

func repl(sess *session) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: sess.grammar + "> "})
	if err != nil {
		return errors.Wrap(err, "create readline config")
	}
	defer rl.Close()

	for {
		rl.SetPrompt(sess.grammar + "> ")
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			return nil
		}
		out := sess.runLine(line)
		if out != "" {
			fmt.Print(out)
		}
	}
}
