// Command prove reads a single propositional formula and attempts to
// derive it from the standard Hilbert axioms using bounded saturation
// search (spec.md §6).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"

	"github.com/gitrdm/hilbertprove/pkg/proplogic"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("prove", flag.ContinueOnError)
	var (
		timeout     = fs.Duration("timeout", 60*time.Second, "search time budget")
		lengthBound = fs.Int("max-len", 20, "maximum node count for a candidate expression")
		conjunction = fs.Int("conjunctions", 1, "maximum Conjunction nodes a candidate may contain")
		logLevel    = fs.String("log-level", "warn", "hclog level: trace, debug, info, warn, error")
		derivation  = fs.String("derivation-log", "", "write every axiom/derivation step to this file (plain text)")
		yamlLog     = fs.Bool("yaml", false, "write the derivation log as YAML instead of plain text")
		noColor     = fs.Bool("no-color", false, "disable colored output even on a TTY")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	input, err := readTarget(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "prove:", err)
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "prove",
		Level: hclog.LevelFromString(*logLevel),
	})

	target, err := proplogic.Parse(input)
	if err != nil {
		logger.Error("failed to parse target", "input", input, "error", err)
		return 1
	}

	opts := []proplogic.SolverOption{
		proplogic.WithTimeLimit(*timeout),
		proplogic.WithLengthBound(*lengthBound),
		proplogic.WithConjunctionBudget(*conjunction),
		proplogic.WithLogger(logger),
	}

	if *derivation != "" {
		f, err := os.Create(*derivation)
		if err != nil {
			logger.Error("failed to open derivation log", "path", *derivation, "error", err)
			return 1
		}
		defer f.Close()

		var sink proplogic.DerivationSink
		if *yamlLog {
			sink = proplogic.NewYAMLSink(f)
		} else {
			sink = proplogic.NewPlainTextSink(f)
		}
		opts = append(opts, proplogic.WithDerivationSink(sink))
	}

	solver, err := proplogic.NewSolver(proplogic.StandardAxioms(), target, opts...)
	if err != nil {
		logger.Error("failed to construct solver", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	useColor := !*noColor && isatty.IsTerminal(os.Stdout.Fd())
	success := color.New(color.FgGreen, color.Bold)
	failure := color.New(color.FgRed, color.Bold)

	fmt.Printf("input: %s\n", input)
	normalized := target.Clone()
	normalized.Standardize()
	normalized.MakePermanent()
	fmt.Printf("normalized target: %s\n\n", normalized.String())

	err = solver.Solve(ctx)
	fmt.Println(solver.ThoughtChain())

	switch {
	case err == nil:
		if useColor {
			success.Println("\nproved.")
		} else {
			fmt.Println("\nproved.")
		}
		return 0
	case errors.Is(err, proplogic.ErrNoProofFound):
		// Exhausting the time budget is an ordinary outcome, not a
		// tool failure: exit 0 so callers (shell scripts, CI) don't
		// treat "no proof within the budget" as an error.
		if useColor {
			failure.Println("\nno proof found:", err)
		} else {
			fmt.Println("\nno proof found:", err)
		}
		return 0
	default:
		if useColor {
			failure.Println("\nno proof found:", err)
		} else {
			fmt.Println("\nno proof found:", err)
		}
		return 1
	}
}

// readTarget returns the formula to prove: the first positional
// argument if one was given, otherwise a single line read from stdin.
func readTarget(positional []string) (string, error) {
	if len(positional) > 0 {
		return positional[0], nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no target formula supplied on the command line or stdin")
	}
	return scanner.Text(), nil
}
