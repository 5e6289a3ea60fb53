// Command provebatch proves many formulas concurrently by running one
// Solver per line of input across a fixed worker pool (SPEC_FULL.md
// §3.2). Each formula gets its own Solver instance — the search engine
// itself stays single-threaded; concurrency comes from running
// independent searches side by side, never from sharing one search's
// state across goroutines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/hilbertprove/internal/workerpool"
	"github.com/gitrdm/hilbertprove/pkg/proplogic"
)

type result struct {
	index  int
	target string
	proof  string
	err    error
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("provebatch", flag.ContinueOnError)
	var (
		workers  = fs.Int("workers", 4, "number of concurrent Solver instances")
		timeout  = fs.Duration("timeout", 60*time.Second, "per-formula search time budget")
		logLevel = fs.String("log-level", "warn", "hclog level: trace, debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	targets, err := readTargets(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "provebatch:", err)
		return 1
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "provebatch: no formulas supplied")
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "provebatch",
		Level: hclog.LevelFromString(*logLevel),
	})

	pool := workerpool.New(*workers)
	defer pool.Shutdown()

	ctx := context.Background()
	results := make([]result, len(targets))
	var wg sync.WaitGroup

	for i, t := range targets {
		i, t := i, t
		wg.Add(1)
		submitErr := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = proveOne(ctx, i, t, *timeout, logger)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = result{index: i, target: t, err: submitErr}
		}
	}

	wg.Wait()

	var failures *multierror.Error
	proved := 0
	for _, r := range results {
		if r.err != nil {
			failures = multierror.Append(failures, fmt.Errorf("formula %d (%q): %w", r.index, r.target, r.err))
			fmt.Printf("[%d] %s -- FAILED: %v\n", r.index, r.target, r.err)
			continue
		}
		proved++
		fmt.Printf("[%d] %s -- proved: %s\n", r.index, r.target, r.proof)
	}

	fmt.Printf("\n%d/%d proved\n", proved, len(targets))

	if failures.ErrorOrNil() != nil {
		fmt.Fprintln(os.Stderr, failures)
		return 1
	}
	return 0
}

func proveOne(ctx context.Context, index int, input string, timeout time.Duration, logger hclog.Logger) result {
	target, err := proplogic.Parse(input)
	if err != nil {
		return result{index: index, target: input, err: err}
	}

	solver, err := proplogic.NewSolver(
		proplogic.StandardAxioms(),
		target,
		proplogic.WithTimeLimit(timeout),
		proplogic.WithLogger(logger.Named(fmt.Sprintf("formula-%d", index))),
	)
	if err != nil {
		return result{index: index, target: input, err: err}
	}

	solveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := solver.Solve(solveCtx); err != nil {
		return result{index: index, target: input, err: err}
	}
	return result{index: index, target: input, proof: solver.Proof().String()}
}

// readTargets returns one formula per non-blank line: from the named
// file if one positional argument was given, otherwise from stdin.
func readTargets(positional []string) ([]string, error) {
	var r *os.File
	if len(positional) > 0 {
		f, err := os.Open(positional[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = os.Stdin
	}

	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	return targets, scanner.Err()
}
