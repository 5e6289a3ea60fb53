package proplogic

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// SolverOption configures a Solver at construction time. With no options
// the config matches the original engine's defaults: a 60s time limit, a
// 20-node length bound, a single permitted Conjunction per candidate,
// a discarding logger, a nil derivation sink (logging disabled), and no
// extra rules (spec.md §4.5 / SPEC_FULL.md §4.5).
type SolverOption func(*solverConfig)

type solverConfig struct {
	timeLimit         time.Duration
	lengthBound       int
	conjunctionBudget int
	logger            hclog.Logger
	sink              DerivationSink
	extraRules        []Rule
}

func defaultConfig() *solverConfig {
	return &solverConfig{
		timeLimit:         60 * time.Second,
		lengthBound:       20,
		conjunctionBudget: 1,
		logger:            hclog.NewNullLogger(),
	}
}

// WithTimeLimit overrides the default 60-second search deadline. A
// non-positive duration is ignored.
func WithTimeLimit(d time.Duration) SolverOption {
	return func(c *solverConfig) {
		if d > 0 {
			c.timeLimit = d
		}
	}
}

// WithLengthBound overrides the default 20-node candidate size cap
// (spec.md §4.5 "max_len"). A non-positive bound is ignored.
func WithLengthBound(n int) SolverOption {
	return func(c *solverConfig) {
		if n > 0 {
			c.lengthBound = n
		}
	}
}

// WithConjunctionBudget overrides how many Conjunction nodes a candidate
// expression may contain before the heuristic filter discards it
// (SPEC_FULL.md §8, Open Question 2). A root-level Conjunction is always
// rejected regardless of this budget. Negative values are ignored.
func WithConjunctionBudget(n int) SolverOption {
	return func(c *solverConfig) {
		if n >= 0 {
			c.conjunctionBudget = n
		}
	}
}

// WithLogger installs an hclog.Logger the Solver uses for structured
// progress reporting (deduction-theorem decomposition, proof discovery,
// search exhaustion).
func WithLogger(logger hclog.Logger) SolverOption {
	return func(c *solverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDerivationSink installs a DerivationSink that receives every
// axiom and modus-ponens step as it is produced, in addition to the
// in-memory log used for proof reconstruction (spec.md §4.6).
func WithDerivationSink(sink DerivationSink) SolverOption {
	return func(c *solverConfig) { c.sink = sink }
}

// WithExtraRules registers additional two-premise inference rules
// (SPEC_FULL.md §5) that participate in the same pairwise combination
// step as modus ponens. Rules are tried in both argument orders, exactly
// like modus ponens itself. Rules whose Arity is not 2 (the three-premise
// dilemmas in rules.go) are skipped by the saturation loop; call them
// directly instead.
func WithExtraRules(rules ...Rule) SolverOption {
	return func(c *solverConfig) {
		c.extraRules = append(c.extraRules, rules...)
	}
}
