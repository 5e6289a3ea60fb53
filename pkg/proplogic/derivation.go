package proplogic

import (
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-yaml"
)

// DerivationRecord is one append-only entry in a Solver's derivation
// log: either a seed axiom ("axiom", no dependencies) or a modus-ponens
// conclusion ("mp", exactly two dependencies), keyed by the normalized
// string form of Expression (spec.md §4.6).
type DerivationRecord struct {
	Expression   string   `yaml:"expression"`
	Rule         string   `yaml:"rule"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// DerivationSink receives a copy of every DerivationRecord as it is
// appended, in addition to the Solver's own in-memory index used for
// proof reconstruction. Write errors are discarded and never abort a
// search (spec.md §7: sink failures are non-fatal).
type DerivationSink interface {
	Write(DerivationRecord) error
}

// DerivationLog is the in-memory, append-only store backing proof
// reconstruction (build_thought_chain in the original solver). Lookups
// are by the normalized expression string; the first writer for a given
// string wins, matching the original's "skip if already present" dedup
// when replaying conclusions.txt.
type DerivationLog struct {
	mu      sync.Mutex
	records map[string]DerivationRecord
	order   []string
	sink    DerivationSink
}

func newDerivationLog(sink DerivationSink) *DerivationLog {
	return &DerivationLog{records: make(map[string]DerivationRecord), sink: sink}
}

func (l *DerivationLog) recordAxiom(expr string) {
	l.append(DerivationRecord{Expression: expr, Rule: "axiom"})
}

func (l *DerivationLog) recordStep(expr, rule string, deps ...string) {
	l.append(DerivationRecord{Expression: expr, Rule: rule, Dependencies: deps})
}

func (l *DerivationLog) append(rec DerivationRecord) {
	l.mu.Lock()
	if _, exists := l.records[rec.Expression]; !exists {
		l.records[rec.Expression] = rec
		l.order = append(l.order, rec.Expression)
	}
	l.mu.Unlock()

	if l.sink != nil {
		_ = l.sink.Write(rec)
	}
}

func (l *DerivationLog) lookup(expr string) (DerivationRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[expr]
	return rec, ok
}

// PlainTextSink writes one whitespace-separated line per record —
// "expression rule dep1 dep2" — mirroring the original engine's
// conclusions.txt dump format.
type PlainTextSink struct {
	w io.Writer
}

// NewPlainTextSink wraps w as a DerivationSink.
func NewPlainTextSink(w io.Writer) *PlainTextSink {
	return &PlainTextSink{w: w}
}

func (s *PlainTextSink) Write(rec DerivationRecord) error {
	line := rec.Expression + " " + rec.Rule
	for _, dep := range rec.Dependencies {
		line += " " + dep
	}
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// YAMLSink writes each record as its own "---"-delimited YAML document,
// giving a streamable alternative to PlainTextSink (SPEC_FULL.md §3.3).
type YAMLSink struct {
	w     io.Writer
	first bool
}

// NewYAMLSink wraps w as a DerivationSink.
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w, first: true}
}

func (s *YAMLSink) Write(rec DerivationRecord) error {
	if !s.first {
		if _, err := fmt.Fprintln(s.w, "---"); err != nil {
			return err
		}
	}
	s.first = false

	out, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.w.Write(out)
	return err
}
