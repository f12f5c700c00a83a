package insights

import (
	"fmt"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/google/cel-go/cel"
)

// Filter is a compiled CEL predicate over score records. Expressions see the
// record's fields as top-level variables, e.g.
// `composite > 20.0 && quadrant == "Quick Wins"`.
type Filter struct {
	prg cel.Program
}

// NewFilter compiles a CEL expression. The expression must evaluate to bool.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("rice", cel.DoubleType),
		cel.Variable("ml", cel.DoubleType),
		cel.Variable("composite", cel.DoubleType),
		cel.Variable("rank", cel.IntType),
		cel.Variable("quadrant", cel.StringType),
		cel.Variable("quarter", cel.StringType),
		cel.Variable("effort", cel.DoubleType),
		cel.Variable("impact", cel.DoubleType),
		cel.Variable("confidence", cel.DoubleType),
		cel.Variable("reach", cel.DoubleType),
		cel.Variable("risk", cel.DoubleType),
		cel.Variable("team", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("insights: build filter env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("insights: compile filter %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("insights: filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("insights: build filter program: %w", err)
	}
	return &Filter{prg: prg}, nil
}

// Match evaluates the predicate against one record.
func (f *Filter) Match(r *ranking.ScoreRecord) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"name":       r.Feature,
		"rice":       r.RICE,
		"ml":         r.ML,
		"composite":  r.Composite,
		"rank":       int64(r.Rank),
		"quadrant":   string(r.Quadrant),
		"quarter":    r.Quarter,
		"effort":     r.Effort,
		"impact":     r.Impact,
		"confidence": r.Confidence,
		"reach":      r.Reach,
		"risk":       r.Risk,
		"team":       r.Team,
	})
	if err != nil {
		return false, fmt.Errorf("insights: eval filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("insights: filter returned %T, want bool", out.Value())
	}
	return matched, nil
}

// ApplyFilter keeps the records matching a CEL expression, preserving rank
// order. An empty expression keeps everything.
func ApplyFilter(records []*ranking.ScoreRecord, expr string) ([]*ranking.ScoreRecord, error) {
	if expr == "" {
		return records, nil
	}
	f, err := NewFilter(expr)
	if err != nil {
		return nil, err
	}

	var out []*ranking.ScoreRecord
	for _, r := range records {
		matched, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, r)
		}
	}
	return out, nil
}
