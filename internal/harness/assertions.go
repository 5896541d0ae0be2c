package harness

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/stmtir/internal/builder"
	"github.com/roach88/stmtir/internal/store"
	"github.com/roach88/stmtir/internal/value"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nStatements:\n")
		for _, event := range e.Trace {
			if event.Type == EventStatement {
				fmt.Fprintf(&buf, "  [%d] %s: %s\n", event.Seq, event.Step, event.SQL)
			}
		}
	}

	return buf.String()
}

// assertTraceContains checks that a statement of the given kind whose SQL
// contains the given substring was compiled.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	kind := strings.ToLower(assertion.Kind)
	for _, event := range trace {
		if event.Type == EventStatement && event.Kind == kind && strings.Contains(event.SQL, assertion.SQL) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("%s statement containing %q", kind, assertion.SQL),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the named steps compiled in the given order.
// Steps don't need to be consecutive (intervening steps are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if event.Type == EventStatement && positions[event.Step] == 0 {
			positions[event.Step] = i + 1 // 1-indexed for readability
		}
	}

	for _, step := range assertion.Steps {
		if positions[step] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all steps present: %v", assertion.Steps),
				Actual:   fmt.Sprintf("missing step: %s", step),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Steps); i++ {
		prev := assertion.Steps[i-1]
		curr := assertion.Steps[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("steps in order: %v", assertion.Steps),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that exactly Count statements of Kind compiled.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	kind := strings.ToLower(assertion.Kind)
	count := 0
	for _, event := range trace {
		if event.Type == EventStatement && event.Kind == kind {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d %s statements", assertion.Count, kind),
			Actual:   fmt.Sprintf("%d %s statements", count, kind),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalState checks that exactly one row of the table matches the
// where filters and that it holds the expected values (subset semantics).
//
// The lookup is itself built with the statement builder, so table and
// column names are quoted and values bound as parameters.
func assertFinalState(ctx context.Context, st *store.Store, assertion Assertion) error {
	b := builder.SelectFrom(assertion.Table)
	for _, key := range slices.Sorted(maps.Keys(assertion.Where)) {
		b = b.Where(key, "=", assertion.Where[key])
	}
	q, err := b.Compile()
	if err != nil {
		return fmt.Errorf("final_state %s: %w", assertion.Table, err)
	}

	rows, err := st.Query(ctx, q)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}

	whereDesc := formatWhere(assertion.Where)
	switch len(rows) {
	case 0:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, whereDesc),
			Actual:   "row not found",
		}
	case 1:
	default:
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, whereDesc),
			Actual:   fmt.Sprintf("%d rows matched (assertion is ambiguous)", len(rows)),
		}
	}

	actual := rows[0]
	for _, key := range slices.Sorted(maps.Keys(assertion.Expect)) {
		got, exists := actual[key]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("columns: %v", slices.Sorted(maps.Keys(actual))),
			}
		}

		want, err := value.FromAny(assertion.Expect[key])
		if err != nil {
			return fmt.Errorf("final_state %s.%s: %w", assertion.Table, key, err)
		}
		if !value.Equal(want, got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %s", key, value.Format(want)),
				Actual:   fmt.Sprintf("field %q = %s", key, value.Format(got)),
			}
		}
	}

	return nil
}

// formatWhere renders filters as "a = 1 AND b = 'x'" in sorted key order.
func formatWhere(where map[string]any) string {
	if len(where) == 0 {
		return "(all rows)"
	}
	parts := make([]string, 0, len(where))
	for _, key := range slices.Sorted(maps.Keys(where)) {
		v, err := value.FromAny(where[key])
		if err != nil {
			parts = append(parts, fmt.Sprintf("%s = %v", key, where[key]))
			continue
		}
		parts = append(parts, key+" = "+value.Format(v))
	}
	return strings.Join(parts, " AND ")
}

// AssertionContext provides database access for final_state assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: final_state requires database context", i)
			} else {
				err = assertFinalState(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
