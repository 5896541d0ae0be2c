package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/stmtir/internal/querysql"
	"github.com/roach88/stmtir/internal/store"
	"github.com/roach88/stmtir/internal/testutil"
	"github.com/roach88/stmtir/internal/value"
)

// Harness is the scenario execution engine.
// Trace sequence numbers come from a deterministic clock, so the same
// scenario always produces the same trace.
type Harness struct {
	store  *store.Store // nil for compile_only scenarios
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, and
// logs are discarded. Scenarios marked compile_only never open a database.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Run the setup SQL
// 3. Build, compile and execute each step, checking its expectations
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if scenario.CompileOnly {
		return newHarness(nil, logger).run(ctx, scenario)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	return newHarness(st, logger).run(ctx, scenario)
}

// RunWithStore executes a scenario against an existing store, logging
// through the default slog logger. The setup SQL runs against st, so it
// should be idempotent when st is reused.
func RunWithStore(ctx context.Context, st *store.Store, scenario *Scenario) (*Result, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	return newHarness(st, slog.Default()).run(ctx, scenario)
}

func newHarness(st *store.Store, logger *slog.Logger) *Harness {
	return &Harness{
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		logger: logger,
	}
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	h.logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))

	if h.store != nil && scenario.Setup != "" {
		if err := h.store.ExecScript(ctx, scenario.Setup); err != nil {
			return nil, fmt.Errorf("failed to execute setup: %w", err)
		}
	}

	result := NewResult()
	for _, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.runStep(ctx, step, result)
	}

	actx := &AssertionContext{
		Store: h.store,
		Ctx:   ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario finished", "name", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

// runStep builds, compiles and executes one step, recording trace events
// and any expectation mismatch on result.
func (h *Harness) runStep(ctx context.Context, step Step, result *Result) {
	expect := step.Expect
	if expect == nil {
		expect = &Expect{}
	}

	compiled, err := step.Statement.Build()
	if err != nil {
		h.fail(result, step.Name, expect, err)
		return
	}
	queryID, err := compiled.ID()
	if err != nil {
		h.fail(result, step.Name, expect, err)
		return
	}

	result.AddStatementTrace(step.Name, compiled.Kind.Statement(), compiled.SQL, compiled.Parameters, queryID, h.clock.Next())
	h.logger.Debug("statement compiled", "step", step.Name, "sql", compiled.SQL, "query_id", queryID)

	checkCompiled(result, step.Name, expect, compiled)

	if h.store == nil {
		if expect.Error != "" {
			result.AddError(fmt.Sprintf("step %s: expected error containing %q, but it compiled", step.Name, expect.Error))
		}
		return
	}

	res, err := h.store.Run(ctx, compiled)
	if err != nil {
		h.fail(result, step.Name, expect, err)
		return
	}

	var rows []map[string]value.Value
	if compiled.ReturnsRows {
		rows = make([]map[string]value.Value, len(res.Rows))
		for i, r := range res.Rows {
			rows[i] = map[string]value.Value(r)
		}
	}
	result.AddResultTrace(step.Name, rows, res.RowsAffected, h.clock.Next())

	if expect.Error != "" {
		result.AddError(fmt.Sprintf("step %s: expected error containing %q, but it succeeded", step.Name, expect.Error))
		return
	}
	checkExecuted(result, step.Name, expect, rows, res.RowsAffected)
}

// fail records an error event and checks it against the expected error.
func (h *Harness) fail(result *Result, step string, expect *Expect, err error) {
	result.AddErrorTrace(step, err.Error(), h.clock.Next())
	h.logger.Debug("step failed", "step", step, "error", err)

	switch {
	case expect.Error == "":
		result.AddError(fmt.Sprintf("step %s: %v", step, err))
	case !strings.Contains(err.Error(), expect.Error):
		result.AddError(fmt.Sprintf("step %s: expected error containing %q, got %q", step, expect.Error, err.Error()))
	}
}

func checkCompiled(result *Result, step string, expect *Expect, compiled *querysql.CompiledQuery) {
	if expect.SQL != "" && expect.SQL != compiled.SQL {
		result.AddError(fmt.Sprintf("step %s: sql mismatch\n  expected: %s\n  actual:   %s", step, expect.SQL, compiled.SQL))
	}
	if expect.Params == nil {
		return
	}

	want, err := toValues(expect.Params)
	if err != nil {
		result.AddError(fmt.Sprintf("step %s: expected params: %v", step, err))
		return
	}
	if !slices.EqualFunc(want, compiled.Parameters, value.Equal) {
		result.AddError(fmt.Sprintf("step %s: params mismatch\n  expected: %s\n  actual:   %s",
			step, formatValues(want), formatValues(compiled.Parameters)))
	}
}

func checkExecuted(result *Result, step string, expect *Expect, rows []map[string]value.Value, affected int64) {
	if expect.RowsAffected != nil && *expect.RowsAffected != affected {
		result.AddError(fmt.Sprintf("step %s: expected %d rows affected, got %d", step, *expect.RowsAffected, affected))
	}
	if expect.Rows == nil {
		return
	}

	if len(expect.Rows) != len(rows) {
		result.AddError(fmt.Sprintf("step %s: expected %d rows, got %d", step, len(expect.Rows), len(rows)))
		return
	}
	for i, raw := range expect.Rows {
		want, err := toRow(raw)
		if err != nil {
			result.AddError(fmt.Sprintf("step %s: expected rows[%d]: %v", step, i, err))
			return
		}
		if !maps.EqualFunc(want, rows[i], value.Equal) {
			result.AddError(fmt.Sprintf("step %s: rows[%d] mismatch\n  expected: %s\n  actual:   %s",
				step, i, formatRow(want), formatRow(rows[i])))
		}
	}
}

func toValues(raw []any) ([]value.Value, error) {
	out := make([]value.Value, len(raw))
	for i, r := range raw {
		v, err := value.FromAny(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func toRow(raw map[string]any) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(raw))
	for k, r := range raw {
		v, err := value.FromAny(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

func formatValues(vs []value.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = value.Format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatRow(row map[string]value.Value) string {
	keys := slices.Sorted(maps.Keys(row))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + value.Format(row[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
