package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Scenario defines a statement scenario.
// Scenarios build statements from declarative step definitions, compile
// them, optionally execute them, and assert on the resulting trace and
// final table state.
//
// Struct tags carry both yaml and json names: YAML files are decoded with
// yaml.v3 and CUE files through cue.Value.Decode, which reads json tags.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Setup is raw SQL run before the first step (schema and fixtures).
	Setup string `yaml:"setup,omitempty" json:"setup,omitempty"`

	// CompileOnly skips execution. Steps are compiled and checked against
	// their expected SQL and parameters only.
	CompileOnly bool `yaml:"compile_only,omitempty" json:"compile_only,omitempty"`

	// Steps are built, compiled and run in order.
	Steps []Step `yaml:"steps" json:"steps"`

	// Assertions validate the final trace and state.
	// Supported types: trace_contains, trace_order, trace_count, final_state
	Assertions []Assertion `yaml:"assertions,omitempty" json:"assertions,omitempty"`
}

// Step is one statement with its expectations.
type Step struct {
	Name      string        `yaml:"name" json:"name"`
	Statement StatementSpec `yaml:"statement" json:"statement"`

	// Expect is optional. Without it the step only has to build and run.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect specifies the expected compilation and execution outcome.
type Expect struct {
	// SQL is the exact rendered SQL.
	SQL string `yaml:"sql,omitempty" json:"sql,omitempty"`

	// Params are the bound parameters in placeholder order.
	// Nil means parameters are not checked.
	Params []any `yaml:"params,omitempty" json:"params,omitempty"`

	// Rows are the exact returned rows. Nil means rows are not checked;
	// an empty list requires no rows.
	Rows []map[string]any `yaml:"rows,omitempty" json:"rows,omitempty"`

	// RowsAffected is the number of rows changed by a mutating statement.
	RowsAffected *int64 `yaml:"rows_affected,omitempty" json:"rows_affected,omitempty"`

	// Error is a substring of the expected build, compile or execution
	// error. When set, the step must fail.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": a statement of Kind whose SQL contains SQL
	// - "trace_order": the named steps ran in this order
	// - "trace_count": exactly Count statements of Kind ran
	// - "final_state": query Table and verify expected values
	Type string `yaml:"type" json:"type"`

	// Kind is a statement kind: select, insert, update or delete
	// (used by trace_contains and trace_count).
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// SQL is a substring the rendered SQL must contain (used by trace_contains).
	SQL string `yaml:"sql,omitempty" json:"sql,omitempty"`

	// Steps is the expected step order (used by trace_order).
	Steps []string `yaml:"steps,omitempty" json:"steps,omitempty"`

	// Count is the expected number of statements (used by trace_count).
	Count int `yaml:"count,omitempty" json:"count,omitempty"`

	// Table is the table to query (used by final_state).
	Table string `yaml:"table,omitempty" json:"table,omitempty"`

	// Where specifies equality filters (used by final_state).
	Where map[string]any `yaml:"where,omitempty" json:"where,omitempty"`

	// Expect contains expected column values of the single matching row
	// (used by final_state). Subset match - only listed columns are checked.
	Expect map[string]any `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario file. Files ending in .cue are
// evaluated with CUE; everything else is parsed as YAML.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		scenario, err = parseCUE(path, data)
	} else {
		scenario, err = ParseScenario(data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// parseCUE evaluates a single CUE file and decodes it into a Scenario.
// The file must be concrete; CUE constraints and defaults are resolved
// before decoding.
func parseCUE(path string, data []byte) (*Scenario, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE scenario is not concrete: %w", err)
	}

	var scenario Scenario
	if err := v.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required", i)
		}
		if names[step.Name] {
			return fmt.Errorf("steps[%d]: duplicate step name %q", i, step.Name)
		}
		names[step.Name] = true

		if err := step.Statement.validate(); err != nil {
			return fmt.Errorf("steps[%d] (%s): %w", i, step.Name, err)
		}
		if s.CompileOnly && step.Expect != nil && (step.Expect.Rows != nil || step.Expect.RowsAffected != nil) {
			return fmt.Errorf("steps[%d] (%s): rows and rows_affected need execution, scenario is compile_only", i, step.Name)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], names, s.CompileOnly); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps map[string]bool, compileOnly bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if _, err := parseKind(a.Kind); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertTraceOrder:
		if len(a.Steps) == 0 {
			return fmt.Errorf("assertions[%d]: steps list is required for trace_order", index)
		}
		for _, name := range a.Steps {
			if !steps[name] {
				return fmt.Errorf("assertions[%d]: unknown step %q", index, name)
			}
		}
	case AssertTraceCount:
		if _, err := parseKind(a.Kind); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if compileOnly {
			return fmt.Errorf("assertions[%d]: final_state needs execution, scenario is compile_only", index)
		}
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
