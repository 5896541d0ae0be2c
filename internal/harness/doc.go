// Package harness runs declarative statement scenarios.
//
// A scenario lists steps that each declare one statement. The harness
// builds every statement with the builder package, compiles it to SQLite,
// executes it against a fresh database, and checks the rendered SQL,
// bound parameters, returned rows and affected row counts. Assertions then
// run against the recorded trace and the final table state.
//
// # Scenario Format
//
// Scenarios are YAML files (or CUE files with the same fields):
//
//	name: scenario_name
//	description: "What this scenario validates"
//	setup: |
//	  CREATE TABLE person (id INTEGER PRIMARY KEY, first_name TEXT);
//	steps:
//	  - name: rename
//	    statement:
//	      kind: update
//	      table: person
//	      set:
//	        - { column: first_name, value: "Jen" }
//	      where:
//	        - { ref: id, op: "=", value: 1 }
//	      returning: [id]
//	    expect:
//	      sql: 'UPDATE "person" SET "first_name" = ? WHERE "id" = ? RETURNING "id"'
//	      params: ["Jen", 1]
//	      rows_affected: 1
//	assertions:
//	  - type: trace_contains
//	    kind: update
//	    sql: 'SET "first_name"'
//	  - type: final_state
//	    table: person
//	    where: { id: 1 }
//	    expect: { first_name: "Jen" }
//
// Clauses are checked against the statement kind when the scenario loads:
// where and joins need a filterable statement (select, update, delete) and
// returning needs a mutating one (insert, update, delete).
//
// Scenarios with compile_only set never touch a database.
//
// # Assertion Types
//
//   - trace_contains: a statement of the given kind whose SQL contains a substring
//   - trace_order: steps compiled in the given order
//   - trace_count: exactly N statements of a kind
//   - final_state: exactly one row matches and holds the expected values
//
// # Deterministic Testing
//
// Trace sequence numbers come from testutil.DeterministicClock and query
// IDs are content hashes, so a scenario always produces the same trace.
// RunWithGolden compares that trace against testdata/golden.
package harness
