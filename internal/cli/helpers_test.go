package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/stmtir/internal/testutil"
)

const personScenario = `
name: person
description: "insert and read back people"
setup: |
  CREATE TABLE IF NOT EXISTS person (id INTEGER PRIMARY KEY, first_name TEXT, age INTEGER);
steps:
  - name: add
    statement:
      kind: insert
      table: person
      columns: [first_name, age]
      values:
        - ["Jennifer", 40]
      returning: [id]
    expect:
      sql: 'INSERT INTO "person" ("first_name", "age") VALUES (?, ?) RETURNING "id"'
      params: ["Jennifer", 40]
      rows_affected: 1
  - name: find
    statement:
      kind: select
      table: person
      select: [first_name]
      where:
        - { ref: age, op: ">=", value: 18 }
assertions:
  - type: trace_count
    kind: insert
    count: 1
`

const failingScenario = `
name: failing
description: "expects the wrong sql"
compile_only: true
steps:
  - name: find
    statement: { kind: select, table: person }
    expect:
      sql: 'SELECT * FROM person'
`

const brokenStatementScenario = `
name: broken
description: "uses an operator that does not exist"
compile_only: true
steps:
  - name: find
    statement:
      kind: select
      table: person
      where:
        - { ref: age, op: "==", value: 18 }
`

// writeFile writes content under dir and returns the path.
const deleteJoinScenario = `
name: delete_join
description: "sqlite cannot delete through a join"
compile_only: true
steps:
  - name: purge
    statement:
      kind: delete
      table: person
      joins:
        - { table: pet, left: pet.owner_id, right: person.id }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// executeCommand runs the root command with a fixed trace ID generator and
// returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommandWithIDs(testutil.NewFixedIDGenerator("trace-1"))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}
