package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPersonScenario runs the person scenario into a fresh database file.
func runPersonScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, "person.yaml", personScenario)
	db := filepath.Join(dir, "stmtir.db")

	_, err := executeCommand(t, "run", "--db", db, path)
	require.NoError(t, err)
	return db
}

func TestJournalCommand_Text(t *testing.T) {
	db := runPersonScenario(t)

	out, err := executeCommand(t, "journal", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, out, `[1] insert INSERT INTO "person"`)
	assert.Contains(t, out, `params: ["Jennifer", 40]`)
	assert.Contains(t, out, `[2] select SELECT "first_name" FROM "person"`)
	assert.Contains(t, out, "2 statement(s), 1 row(s) affected, 2 row(s) returned")
}

func TestJournalCommand_JSON(t *testing.T) {
	db := runPersonScenario(t)

	out, err := executeCommand(t, "--format", "json", "journal", "--db", db)
	require.NoError(t, err)

	var resp struct {
		Status  string `json:"status"`
		TraceID string `json:"trace_id"`
		Data    struct {
			Entries []struct {
				Seq     int64  `json:"seq"`
				QueryID string `json:"query_id"`
				Kind    string `json:"kind"`
				Params  []any  `json:"params"`
			} `json:"entries"`
			Stats JournalStats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "trace-1", resp.TraceID)
	require.Len(t, resp.Data.Entries, 2)
	assert.Equal(t, []any{"Jennifer", float64(40)}, resp.Data.Entries[0].Params)
	assert.Equal(t, []any{float64(18)}, resp.Data.Entries[1].Params)
	assert.Equal(t, 2, resp.Data.Stats.Statements)
	assert.Equal(t, map[string]int{"insert": 1, "select": 1}, resp.Data.Stats.ByKind)
}

func TestJournalCommand_QueryID(t *testing.T) {
	db := runPersonScenario(t)

	out, err := executeCommand(t, "--format", "json", "journal", "--db", db)
	require.NoError(t, err)
	var ids struct {
		Data struct {
			Entries []struct {
				QueryID string `json:"query_id"`
			} `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	require.Len(t, ids.Data.Entries, 2)

	out, err = executeCommand(t, "journal", "--db", db, "--query-id", ids.Data.Entries[1].QueryID)
	require.NoError(t, err)
	assert.Contains(t, out, "select SELECT")
	assert.NotContains(t, out, "INSERT")

	out, err = executeCommand(t, "journal", "--db", db, "--query-id", "unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "No journal entries for query unknown")
}

func TestJournalCommand_MissingDatabase(t *testing.T) {
	_, err := executeCommand(t, "journal", "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
