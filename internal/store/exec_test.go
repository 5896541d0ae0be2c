package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stmtir/internal/builder"
	"github.com/roach88/stmtir/internal/querysql"
	"github.com/roach88/stmtir/internal/value"
)

const personSchema = `
CREATE TABLE person (
	id         INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	age        INTEGER,
	created_at DATETIME
);
INSERT INTO person (id, first_name, age) VALUES (1, 'Jennifer', 40), (2, 'Arnold', 70);
`

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := openFile(t, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, s.ExecScript(context.Background(), personSchema))
	return s
}

func mustCompile(t *testing.T, compile func() (*querysql.CompiledQuery, error)) *querysql.CompiledQuery {
	t.Helper()
	q, err := compile()
	require.NoError(t, err)
	return q
}

func TestRun_Select(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	q := mustCompile(t, builder.SelectFrom("person").
		Select("id", "first_name").
		Where("age", ">", 50).
		Compile)

	res, err := s.Run(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "first_name"}, res.Columns)
	assert.Equal(t, []Row{{"id": value.Int(2), "first_name": value.String("Arnold")}}, res.Rows)
	assert.Equal(t, int64(0), res.RowsAffected)
	assert.Equal(t, int64(1), res.Seq)
}

func TestRun_SelectNoRowsIsEmptySlice(t *testing.T) {
	s := seededStore(t)

	q := mustCompile(t, builder.SelectFrom("person").Where("age", ">", 100).Compile)

	rows, err := s.Query(context.Background(), q)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRun_UpdateReturning(t *testing.T) {
	s := seededStore(t)

	q := mustCompile(t, builder.UpdateTable("person").
		Set("age", 41).
		Where("first_name", "=", "Jennifer").
		Returning("id", "age").
		Compile)

	res, err := s.Run(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, []Row{{"id": value.Int(1), "age": value.Int(41)}}, res.Rows)
	assert.Equal(t, int64(1), res.RowsAffected)
}

func TestExec_DeleteCountsRows(t *testing.T) {
	s := seededStore(t)

	q := mustCompile(t, builder.DeleteFrom("person").Where("age", ">=", 0).Compile)

	n, err := s.Exec(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestQuery_RejectsStatementsWithoutRows(t *testing.T) {
	s := seededStore(t)

	q := mustCompile(t, builder.DeleteFrom("person").Compile)

	_, err := s.Query(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yields no rows")
}

func TestRun_NullAndTimestamps(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx, "UPDATE person SET created_at = ? WHERE id = 1",
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	q := mustCompile(t, builder.SelectFrom("person").
		Select("created_at").
		OrderBy("id", "asc").
		Compile)

	rows, err := s.Query(ctx, q)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, value.String("2024-01-02T03:04:05Z"), rows[0]["created_at"])
	assert.Equal(t, value.Null{}, rows[1]["created_at"])
}

func TestRun_FailedStatementIsNotJournaled(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	q := mustCompile(t, builder.InsertInto("person").
		Columns("id", "first_name").
		Values(1, "Duplicate").
		Compile)

	_, err := s.Run(ctx, q)
	require.Error(t, err)

	entries, err := s.Journal(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM person").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestJournal_RecordsStatementsInOrder(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	insert := mustCompile(t, builder.InsertInto("person").
		Columns("first_name", "age").
		Values("Linda", nil).
		Compile)
	sel := mustCompile(t, builder.SelectFrom("person").Where("first_name", "=", "Linda").Compile)

	_, err := s.Run(ctx, insert)
	require.NoError(t, err)
	_, err = s.Run(ctx, sel)
	require.NoError(t, err)
	_, err = s.Run(ctx, sel)
	require.NoError(t, err)

	entries, err := s.Journal(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, "insert", entries[0].Kind)
	assert.Equal(t, insert.SQL, entries[0].SQL)
	assert.Equal(t, []value.Value{value.String("Linda"), value.Null{}}, entries[0].Parameters)
	assert.Equal(t, int64(1), entries[0].RowsAffected)

	assert.Equal(t, int64(3), entries[2].Seq)
	assert.Equal(t, int64(1), entries[2].RowsReturned)

	selID, err := sel.ID()
	require.NoError(t, err)
	history, err := s.History(ctx, selID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestJournal_ParametersRoundTripExactly(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	composed := mustCompile(t, builder.SelectFrom("person").Where("first_name", "=", "\u00e9").Compile)
	decomposed := mustCompile(t, builder.SelectFrom("person").Where("first_name", "=", "e\u0301").Compile)

	_, err := s.Run(ctx, decomposed)
	require.NoError(t, err)

	entries, err := s.Journal(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, decomposed.Parameters, entries[0].Parameters)
	assert.Len(t, string(entries[0].Parameters[0].(value.String)), 3)

	composedID, err := composed.ID()
	require.NoError(t, err)
	history, err := s.History(ctx, composedID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestJournal_SeqResumesAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.ExecScript(ctx, personSchema))
	q := mustCompile(t, builder.SelectFrom("person").Compile)
	_, err = s1.Run(ctx, q)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	res, err := s2.Run(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Seq)

	last, err := s2.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), last)
}
