package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/stmtir/internal/value"
)

// JournalEntry is one executed statement.
type JournalEntry struct {
	Seq          int64
	QueryID      string
	Kind         string
	SQL          string
	Parameters   []value.Value
	RowsAffected int64
	RowsReturned int64
}

// Journal returns every journaled statement in execution order.
// Returns an empty slice (not nil) if nothing has run.
func (s *Store) Journal(ctx context.Context) ([]JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, query_id, kind, sql, parameters, rows_affected, rows_returned
		FROM stmtir_journal
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	return scanJournal(rows)
}

// History returns the journal entries for one query ID in execution order.
func (s *Store) History(ctx context.Context, queryID string) ([]JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, query_id, kind, sql, parameters, rows_affected, rows_returned
		FROM stmtir_journal
		WHERE query_id = ?
		ORDER BY seq ASC
	`, queryID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return scanJournal(rows)
}

// LastSeq returns the highest journaled sequence number, or 0.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) FROM stmtir_journal").Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq, nil
}

func scanJournal(rows *sql.Rows) ([]JournalEntry, error) {
	defer rows.Close()

	entries := []JournalEntry{}
	for rows.Next() {
		var (
			e      JournalEntry
			params string
		)
		if err := rows.Scan(&e.Seq, &e.QueryID, &e.Kind, &e.SQL, &params, &e.RowsAffected, &e.RowsReturned); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		var err error
		e.Parameters, err = unmarshalParameters(params)
		if err != nil {
			return nil, fmt.Errorf("journal entry %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// marshalParameters stores parameters as canonical JSON.
func marshalParameters(params []value.Value) (string, error) {
	if params == nil {
		params = []value.Value{}
	}
	data, err := value.MarshalCanonical(params)
	if err != nil {
		return "", fmt.Errorf("marshal parameters: %w", err)
	}
	return string(data), nil
}

func unmarshalParameters(data string) ([]value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal parameters: %w", err)
	}

	out := make([]value.Value, len(raw))
	for i, r := range raw {
		v, err := value.FromAny(r)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
