package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
	"github.com/roach88/stmtir/internal/value"
)

// Row maps column names to values.
type Row map[string]value.Value

// Result is the outcome of running one compiled statement.
type Result struct {
	QueryID      string
	Seq          int64 // journal position
	Columns      []string
	Rows         []Row
	RowsAffected int64
}

// Run executes q and journals it in a single transaction.
//
// Selects and statements with a returning clause are run as queries and
// their rows collected; RowsAffected is then the number of rows returned
// for mutating statements. Everything else is run with Exec.
func (s *Store) Run(ctx context.Context, q *querysql.CompiledQuery) (*Result, error) {
	queryID, err := q.ID()
	if err != nil {
		return nil, err
	}
	params, err := marshalParameters(q.Parameters)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result := &Result{QueryID: queryID}
	if q.ReturnsRows {
		rows, err := tx.QueryContext(ctx, q.SQL, q.Args()...)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", queryID[:12], err)
		}
		result.Columns, result.Rows, err = scanRows(rows)
		if err != nil {
			return nil, err
		}
		if q.Kind != node.KindSelectQuery {
			result.RowsAffected = int64(len(result.Rows))
		}
	} else {
		res, err := tx.ExecContext(ctx, q.SQL, q.Args()...)
		if err != nil {
			return nil, fmt.Errorf("exec %s: %w", queryID[:12], err)
		}
		result.RowsAffected, err = res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("rows affected: %w", err)
		}
	}

	result.Seq = s.clock.Next()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO stmtir_journal (seq, query_id, kind, sql, parameters, rows_affected, rows_returned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.Seq, queryID, q.Kind.Statement(), q.SQL, params, result.RowsAffected, len(result.Rows))
	if err != nil {
		return nil, fmt.Errorf("journal statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	slog.Debug("statement executed",
		"seq", result.Seq,
		"query_id", queryID,
		"kind", q.Kind.Statement(),
		"rows_affected", result.RowsAffected,
		"rows_returned", len(result.Rows))

	return result, nil
}

// Query runs q and returns its rows.
func (s *Store) Query(ctx context.Context, q *querysql.CompiledQuery) ([]Row, error) {
	if !q.ReturnsRows {
		return nil, fmt.Errorf("%s without returning clause yields no rows", q.Kind.Statement())
	}
	res, err := s.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Exec runs q and returns the number of rows it changed.
func (s *Store) Exec(ctx context.Context, q *querysql.CompiledQuery) (int64, error) {
	res, err := s.Run(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// scanRows collects rows into Row maps and closes them.
// Returns an empty slice (not nil) when no rows match.
func scanRows(rows *sql.Rows) ([]string, []Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns: %w", err)
	}

	out := []Row{}
	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			v, err := fromDriver(raw[i])
			if err != nil {
				return nil, nil, fmt.Errorf("column %s: %w", col, err)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate rows: %w", err)
	}

	return columns, out, nil
}

// fromDriver converts a go-sqlite3 column value. Timestamp columns come
// back as time.Time and are rendered as RFC 3339 text.
func fromDriver(v any) (value.Value, error) {
	if t, ok := v.(time.Time); ok {
		return value.String(t.UTC().Format(time.RFC3339Nano)), nil
	}
	return value.FromAny(v)
}
