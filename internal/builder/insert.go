package builder

import (
	"fmt"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
)

// InsertBuilder builds an insert statement.
type InsertBuilder struct {
	node *node.InsertQueryNode
	err  error
}

// InsertInto starts an insert into table.
func InsertInto(table string) InsertBuilder {
	t, err := parseTable(table)
	if err != nil {
		return InsertBuilder{node: node.CreateInsertQuery(nil), err: err}
	}
	return InsertBuilder{node: node.CreateInsertQuery(t)}
}

func (b InsertBuilder) apply(f func(*node.InsertQueryNode) (*node.InsertQueryNode, error)) InsertBuilder {
	if b.err != nil {
		return b
	}
	n, err := f(b.node)
	if err != nil {
		return InsertBuilder{node: b.node, err: err}
	}
	return InsertBuilder{node: n}
}

// Columns sets the target columns, replacing any set earlier.
func (b InsertBuilder) Columns(columns ...string) InsertBuilder {
	return b.apply(func(n *node.InsertQueryNode) (*node.InsertQueryNode, error) {
		cols := make([]*node.ColumnNode, 0, len(columns))
		for _, c := range columns {
			if c == "" {
				return nil, fmt.Errorf("empty column name")
			}
			cols = append(cols, node.CreateColumn(c))
		}
		return n.WithColumns(cols...), nil
	})
}

// Values appends one row.
func (b InsertBuilder) Values(values ...any) InsertBuilder {
	return b.apply(func(n *node.InsertQueryNode) (*node.InsertQueryNode, error) {
		row := make([]node.Operand, 0, len(values))
		for i, v := range values {
			operand, err := toOperand(v)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			row = append(row, operand)
		}
		return n.WithValues(node.CreateValueList(row...)), nil
	})
}

// OnConflictDoNothing skips rows that violate a constraint.
func (b InsertBuilder) OnConflictDoNothing() InsertBuilder {
	return b.apply(func(n *node.InsertQueryNode) (*node.InsertQueryNode, error) {
		return n.WithOnConflictDoNothing(), nil
	})
}

// Returning adds returned selections. With no refs it returns every column.
func (b InsertBuilder) Returning(refs ...string) InsertBuilder {
	return b.apply(func(n *node.InsertQueryNode) (*node.InsertQueryNode, error) {
		return addReturning(n, refs)
	})
}

// ToNode returns the built statement or the first error recorded.
func (b InsertBuilder) ToNode() (*node.InsertQueryNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}

// Compile renders the statement to SQL.
func (b InsertBuilder) Compile() (*querysql.CompiledQuery, error) {
	return compile(b.node, b.err)
}
