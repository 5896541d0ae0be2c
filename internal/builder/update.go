package builder

import (
	"fmt"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
)

// UpdateBuilder builds an update statement.
type UpdateBuilder struct {
	node *node.UpdateQueryNode
	err  error
}

// UpdateTable starts an update of table.
func UpdateTable(table string) UpdateBuilder {
	t, err := parseTable(table)
	if err != nil {
		return UpdateBuilder{node: node.CreateUpdateQuery(nil), err: err}
	}
	return UpdateBuilder{node: node.CreateUpdateQuery(t)}
}

func (b UpdateBuilder) apply(f func(*node.UpdateQueryNode) (*node.UpdateQueryNode, error)) UpdateBuilder {
	if b.err != nil {
		return b
	}
	n, err := f(b.node)
	if err != nil {
		return UpdateBuilder{node: b.node, err: err}
	}
	return UpdateBuilder{node: n}
}

// Set assigns v to column. v may be a literal or a Ref.
func (b UpdateBuilder) Set(column string, v any) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		if column == "" {
			return nil, fmt.Errorf("empty column name")
		}
		operand, err := toOperand(v)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", column, err)
		}
		return n.WithUpdates(node.CreateColumnUpdate(column, operand)), nil
	})
}

// Where adds `lhs operator rhs` combined with and.
func (b UpdateBuilder) Where(lhs, operator string, rhs any) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		return addWhere(n, node.And, lhs, operator, rhs)
	})
}

// OrWhere adds `lhs operator rhs` combined with or.
func (b UpdateBuilder) OrWhere(lhs, operator string, rhs any) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		return addWhere(n, node.Or, lhs, operator, rhs)
	})
}

// WhereExpr adds a prebuilt predicate combined with op.
func (b UpdateBuilder) WhereExpr(op node.BoolOp, pred node.Predicate) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		return addPredicate(n, op, pred)
	})
}

// InnerJoin joins table on `left = right`.
func (b UpdateBuilder) InnerJoin(table, left, right string) UpdateBuilder {
	return b.Join(node.InnerJoin, table, left, right)
}

// LeftJoin left joins table on `left = right`.
func (b UpdateBuilder) LeftJoin(table, left, right string) UpdateBuilder {
	return b.Join(node.LeftJoin, table, left, right)
}

// Join appends a join of any type.
func (b UpdateBuilder) Join(joinType node.JoinType, table, left, right string) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		return addJoin(n, joinType, table, left, right)
	})
}

// Returning adds returned selections. With no refs it returns every column.
func (b UpdateBuilder) Returning(refs ...string) UpdateBuilder {
	return b.apply(func(n *node.UpdateQueryNode) (*node.UpdateQueryNode, error) {
		return addReturning(n, refs)
	})
}

// ToNode returns the built statement or the first error recorded.
func (b UpdateBuilder) ToNode() (*node.UpdateQueryNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}

// Compile renders the statement to SQL.
func (b UpdateBuilder) Compile() (*querysql.CompiledQuery, error) {
	return compile(b.node, b.err)
}
