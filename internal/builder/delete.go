package builder

import (
	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
)

// DeleteBuilder builds a delete statement.
type DeleteBuilder struct {
	node *node.DeleteQueryNode
	err  error
}

// DeleteFrom starts a delete from table.
func DeleteFrom(table string) DeleteBuilder {
	t, err := parseTable(table)
	if err != nil {
		return DeleteBuilder{node: node.CreateDeleteQuery(nil), err: err}
	}
	return DeleteBuilder{node: node.CreateDeleteQuery(t)}
}

func (b DeleteBuilder) apply(f func(*node.DeleteQueryNode) (*node.DeleteQueryNode, error)) DeleteBuilder {
	if b.err != nil {
		return b
	}
	n, err := f(b.node)
	if err != nil {
		return DeleteBuilder{node: b.node, err: err}
	}
	return DeleteBuilder{node: n}
}

// Where adds `lhs operator rhs` combined with and.
func (b DeleteBuilder) Where(lhs, operator string, rhs any) DeleteBuilder {
	return b.apply(func(n *node.DeleteQueryNode) (*node.DeleteQueryNode, error) {
		return addWhere(n, node.And, lhs, operator, rhs)
	})
}

// OrWhere adds `lhs operator rhs` combined with or.
func (b DeleteBuilder) OrWhere(lhs, operator string, rhs any) DeleteBuilder {
	return b.apply(func(n *node.DeleteQueryNode) (*node.DeleteQueryNode, error) {
		return addWhere(n, node.Or, lhs, operator, rhs)
	})
}

// WhereExpr adds a prebuilt predicate combined with op.
func (b DeleteBuilder) WhereExpr(op node.BoolOp, pred node.Predicate) DeleteBuilder {
	return b.apply(func(n *node.DeleteQueryNode) (*node.DeleteQueryNode, error) {
		return addPredicate(n, op, pred)
	})
}

// Join appends a join. The node accepts it; the SQLite compiler rejects
// joins on delete.
func (b DeleteBuilder) Join(joinType node.JoinType, table, left, right string) DeleteBuilder {
	return b.apply(func(n *node.DeleteQueryNode) (*node.DeleteQueryNode, error) {
		return addJoin(n, joinType, table, left, right)
	})
}

// Returning adds returned selections. With no refs it returns every column.
func (b DeleteBuilder) Returning(refs ...string) DeleteBuilder {
	return b.apply(func(n *node.DeleteQueryNode) (*node.DeleteQueryNode, error) {
		return addReturning(n, refs)
	})
}

// ToNode returns the built statement or the first error recorded.
func (b DeleteBuilder) ToNode() (*node.DeleteQueryNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}

// Compile renders the statement to SQL.
func (b DeleteBuilder) Compile() (*querysql.CompiledQuery, error) {
	return compile(b.node, b.err)
}
