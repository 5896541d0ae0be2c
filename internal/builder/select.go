package builder

import (
	"fmt"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
	"github.com/roach88/stmtir/internal/value"
)

// SelectBuilder builds a select statement.
type SelectBuilder struct {
	node *node.SelectQueryNode
	err  error
}

// SelectFrom starts a select over one or more tables.
func SelectFrom(tables ...string) SelectBuilder {
	from := make([]*node.TableNode, 0, len(tables))
	for _, name := range tables {
		t, err := parseTable(name)
		if err != nil {
			return SelectBuilder{node: node.CreateSelectQuery(), err: err}
		}
		from = append(from, t)
	}
	return SelectBuilder{node: node.CreateSelectQuery(from...)}
}

func (b SelectBuilder) apply(f func(*node.SelectQueryNode) (*node.SelectQueryNode, error)) SelectBuilder {
	if b.err != nil {
		return b
	}
	n, err := f(b.node)
	if err != nil {
		return SelectBuilder{node: b.node, err: err}
	}
	return SelectBuilder{node: n}
}

// Select adds selections such as "id", "p.first_name as name" or "pet.*".
func (b SelectBuilder) Select(refs ...string) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		selections, err := parseSelections(refs)
		if err != nil {
			return nil, err
		}
		return n.WithSelections(selections...), nil
	})
}

// Distinct marks the select as distinct.
func (b SelectBuilder) Distinct() SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		return n.WithDistinct(), nil
	})
}

// Where adds `lhs operator rhs` combined with and.
func (b SelectBuilder) Where(lhs, operator string, rhs any) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		return addWhere(n, node.And, lhs, operator, rhs)
	})
}

// OrWhere adds `lhs operator rhs` combined with or.
func (b SelectBuilder) OrWhere(lhs, operator string, rhs any) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		return addWhere(n, node.Or, lhs, operator, rhs)
	})
}

// WhereExpr adds a prebuilt predicate combined with op.
func (b SelectBuilder) WhereExpr(op node.BoolOp, pred node.Predicate) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		return addPredicate(n, op, pred)
	})
}

// InnerJoin joins table on `left = right`.
func (b SelectBuilder) InnerJoin(table, left, right string) SelectBuilder {
	return b.Join(node.InnerJoin, table, left, right)
}

// LeftJoin left joins table on `left = right`.
func (b SelectBuilder) LeftJoin(table, left, right string) SelectBuilder {
	return b.Join(node.LeftJoin, table, left, right)
}

// CrossJoin joins table without a condition.
func (b SelectBuilder) CrossJoin(table string) SelectBuilder {
	return b.Join(node.CrossJoin, table, "", "")
}

// Join appends a join of any type.
func (b SelectBuilder) Join(joinType node.JoinType, table, left, right string) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		return addJoin(n, joinType, table, left, right)
	})
}

// OrderBy adds an order by item. direction is "asc", "desc" or empty.
func (b SelectBuilder) OrderBy(ref, direction string) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		r, err := parseReference(ref)
		if err != nil {
			return nil, err
		}
		dir := node.Direction(direction)
		switch dir {
		case "", node.Asc, node.Desc:
		default:
			return nil, fmt.Errorf("invalid order direction %q", direction)
		}
		return n.WithOrderByItems(node.CreateOrderByItem(r, dir)), nil
	})
}

// Limit caps the number of rows.
func (b SelectBuilder) Limit(limit int64) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		if limit < 0 {
			return nil, fmt.Errorf("negative limit %d", limit)
		}
		return n.WithLimit(node.CreateValue(value.Int(limit))), nil
	})
}

// Offset skips rows.
func (b SelectBuilder) Offset(offset int64) SelectBuilder {
	return b.apply(func(n *node.SelectQueryNode) (*node.SelectQueryNode, error) {
		if offset < 0 {
			return nil, fmt.Errorf("negative offset %d", offset)
		}
		return n.WithOffset(node.CreateValue(value.Int(offset))), nil
	})
}

// ToNode returns the built statement or the first error recorded.
func (b SelectBuilder) ToNode() (*node.SelectQueryNode, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}

// Compile renders the statement to SQL.
func (b SelectBuilder) Compile() (*querysql.CompiledQuery, error) {
	return compile(b.node, b.err)
}
