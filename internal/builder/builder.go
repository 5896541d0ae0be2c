package builder

import (
	"fmt"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
)

var compiler = querysql.NewCompiler()

func addWhere[T node.Filterable[T]](n T, op node.BoolOp, lhs, operator string, rhs any) (T, error) {
	if !op.Valid() {
		return n, fmt.Errorf("invalid boolean operator %q", op)
	}
	pred, err := comparison(lhs, operator, rhs)
	if err != nil {
		return n, err
	}
	return node.CloneWithWhere(n, op, pred), nil
}

func addPredicate[T node.Filterable[T]](n T, op node.BoolOp, pred node.Predicate) (T, error) {
	if !op.Valid() {
		return n, fmt.Errorf("invalid boolean operator %q", op)
	}
	if pred == nil {
		return n, fmt.Errorf("nil predicate")
	}
	return node.CloneWithWhere(n, op, pred), nil
}

// addJoin appends a join on `left = right`. Empty left and right produce a
// join without a condition.
func addJoin[T node.Filterable[T]](n T, joinType node.JoinType, table, left, right string) (T, error) {
	t, err := parseTable(table)
	if err != nil {
		return n, err
	}
	if left == "" && right == "" {
		return node.CloneWithJoin(n, node.CreateJoin(joinType, t)), nil
	}

	l, err := parseReference(left)
	if err != nil {
		return n, fmt.Errorf("join %s: %w", table, err)
	}
	r, err := parseReference(right)
	if err != nil {
		return n, fmt.Errorf("join %s: %w", table, err)
	}
	on := node.CreateBinaryOperation(l, node.OpEqual, r)
	return node.CloneWithJoin(n, node.CreateJoinWithOn(joinType, t, on)), nil
}

func addReturning[T node.Mutating[T]](n T, refs []string) (T, error) {
	selections, err := parseSelections(refs)
	if err != nil {
		return n, err
	}
	return node.CloneWithReturning(n, selections...), nil
}

func compile(q node.Query, err error) (*querysql.CompiledQuery, error) {
	if err != nil {
		return nil, err
	}
	return compiler.Compile(q)
}
