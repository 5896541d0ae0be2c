package node

import (
	"fmt"
	"strings"
)

// JoinType is the type of a join clause.
type JoinType string

const (
	InnerJoin JoinType = "inner join"
	LeftJoin  JoinType = "left join"
	RightJoin JoinType = "right join"
	FullJoin  JoinType = "full join"
	CrossJoin JoinType = "cross join"
)

// ParseJoinType validates join type text. "inner", "left", "right", "full"
// and "cross" are accepted with or without the trailing "join".
func ParseJoinType(s string) (JoinType, error) {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), " join")
	switch normalized {
	case "", "inner":
		return InnerJoin, nil
	case "left":
		return LeftJoin, nil
	case "right":
		return RightJoin, nil
	case "full":
		return FullJoin, nil
	case "cross":
		return CrossJoin, nil
	default:
		return "", fmt.Errorf("unsupported join type: %q", s)
	}
}

// JoinNode is a single join clause. The order of joins on a query is the
// order they are rendered in.
type JoinNode struct {
	joinType JoinType
	table    *TableNode
	on       *OnNode
}

// CreateJoin creates a join without a condition.
func CreateJoin(joinType JoinType, table *TableNode) *JoinNode {
	return &JoinNode{joinType: joinType, table: table}
}

// CreateJoinWithOn creates a join with a condition.
func CreateJoinWithOn(joinType JoinType, table *TableNode, on Predicate) *JoinNode {
	return &JoinNode{joinType: joinType, table: table, on: CreateOn(on)}
}

// CloneJoinWithOn returns a new join whose condition is combined with
// filter, or set to it when the join has no condition yet. Panics if op is
// not And or Or.
func CloneJoinWithOn(join *JoinNode, op BoolOp, filter Predicate) *JoinNode {
	op.mustValid()
	c := *join
	if join.on == nil {
		c.on = CreateOn(filter)
	} else {
		c.on = CloneOnWithFilter(join.on, op, filter)
	}
	return &c
}

func (*JoinNode) operationNode() {}

// Kind implements Node.
func (*JoinNode) Kind() Kind { return KindJoin }

// JoinType returns the join type.
func (n *JoinNode) JoinType() JoinType { return n.joinType }

// Table returns the joined table.
func (n *JoinNode) Table() *TableNode { return n.table }

// On returns the join condition, or nil.
func (n *JoinNode) On() *OnNode { return n.on }
