package node

// WhereNode holds the filter of a filterable query.
type WhereNode struct {
	where Predicate
}

// CreateWhere creates a where clause from a single filter.
func CreateWhere(filter Predicate) *WhereNode {
	return &WhereNode{where: filter}
}

// CloneWhereWithFilter returns a new where clause combining the existing
// filter with the new one: (existing) <op> filter. The input is unchanged.
func CloneWhereWithFilter(existing *WhereNode, op BoolOp, filter Predicate) *WhereNode {
	return &WhereNode{where: combine(existing.where, op, filter)}
}

func (*WhereNode) operationNode() {}

// Kind implements Node.
func (*WhereNode) Kind() Kind { return KindWhere }

// Where returns the filter predicate.
func (n *WhereNode) Where() Predicate { return n.where }

// OnNode holds the join condition of a join.
type OnNode struct {
	on Predicate
}

// CreateOn creates a join condition from a single predicate.
func CreateOn(filter Predicate) *OnNode {
	return &OnNode{on: filter}
}

// CloneOnWithFilter returns a new join condition: (existing) <op> filter.
func CloneOnWithFilter(existing *OnNode, op BoolOp, filter Predicate) *OnNode {
	return &OnNode{on: combine(existing.on, op, filter)}
}

func (*OnNode) operationNode() {}

// Kind implements Node.
func (*OnNode) Kind() Kind { return KindOn }

// On returns the join condition predicate.
func (n *OnNode) On() Predicate { return n.on }
