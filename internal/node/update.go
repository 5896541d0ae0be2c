package node

// UpdateQueryNode is an UPDATE statement.
//
// Semantics:
//
//	UPDATE <table> SET <updates> <joins> WHERE <where> RETURNING <returning>
//
// Update is the one statement in both capability groups: it is filterable
// (where, joins) and mutating (returning).
type UpdateQueryNode struct {
	table     *TableNode
	updates   List[*ColumnUpdateNode]
	joins     List[*JoinNode]
	where     *WhereNode
	returning *ReturningNode
}

// CreateUpdateQuery creates an update of table.
func CreateUpdateQuery(table *TableNode) *UpdateQueryNode {
	return &UpdateQueryNode{table: table}
}

func (*UpdateQueryNode) operationNode()   {}
func (*UpdateQueryNode) queryNode()       {}
func (*UpdateQueryNode) filterableQuery() {}
func (*UpdateQueryNode) mutatingQuery()   {}

// Kind implements Node.
func (*UpdateQueryNode) Kind() Kind { return KindUpdateQuery }

// Table returns the updated table.
func (n *UpdateQueryNode) Table() *TableNode { return n.table }

// Updates returns the column assignments.
func (n *UpdateQueryNode) Updates() List[*ColumnUpdateNode] { return n.updates }

// Joins returns the join clauses in order.
func (n *UpdateQueryNode) Joins() List[*JoinNode] { return n.joins }

// Where returns the where clause, or nil.
func (n *UpdateQueryNode) Where() *WhereNode { return n.where }

// Returning returns the returning clause, or nil.
func (n *UpdateQueryNode) Returning() *ReturningNode { return n.returning }

// WithUpdates returns a copy with assignments appended.
func (n *UpdateQueryNode) WithUpdates(updates ...*ColumnUpdateNode) *UpdateQueryNode {
	c := *n
	c.updates = n.updates.Append(updates...)
	return &c
}

func (n *UpdateQueryNode) withWhere(where *WhereNode) *UpdateQueryNode {
	c := *n
	c.where = where
	return &c
}

func (n *UpdateQueryNode) withJoins(joins List[*JoinNode]) *UpdateQueryNode {
	c := *n
	c.joins = joins
	return &c
}

func (n *UpdateQueryNode) withReturning(returning *ReturningNode) *UpdateQueryNode {
	c := *n
	c.returning = returning
	return &c
}
