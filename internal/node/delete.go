package node

// DeleteQueryNode is a DELETE statement.
//
// Semantics:
//
//	DELETE FROM <from> <joins> WHERE <where> RETURNING <returning>
type DeleteQueryNode struct {
	from      *TableNode
	joins     List[*JoinNode]
	where     *WhereNode
	returning *ReturningNode
}

// CreateDeleteQuery creates a delete from table.
func CreateDeleteQuery(from *TableNode) *DeleteQueryNode {
	return &DeleteQueryNode{from: from}
}

func (*DeleteQueryNode) operationNode()   {}
func (*DeleteQueryNode) queryNode()       {}
func (*DeleteQueryNode) filterableQuery() {}
func (*DeleteQueryNode) mutatingQuery()   {}

// Kind implements Node.
func (*DeleteQueryNode) Kind() Kind { return KindDeleteQuery }

// From returns the table rows are deleted from.
func (n *DeleteQueryNode) From() *TableNode { return n.from }

// Joins returns the join clauses in order.
func (n *DeleteQueryNode) Joins() List[*JoinNode] { return n.joins }

// Where returns the where clause, or nil.
func (n *DeleteQueryNode) Where() *WhereNode { return n.where }

// Returning returns the returning clause, or nil.
func (n *DeleteQueryNode) Returning() *ReturningNode { return n.returning }

func (n *DeleteQueryNode) withWhere(where *WhereNode) *DeleteQueryNode {
	c := *n
	c.where = where
	return &c
}

func (n *DeleteQueryNode) withJoins(joins List[*JoinNode]) *DeleteQueryNode {
	c := *n
	c.joins = joins
	return &c
}

func (n *DeleteQueryNode) withReturning(returning *ReturningNode) *DeleteQueryNode {
	c := *n
	c.returning = returning
	return &c
}
