package node

// InsertQueryNode is an INSERT statement.
//
// Semantics:
//
//	INSERT INTO <into> (<columns>) VALUES <values>
//	[ON CONFLICT DO NOTHING] RETURNING <returning>
//
// Insert is mutating (returning) but not filterable.
type InsertQueryNode struct {
	into                *TableNode
	columns             List[*ColumnNode]
	values              List[*ValueListNode]
	onConflictDoNothing bool
	returning           *ReturningNode
}

// CreateInsertQuery creates an insert into table.
func CreateInsertQuery(into *TableNode) *InsertQueryNode {
	return &InsertQueryNode{into: into}
}

func (*InsertQueryNode) operationNode() {}
func (*InsertQueryNode) queryNode()     {}
func (*InsertQueryNode) mutatingQuery() {}

// Kind implements Node.
func (*InsertQueryNode) Kind() Kind { return KindInsertQuery }

// Into returns the target table.
func (n *InsertQueryNode) Into() *TableNode { return n.into }

// Columns returns the column list.
func (n *InsertQueryNode) Columns() List[*ColumnNode] { return n.columns }

// Values returns the value rows.
func (n *InsertQueryNode) Values() List[*ValueListNode] { return n.values }

// OnConflictDoNothing reports whether conflicting rows are skipped.
func (n *InsertQueryNode) OnConflictDoNothing() bool { return n.onConflictDoNothing }

// Returning returns the returning clause, or nil.
func (n *InsertQueryNode) Returning() *ReturningNode { return n.returning }

// WithColumns returns a copy with the column list replaced.
func (n *InsertQueryNode) WithColumns(columns ...*ColumnNode) *InsertQueryNode {
	c := *n
	c.columns = ListOf(columns...)
	return &c
}

// WithValues returns a copy with rows appended.
func (n *InsertQueryNode) WithValues(rows ...*ValueListNode) *InsertQueryNode {
	c := *n
	c.values = n.values.Append(rows...)
	return &c
}

// WithOnConflictDoNothing returns a copy that skips conflicting rows.
func (n *InsertQueryNode) WithOnConflictDoNothing() *InsertQueryNode {
	c := *n
	c.onConflictDoNothing = true
	return &c
}

func (n *InsertQueryNode) withReturning(returning *ReturningNode) *InsertQueryNode {
	c := *n
	c.returning = returning
	return &c
}
