package node

// SelectQueryNode is a SELECT statement.
//
// Semantics:
//
//	SELECT [DISTINCT] <selections> FROM <from> <joins>
//	WHERE <where> ORDER BY <orderBy> LIMIT <limit> OFFSET <offset>
//
// Select is filterable (where, joins) but not mutating (no returning).
type SelectQueryNode struct {
	from       List[*TableNode]
	selections List[*SelectionNode]
	distinct   bool
	joins      List[*JoinNode]
	where      *WhereNode
	orderBy    List[*OrderByItemNode]
	limit      *ValueNode
	offset     *ValueNode
}

// CreateSelectQuery creates a select over the given tables.
func CreateSelectQuery(from ...*TableNode) *SelectQueryNode {
	return &SelectQueryNode{from: ListOf(from...)}
}

func (*SelectQueryNode) operationNode()   {}
func (*SelectQueryNode) queryNode()       {}
func (*SelectQueryNode) filterableQuery() {}

// Kind implements Node.
func (*SelectQueryNode) Kind() Kind { return KindSelectQuery }

// From returns the tables of the from clause.
func (n *SelectQueryNode) From() List[*TableNode] { return n.from }

// Selections returns the select list. Empty means `*`.
func (n *SelectQueryNode) Selections() List[*SelectionNode] { return n.selections }

// Distinct reports whether the select is DISTINCT.
func (n *SelectQueryNode) Distinct() bool { return n.distinct }

// Joins returns the join clauses in order.
func (n *SelectQueryNode) Joins() List[*JoinNode] { return n.joins }

// Where returns the where clause, or nil.
func (n *SelectQueryNode) Where() *WhereNode { return n.where }

// OrderBy returns the order by items.
func (n *SelectQueryNode) OrderBy() List[*OrderByItemNode] { return n.orderBy }

// Limit returns the limit, or nil.
func (n *SelectQueryNode) Limit() *ValueNode { return n.limit }

// Offset returns the offset, or nil.
func (n *SelectQueryNode) Offset() *ValueNode { return n.offset }

// WithSelections returns a copy with selections appended to the select list.
func (n *SelectQueryNode) WithSelections(selections ...*SelectionNode) *SelectQueryNode {
	c := *n
	c.selections = n.selections.Append(selections...)
	return &c
}

// WithDistinct returns a copy marked DISTINCT.
func (n *SelectQueryNode) WithDistinct() *SelectQueryNode {
	c := *n
	c.distinct = true
	return &c
}

// WithOrderByItems returns a copy with items appended to the order by clause.
func (n *SelectQueryNode) WithOrderByItems(items ...*OrderByItemNode) *SelectQueryNode {
	c := *n
	c.orderBy = n.orderBy.Append(items...)
	return &c
}

// WithLimit returns a copy with the limit replaced.
func (n *SelectQueryNode) WithLimit(limit *ValueNode) *SelectQueryNode {
	c := *n
	c.limit = limit
	return &c
}

// WithOffset returns a copy with the offset replaced.
func (n *SelectQueryNode) WithOffset(offset *ValueNode) *SelectQueryNode {
	c := *n
	c.offset = offset
	return &c
}

func (n *SelectQueryNode) withWhere(where *WhereNode) *SelectQueryNode {
	c := *n
	c.where = where
	return &c
}

func (n *SelectQueryNode) withJoins(joins List[*JoinNode]) *SelectQueryNode {
	c := *n
	c.joins = joins
	return &c
}
