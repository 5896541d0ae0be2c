package node

// SelectionNode is one item of a select list or returning clause.
type SelectionNode struct {
	selection Operand
	alias     string
}

// CreateSelection creates a selection without alias.
func CreateSelection(selection Operand) *SelectionNode {
	return &SelectionNode{selection: selection}
}

// CreateAliasedSelection creates `selection as alias`.
func CreateAliasedSelection(selection Operand, alias string) *SelectionNode {
	return &SelectionNode{selection: selection, alias: alias}
}

func (*SelectionNode) operationNode() {}

// Kind implements Node.
func (*SelectionNode) Kind() Kind { return KindSelection }

// Selection returns the selected operand.
func (n *SelectionNode) Selection() Operand { return n.selection }

// Alias returns the alias, or "".
func (n *SelectionNode) Alias() string { return n.alias }

// ReturningNode is the returning clause of a mutating query.
type ReturningNode struct {
	selections List[*SelectionNode]
}

// CreateReturning creates a returning clause over selections.
func CreateReturning(selections ...*SelectionNode) *ReturningNode {
	return &ReturningNode{selections: ListOf(selections...)}
}

// CloneReturningWithSelections returns a new returning clause with
// selections appended after the existing ones.
func CloneReturningWithSelections(existing *ReturningNode, selections ...*SelectionNode) *ReturningNode {
	return &ReturningNode{selections: existing.selections.Append(selections...)}
}

func (*ReturningNode) operationNode() {}

// Kind implements Node.
func (*ReturningNode) Kind() Kind { return KindReturning }

// Selections returns the returned selections.
func (n *ReturningNode) Selections() List[*SelectionNode] { return n.selections }

// Direction is an order by direction. The empty direction renders nothing.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderByItemNode is one item of an order by clause.
type OrderByItemNode struct {
	orderBy   Operand
	direction Direction
}

// CreateOrderByItem creates an order by item.
func CreateOrderByItem(orderBy Operand, direction Direction) *OrderByItemNode {
	return &OrderByItemNode{orderBy: orderBy, direction: direction}
}

func (*OrderByItemNode) operationNode() {}

// Kind implements Node.
func (*OrderByItemNode) Kind() Kind { return KindOrderByItem }

// OrderBy returns the ordering operand.
func (n *OrderByItemNode) OrderBy() Operand { return n.orderBy }

// Direction returns the direction.
func (n *OrderByItemNode) Direction() Direction { return n.direction }

// ColumnUpdateNode is one `column = value` assignment of an update.
type ColumnUpdateNode struct {
	column *ColumnNode
	value  Operand
}

// CreateColumnUpdate creates an assignment.
func CreateColumnUpdate(column string, value Operand) *ColumnUpdateNode {
	return &ColumnUpdateNode{column: CreateColumn(column), value: value}
}

func (*ColumnUpdateNode) operationNode() {}

// Kind implements Node.
func (*ColumnUpdateNode) Kind() Kind { return KindColumnUpdate }

// Column returns the assigned column.
func (n *ColumnUpdateNode) Column() *ColumnNode { return n.column }

// Value returns the assigned operand.
func (n *ColumnUpdateNode) Value() Operand { return n.value }
