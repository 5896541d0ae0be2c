package node

// Query is a SQL statement node.
//
// This is a sealed interface with exactly four implementations:
// *SelectQueryNode, *InsertQueryNode, *UpdateQueryNode, *DeleteQueryNode.
// Backends can type switch over them exhaustively.
type Query interface {
	Node
	queryNode() // Marker method - seals interface to this package
}

// FilterableQuery is a query that may carry a where clause and joins:
// select, update and delete.
type FilterableQuery interface {
	Query
	Where() *WhereNode
	Joins() List[*JoinNode]
	filterableQuery()
}

// MutatingQuery is a query that may carry a returning clause:
// insert, update and delete.
type MutatingQuery interface {
	Query
	Returning() *ReturningNode
	mutatingQuery()
}

// IsSelectQuery reports whether n is a select statement.
func IsSelectQuery(n Node) bool {
	_, ok := n.(*SelectQueryNode)
	return ok
}

// IsInsertQuery reports whether n is an insert statement.
func IsInsertQuery(n Node) bool {
	_, ok := n.(*InsertQueryNode)
	return ok
}

// IsUpdateQuery reports whether n is an update statement.
func IsUpdateQuery(n Node) bool {
	_, ok := n.(*UpdateQueryNode)
	return ok
}

// IsDeleteQuery reports whether n is a delete statement.
func IsDeleteQuery(n Node) bool {
	_, ok := n.(*DeleteQueryNode)
	return ok
}

// IsQuery reports whether n is one of the four statement variants.
// Use it as a boundary guard before applying any other operation of this
// package to an otherwise untyped node.
func IsQuery(n Node) bool {
	switch n.(type) {
	case *SelectQueryNode, *InsertQueryNode, *UpdateQueryNode, *DeleteQueryNode:
		return true
	default:
		return false
	}
}

// IsMutating reports whether n is an insert, update or delete, i.e. whether
// CloneWithReturning applies to it.
func IsMutating(n Node) bool {
	switch n.(type) {
	case *InsertQueryNode, *UpdateQueryNode, *DeleteQueryNode:
		return true
	default:
		return false
	}
}

// IsFilterable reports whether n is a select, update or delete, i.e. whether
// CloneWithWhere and CloneWithJoin apply to it.
func IsFilterable(n Node) bool {
	switch n.(type) {
	case *SelectQueryNode, *UpdateQueryNode, *DeleteQueryNode:
		return true
	default:
		return false
	}
}

// Classify returns the statement kind of n. The second result is false when
// n is not a statement.
func Classify(n Node) (Kind, bool) {
	if !IsQuery(n) {
		return KindUnknown, false
	}
	return n.Kind(), true
}
