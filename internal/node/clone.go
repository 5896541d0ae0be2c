package node

// Filterable is the compile-time form of IsFilterable. It is satisfied by
// *SelectQueryNode, *UpdateQueryNode and *DeleteQueryNode only, and T is the
// concrete type itself, so clones keep their statement kind:
//
//	var sel *SelectQueryNode = CloneWithWhere(sel, And, p)
//	CloneWithWhere(insert, And, p) // does not compile
type Filterable[T any] interface {
	FilterableQuery
	withWhere(*WhereNode) T
	withJoins(List[*JoinNode]) T
}

// Mutating is the compile-time form of IsMutating. It is satisfied by
// *InsertQueryNode, *UpdateQueryNode and *DeleteQueryNode only.
type Mutating[T any] interface {
	MutatingQuery
	withReturning(*ReturningNode) T
}

// CloneWithWhere returns a copy of node whose where clause includes filter.
//
// Without an existing where clause the result filters by filter alone.
// Otherwise the existing predicate is combined with filter through op, so
// chained calls accumulate into one boolean expression instead of replacing
// earlier conditions. Every other field is shared with node.
//
// Panics if op is not And or Or, whether or not node has a where clause.
func CloneWithWhere[T Filterable[T]](node T, op BoolOp, filter Predicate) T {
	op.mustValid()
	if existing := node.Where(); existing != nil {
		return node.withWhere(CloneWhereWithFilter(existing, op, filter))
	}
	return node.withWhere(CreateWhere(filter))
}

// CloneWithJoin returns a copy of node with join appended after its existing
// joins. The existing join list is never appended to in place.
func CloneWithJoin[T Filterable[T]](node T, join *JoinNode) T {
	return node.withJoins(node.Joins().Append(join))
}

// CloneWithReturning returns a copy of node whose returning clause includes
// selections, merged after any selections already returned.
func CloneWithReturning[T Mutating[T]](node T, selections ...*SelectionNode) T {
	if existing := node.Returning(); existing != nil {
		return node.withReturning(CloneReturningWithSelections(existing, selections...))
	}
	return node.withReturning(CreateReturning(selections...))
}

// CloneQueryWithWhere is CloneWithWhere for callers holding an untyped Query.
// The result has the same concrete type as q.
//
// Panics with *CapabilityError if q is not filterable. Check IsFilterable
// first when the kind is not known.
func CloneQueryWithWhere(q Query, op BoolOp, filter Predicate) Query {
	switch n := q.(type) {
	case *SelectQueryNode:
		return CloneWithWhere(n, op, filter)
	case *UpdateQueryNode:
		return CloneWithWhere(n, op, filter)
	case *DeleteQueryNode:
		return CloneWithWhere(n, op, filter)
	default:
		panic(newCapabilityError("CloneQueryWithWhere", q, CapabilityFilterable))
	}
}

// CloneQueryWithJoin is CloneWithJoin for callers holding an untyped Query.
//
// Panics with *CapabilityError if q is not filterable.
func CloneQueryWithJoin(q Query, join *JoinNode) Query {
	switch n := q.(type) {
	case *SelectQueryNode:
		return CloneWithJoin(n, join)
	case *UpdateQueryNode:
		return CloneWithJoin(n, join)
	case *DeleteQueryNode:
		return CloneWithJoin(n, join)
	default:
		panic(newCapabilityError("CloneQueryWithJoin", q, CapabilityFilterable))
	}
}

// CloneQueryWithReturning is CloneWithReturning for callers holding an
// untyped Query.
//
// Panics with *CapabilityError if q is not mutating.
func CloneQueryWithReturning(q Query, selections ...*SelectionNode) Query {
	switch n := q.(type) {
	case *InsertQueryNode:
		return CloneWithReturning(n, selections...)
	case *UpdateQueryNode:
		return CloneWithReturning(n, selections...)
	case *DeleteQueryNode:
		return CloneWithReturning(n, selections...)
	default:
		panic(newCapabilityError("CloneQueryWithReturning", q, CapabilityMutating))
	}
}
