// Package node provides the immutable intermediate representation (IR) for
// SQL statements that every builder operation produces and the compiler
// consumes.
//
// ARCHITECTURE:
//
//	[builder] → [classifier] → [cloner] → new node → [builder]
//	                                        ↓
//	                                   [querysql compiler]
//
// Nothing in this package calls back into the builder or compiler layers.
//
// STATEMENT KINDS:
//
// Query is a sealed interface with exactly four implementations:
// *SelectQueryNode, *InsertQueryNode, *UpdateQueryNode and *DeleteQueryNode.
// Two capability groups are derived from the kind:
//
//	             Select  Insert  Update  Delete
//	filterable     x               x       x      (where, joins)
//	mutating               x       x       x      (returning)
//
// Update belongs to both groups. The groups exist twice: as runtime
// predicates (IsQuery, IsFilterable, IsMutating) for callers holding an
// untyped Node, and as sealed generic constraints (Filterable[T],
// Mutating[T]) so that CloneWithWhere on an insert, or CloneWithReturning on
// a select, does not compile.
//
// IMMUTABILITY:
//
// Nodes have no exported fields and no mutators. Every "update" returns a new
// node that shares all untouched substructure with its input, so a node can
// be handed to any number of builders and goroutines without copying or
// locking. Ordered children are held in List, which never exposes its
// backing array.
//
// Example:
//
//	base := node.CreateSelectQuery(node.CreateTable("person"))
//	adults := node.CloneWithWhere(base, node.And, isAdult)
//	named := node.CloneWithWhere(adults, node.And, hasName)
//	// base.Where() == nil, adults.Where() wraps isAdult,
//	// named.Where() wraps (isAdult and hasName).
package node
