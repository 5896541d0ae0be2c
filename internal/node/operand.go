package node

import "github.com/roach88/stmtir/internal/value"

// Operand is a node that can appear on either side of a binary operation,
// in a selection, or as an inserted/updated value.
//
// This is a sealed interface. Operand types:
//   - *ReferenceNode: column reference or select-all
//   - *ValueNode: a single literal, bound as a parameter
//   - *ValueListNode: a parenthesized list, used with in / not in and as an
//     insert row
type Operand interface {
	Node
	operandNode()
}

// TableNode names a table, optionally schema-qualified and aliased.
type TableNode struct {
	schema string
	name   string
	alias  string
}

// CreateTable creates an unqualified table node.
func CreateTable(name string) *TableNode {
	return &TableNode{name: name}
}

// CreateTableWithSchema creates a schema-qualified table node.
func CreateTableWithSchema(schema, name string) *TableNode {
	return &TableNode{schema: schema, name: name}
}

func (*TableNode) operationNode() {}

// Kind implements Node.
func (*TableNode) Kind() Kind { return KindTable }

// Schema returns the schema name, or "" when unqualified.
func (n *TableNode) Schema() string { return n.schema }

// Name returns the table name.
func (n *TableNode) Name() string { return n.name }

// Alias returns the alias, or "" when not aliased.
func (n *TableNode) Alias() string { return n.alias }

// RefName is the name columns of this table are qualified with: the alias
// when present, the table name otherwise.
func (n *TableNode) RefName() string {
	if n.alias != "" {
		return n.alias
	}
	return n.name
}

// WithAlias returns a copy of the table node with the given alias.
func (n *TableNode) WithAlias(alias string) *TableNode {
	c := *n
	c.alias = alias
	return &c
}

// ColumnNode names a column.
type ColumnNode struct {
	name string
}

// CreateColumn creates a column node.
func CreateColumn(name string) *ColumnNode {
	return &ColumnNode{name: name}
}

func (*ColumnNode) operationNode() {}

// Kind implements Node.
func (*ColumnNode) Kind() Kind { return KindColumn }

// Name returns the column name.
func (n *ColumnNode) Name() string { return n.name }

// ReferenceNode references a column, optionally qualified by a table.
// A reference without a column is a select-all (`*` or `table.*`).
type ReferenceNode struct {
	table  *TableNode
	column *ColumnNode
}

// CreateReference creates an unqualified column reference.
func CreateReference(column string) *ReferenceNode {
	return &ReferenceNode{column: CreateColumn(column)}
}

// CreateTableReference creates a table-qualified column reference.
func CreateTableReference(table *TableNode, column string) *ReferenceNode {
	return &ReferenceNode{table: table, column: CreateColumn(column)}
}

// CreateSelectAll creates `*`, or `table.*` when table is non-nil.
func CreateSelectAll(table *TableNode) *ReferenceNode {
	return &ReferenceNode{table: table}
}

func (*ReferenceNode) operationNode() {}
func (*ReferenceNode) operandNode()   {}

// Kind implements Node.
func (*ReferenceNode) Kind() Kind { return KindReference }

// Table returns the qualifying table, or nil.
func (n *ReferenceNode) Table() *TableNode { return n.table }

// Column returns the referenced column, or nil for select-all.
func (n *ReferenceNode) Column() *ColumnNode { return n.column }

// IsSelectAll reports whether the reference is `*` or `table.*`.
func (n *ReferenceNode) IsSelectAll() bool { return n.column == nil }

// ValueNode wraps a literal. Compilers bind it as a parameter.
type ValueNode struct {
	value value.Value
}

// CreateValue creates a value node. A nil value is stored as value.Null.
func CreateValue(v value.Value) *ValueNode {
	if v == nil {
		v = value.Null{}
	}
	return &ValueNode{value: v}
}

func (*ValueNode) operationNode() {}
func (*ValueNode) operandNode()   {}

// Kind implements Node.
func (*ValueNode) Kind() Kind { return KindValue }

// Value returns the wrapped literal.
func (n *ValueNode) Value() value.Value { return n.value }

// ValueListNode is an ordered, parenthesized list of operands.
type ValueListNode struct {
	values List[Operand]
}

// CreateValueList creates a value list node.
func CreateValueList(values ...Operand) *ValueListNode {
	return &ValueListNode{values: ListOf(values...)}
}

func (*ValueListNode) operationNode() {}
func (*ValueListNode) operandNode()   {}

// Kind implements Node.
func (*ValueListNode) Kind() Kind { return KindValueList }

// Values returns the list items.
func (n *ValueListNode) Values() List[Operand] { return n.values }
