package node

// Node is implemented by every IR node.
//
// This is a sealed interface - only types in this package implement it.
type Node interface {
	Kind() Kind
	operationNode() // Marker method - seals interface to this package
}

// Kind identifies the concrete type of a node.
type Kind int

const (
	KindUnknown Kind = iota
	KindSelectQuery
	KindInsertQuery
	KindUpdateQuery
	KindDeleteQuery
	KindTable
	KindColumn
	KindReference
	KindValue
	KindValueList
	KindBinaryOperation
	KindAnd
	KindOr
	KindParens
	KindWhere
	KindOn
	KindJoin
	KindSelection
	KindReturning
	KindOrderByItem
	KindColumnUpdate
)

var kindNames = map[Kind]string{
	KindUnknown:         "Unknown",
	KindSelectQuery:     "SelectQueryNode",
	KindInsertQuery:     "InsertQueryNode",
	KindUpdateQuery:     "UpdateQueryNode",
	KindDeleteQuery:     "DeleteQueryNode",
	KindTable:           "TableNode",
	KindColumn:          "ColumnNode",
	KindReference:       "ReferenceNode",
	KindValue:           "ValueNode",
	KindValueList:       "ValueListNode",
	KindBinaryOperation: "BinaryOperationNode",
	KindAnd:             "AndNode",
	KindOr:              "OrNode",
	KindParens:          "ParensNode",
	KindWhere:           "WhereNode",
	KindOn:              "OnNode",
	KindJoin:            "JoinNode",
	KindSelection:       "SelectionNode",
	KindReturning:       "ReturningNode",
	KindOrderByItem:     "OrderByItemNode",
	KindColumnUpdate:    "ColumnUpdateNode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Statement returns the SQL verb of a statement kind ("select", "insert",
// "update", "delete"), or "" for any other kind.
func (k Kind) Statement() string {
	switch k {
	case KindSelectQuery:
		return "select"
	case KindInsertQuery:
		return "insert"
	case KindUpdateQuery:
		return "update"
	case KindDeleteQuery:
		return "delete"
	default:
		return ""
	}
}

// kindOf returns the kind of n, tolerating nil.
func kindOf(n Node) Kind {
	if n == nil {
		return KindUnknown
	}
	return n.Kind()
}
