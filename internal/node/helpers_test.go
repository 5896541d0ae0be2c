package node

import "github.com/roach88/stmtir/internal/value"

// eq builds `column = value` for tests.
func eq(column string, v value.Value) *BinaryOperationNode {
	return CreateBinaryOperation(CreateReference(column), OpEqual, CreateValue(v))
}

func col(name string) *SelectionNode {
	return CreateSelection(CreateReference(name))
}

// allQueries returns one node of every statement kind.
func allQueries() []Query {
	person := CreateTable("person")
	return []Query{
		CreateSelectQuery(person),
		CreateInsertQuery(person),
		CreateUpdateQuery(person),
		CreateDeleteQuery(person),
	}
}

// nonQueries returns nodes that are not statements.
func nonQueries() []Node {
	person := CreateTable("person")
	return []Node{
		person,
		CreateColumn("id"),
		CreateReference("id"),
		CreateValue(value.Int(1)),
		CreateValueList(CreateValue(value.Int(1))),
		eq("id", value.Int(1)),
		CreateAnd(eq("a", value.Int(1)), eq("b", value.Int(2))),
		CreateOr(eq("a", value.Int(1)), eq("b", value.Int(2))),
		CreateParens(eq("a", value.Int(1))),
		CreateWhere(eq("id", value.Int(1))),
		CreateOn(eq("id", value.Int(1))),
		CreateJoin(InnerJoin, person),
		col("id"),
		CreateReturning(col("id")),
		CreateOrderByItem(CreateReference("id"), Asc),
		CreateColumnUpdate("id", CreateValue(value.Int(1))),
	}
}
