package node

import (
	"fmt"
	"strings"
)

// Predicate is a boolean condition usable in WHERE and ON clauses.
//
// This is a sealed interface. Predicate types:
//   - *BinaryOperationNode: left <operator> right
//   - *AndNode, *OrNode: boolean combination of two predicates
//   - *ParensNode: explicit grouping
type Predicate interface {
	Node
	predicateNode()
}

// BoolOp is the boolean operator used to combine a new filter with an
// existing one.
type BoolOp string

const (
	And BoolOp = "and"
	Or  BoolOp = "or"
)

// Valid reports whether op is And or Or.
func (op BoolOp) Valid() bool {
	return op == And || op == Or
}

// mustValid panics on an operator other than And or Or.
func (op BoolOp) mustValid() {
	if !op.Valid() {
		panic(fmt.Sprintf("node: invalid boolean operator %q", op))
	}
}

// Operator is a comparison operator of a BinaryOperationNode.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "<>"
	OpLessThan     Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreaterThan  Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLike         Operator = "like"
	OpNotLike      Operator = "not like"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not in"
	OpIs           Operator = "is"
	OpIsNot        Operator = "is not"
)

var operators = []Operator{
	OpEqual, OpNotEqual, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual,
	OpLike, OpNotLike, OpIn, OpNotIn, OpIs, OpIsNot,
}

// ParseOperator validates operator text. Matching is case-insensitive and
// "!=" is accepted as an alias of "<>".
func ParseOperator(s string) (Operator, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if normalized == "!=" {
		return OpNotEqual, nil
	}
	for _, op := range operators {
		if string(op) == normalized {
			return op, nil
		}
	}
	return "", fmt.Errorf("unsupported operator: %q", s)
}

// BinaryOperationNode compares two operands.
type BinaryOperationNode struct {
	left     Operand
	operator Operator
	right    Operand
}

// CreateBinaryOperation creates a comparison predicate.
func CreateBinaryOperation(left Operand, op Operator, right Operand) *BinaryOperationNode {
	return &BinaryOperationNode{left: left, operator: op, right: right}
}

func (*BinaryOperationNode) operationNode() {}
func (*BinaryOperationNode) predicateNode() {}

// Kind implements Node.
func (*BinaryOperationNode) Kind() Kind { return KindBinaryOperation }

// Left returns the left operand.
func (n *BinaryOperationNode) Left() Operand { return n.left }

// Operator returns the comparison operator.
func (n *BinaryOperationNode) Operator() Operator { return n.operator }

// Right returns the right operand.
func (n *BinaryOperationNode) Right() Operand { return n.right }

// AndNode is the conjunction of two predicates.
type AndNode struct {
	left  Predicate
	right Predicate
}

// CreateAnd creates left AND right.
func CreateAnd(left, right Predicate) *AndNode {
	return &AndNode{left: left, right: right}
}

func (*AndNode) operationNode() {}
func (*AndNode) predicateNode() {}

// Kind implements Node.
func (*AndNode) Kind() Kind { return KindAnd }

// Left returns the left predicate.
func (n *AndNode) Left() Predicate { return n.left }

// Right returns the right predicate.
func (n *AndNode) Right() Predicate { return n.right }

// OrNode is the disjunction of two predicates.
type OrNode struct {
	left  Predicate
	right Predicate
}

// CreateOr creates left OR right.
func CreateOr(left, right Predicate) *OrNode {
	return &OrNode{left: left, right: right}
}

func (*OrNode) operationNode() {}
func (*OrNode) predicateNode() {}

// Kind implements Node.
func (*OrNode) Kind() Kind { return KindOr }

// Left returns the left predicate.
func (n *OrNode) Left() Predicate { return n.left }

// Right returns the right predicate.
func (n *OrNode) Right() Predicate { return n.right }

// ParensNode groups a predicate explicitly.
type ParensNode struct {
	inner Predicate
}

// CreateParens wraps a predicate in parentheses.
func CreateParens(inner Predicate) *ParensNode {
	return &ParensNode{inner: inner}
}

func (*ParensNode) operationNode() {}
func (*ParensNode) predicateNode() {}

// Kind implements Node.
func (*ParensNode) Kind() Kind { return KindParens }

// Inner returns the grouped predicate.
func (n *ParensNode) Inner() Predicate { return n.inner }

// combine joins two predicates with op. Panics on an operator other than
// And or Or.
func combine(existing Predicate, op BoolOp, filter Predicate) Predicate {
	op.mustValid()
	if op == Or {
		return CreateOr(existing, filter)
	}
	return CreateAnd(existing, filter)
}
