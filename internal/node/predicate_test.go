package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stmtir/internal/value"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected Operator
	}{
		{"=", OpEqual},
		{"<>", OpNotEqual},
		{"!=", OpNotEqual},
		{"<", OpLessThan},
		{"<=", OpLessEqual},
		{">", OpGreaterThan},
		{">=", OpGreaterEqual},
		{"LIKE", OpLike},
		{"not  like", OpNotLike},
		{"in", OpIn},
		{"Not In", OpNotIn},
		{"is", OpIs},
		{"is not", OpIsNot},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, err := ParseOperator(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

func TestParseOperator_Invalid(t *testing.T) {
	_, err := ParseOperator("==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operator")
}

func TestCloneWhereWithFilter_DoesNotMutate(t *testing.T) {
	c1 := eq("a", value.Int(1))
	c2 := eq("b", value.Int(2))
	w := CreateWhere(c1)

	and := CloneWhereWithFilter(w, And, c2)
	or := CloneWhereWithFilter(w, Or, c2)

	assert.Same(t, c1, w.Where())
	assert.Equal(t, CreateAnd(c1, c2), and.Where())
	assert.Equal(t, CreateOr(c1, c2), or.Where())
}

func TestCloneOnWithFilter(t *testing.T) {
	c1 := eq("a", value.Int(1))
	c2 := eq("b", value.Int(2))
	on := CreateOn(c1)

	next := CloneOnWithFilter(on, And, c2)

	assert.Same(t, c1, on.On())
	assert.Equal(t, CreateAnd(c1, c2), next.On())
}

func TestBinaryOperation_Accessors(t *testing.T) {
	left := CreateReference("age")
	right := CreateValue(value.Int(18))
	op := CreateBinaryOperation(left, OpGreaterEqual, right)

	assert.Same(t, left, op.Left())
	assert.Equal(t, OpGreaterEqual, op.Operator())
	assert.Same(t, right, op.Right())
	assert.Equal(t, KindBinaryOperation, op.Kind())
}

func TestParens(t *testing.T) {
	inner := eq("a", value.Int(1))
	p := CreateParens(inner)
	assert.Same(t, inner, p.Inner())
	assert.Equal(t, KindParens, p.Kind())
}

func TestCreateValue_NilIsNull(t *testing.T) {
	assert.Equal(t, value.Null{}, CreateValue(nil).Value())
}
