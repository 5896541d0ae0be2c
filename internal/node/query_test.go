package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_ExactlyOneKind(t *testing.T) {
	for _, q := range allQueries() {
		t.Run(q.Kind().String(), func(t *testing.T) {
			matches := 0
			for _, is := range []func(Node) bool{IsSelectQuery, IsInsertQuery, IsUpdateQuery, IsDeleteQuery} {
				if is(q) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "exactly one statement kind must match")

			isAny := IsSelectQuery(q) || IsInsertQuery(q) || IsUpdateQuery(q) || IsDeleteQuery(q)
			assert.Equal(t, isAny, IsQuery(q))
		})
	}
}

func TestClassifier_GroupIdentities(t *testing.T) {
	nodes := nonQueries()
	for _, q := range allQueries() {
		nodes = append(nodes, q)
	}

	for _, n := range nodes {
		t.Run(n.Kind().String(), func(t *testing.T) {
			assert.Equal(t, IsInsertQuery(n) || IsUpdateQuery(n) || IsDeleteQuery(n), IsMutating(n))
			assert.Equal(t, IsSelectQuery(n) || IsUpdateQuery(n) || IsDeleteQuery(n), IsFilterable(n))

			// Every group member is a statement.
			if IsMutating(n) || IsFilterable(n) {
				assert.True(t, IsQuery(n))
			}
		})
	}
}

func TestClassifier_Table(t *testing.T) {
	person := CreateTable("person")
	tests := []struct {
		name       string
		node       Node
		query      bool
		mutating   bool
		filterable bool
	}{
		{"select", CreateSelectQuery(person), true, false, true},
		{"insert", CreateInsertQuery(person), true, true, false},
		{"update", CreateUpdateQuery(person), true, true, true},
		{"delete", CreateDeleteQuery(person), true, true, true},
		{"table", person, false, false, false},
		{"where", CreateWhere(eq("id", nil)), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.query, IsQuery(tt.node))
			assert.Equal(t, tt.mutating, IsMutating(tt.node))
			assert.Equal(t, tt.filterable, IsFilterable(tt.node))
		})
	}
}

func TestClassifier_NonQueriesAreNothing(t *testing.T) {
	for _, n := range nonQueries() {
		t.Run(n.Kind().String(), func(t *testing.T) {
			assert.False(t, IsQuery(n))
			assert.False(t, IsMutating(n))
			assert.False(t, IsFilterable(n))

			kind, ok := Classify(n)
			assert.False(t, ok)
			assert.Equal(t, KindUnknown, kind)
		})
	}
}

func TestClassify(t *testing.T) {
	expected := []Kind{KindSelectQuery, KindInsertQuery, KindUpdateQuery, KindDeleteQuery}
	for i, q := range allQueries() {
		kind, ok := Classify(q)
		assert.True(t, ok)
		assert.Equal(t, expected[i], kind)
	}

	kind, ok := Classify(nil)
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, kind)
}

func TestQuery_MarkerInterfaces(t *testing.T) {
	// Sealed interface - can type switch exhaustively
	for _, q := range allQueries() {
		switch q.(type) {
		case *SelectQueryNode, *InsertQueryNode, *UpdateQueryNode, *DeleteQueryNode:
			// Expected
		default:
			t.Fatalf("unexpected query type %T", q)
		}

		_, filterable := q.(FilterableQuery)
		_, mutating := q.(MutatingQuery)
		assert.Equal(t, IsFilterable(q), filterable, "%T", q)
		assert.Equal(t, IsMutating(q), mutating, "%T", q)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "SelectQueryNode", KindSelectQuery.String())
	assert.Equal(t, "ColumnUpdateNode", KindColumnUpdate.String())
	assert.Equal(t, "Unknown", Kind(999).String())
}

func TestKind_Statement(t *testing.T) {
	assert.Equal(t, "select", KindSelectQuery.Statement())
	assert.Equal(t, "insert", KindInsertQuery.Statement())
	assert.Equal(t, "update", KindUpdateQuery.Statement())
	assert.Equal(t, "delete", KindDeleteQuery.Statement())
	assert.Equal(t, "", KindWhere.Statement())
	assert.Equal(t, "", KindUnknown.Statement())
}
