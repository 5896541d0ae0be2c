package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
	"github.com/roach88/stmtir/internal/value"
)

func TestBuilders_Compile(t *testing.T) {
	testCases := []struct {
		name       string
		compile    func() (string, []value.Value, error)
		wantSQL    string
		wantParams []value.Value
	}{
		{
			name: "select with where and or",
			compile: wrap(SelectFrom("person").
				Select("id", "first_name as name").
				Where("age", ">=", 18).
				OrWhere("first_name", "like", "J%").
				Where("last_name", "!=", "Smith").
				Compile),
			wantSQL:    `SELECT "id", "first_name" AS "name" FROM "person" WHERE ("age" >= ? OR "first_name" LIKE ?) AND "last_name" <> ?`,
			wantParams: []value.Value{value.Int(18), value.String("J%"), value.String("Smith")},
		},
		{
			name: "select with joins order limit",
			compile: wrap(SelectFrom("person as p").
				Select("p.id", "pet.name as pet_name").
				InnerJoin("pet", "pet.owner_id", "p.id").
				LeftJoin("toy", "toy.pet_id", "pet.id").
				Where("pet.species", "in", []string{"cat", "dog"}).
				OrderBy("p.id", "desc").
				Limit(5).
				Offset(10).
				Compile),
			wantSQL: `SELECT "p"."id", "pet"."name" AS "pet_name" FROM "person" AS "p" ` +
				`INNER JOIN "pet" ON "pet"."owner_id" = "p"."id" ` +
				`LEFT JOIN "toy" ON "toy"."pet_id" = "pet"."id" ` +
				`WHERE "pet"."species" IN (?, ?) ORDER BY "p"."id" DESC LIMIT ? OFFSET ?`,
			wantParams: []value.Value{value.String("cat"), value.String("dog"), value.Int(5), value.Int(10)},
		},
		{
			name: "select compares columns",
			compile: wrap(SelectFrom("person", "pet").
				Select("*").
				Where("pet.owner_id", "=", Ref("person.id")).
				Compile),
			wantSQL: `SELECT * FROM "person", "pet" WHERE "pet"."owner_id" = "person"."id"`,
		},
		{
			name: "select null check",
			compile: wrap(SelectFrom("main.person").
				Distinct().
				Select("person.*").
				Where("deleted_at", "is", nil).
				Compile),
			wantSQL:    `SELECT DISTINCT "person".* FROM "main"."person" WHERE "deleted_at" IS ?`,
			wantParams: []value.Value{value.Null{}},
		},
		{
			name: "insert",
			compile: wrap(InsertInto("person").
				Columns("first_name", "age").
				Values("Jennifer", 40).
				Values("Arnold", nil).
				OnConflictDoNothing().
				Returning("id").
				Compile),
			wantSQL:    `INSERT INTO "person" ("first_name", "age") VALUES (?, ?), (?, ?) ON CONFLICT DO NOTHING RETURNING "id"`,
			wantParams: []value.Value{value.String("Jennifer"), value.Int(40), value.String("Arnold"), value.Null{}},
		},
		{
			name: "update with join",
			compile: wrap(UpdateTable("person").
				Set("has_pets", true).
				InnerJoin("pet", "pet.owner_id", "person.id").
				Where("pet.species", "=", "cat").
				Returning("person.id", "person.has_pets").
				Compile),
			wantSQL: `UPDATE "person" SET "has_pets" = ? FROM "pet" ` +
				`WHERE "pet"."owner_id" = "person"."id" AND "pet"."species" = ? ` +
				`RETURNING "person"."id", "person"."has_pets"`,
			wantParams: []value.Value{value.Bool(true), value.String("cat")},
		},
		{
			name: "update set from column",
			compile: wrap(UpdateTable("person").
				Set("nickname", Ref("first_name")).
				Compile),
			wantSQL: `UPDATE "person" SET "nickname" = "first_name"`,
		},
		{
			name: "delete",
			compile: wrap(DeleteFrom("person").
				Where("id", "=", 1).
				OrWhere("id", "=", 2).
				Returning().
				Compile),
			wantSQL:    `DELETE FROM "person" WHERE "id" = ? OR "id" = ? RETURNING *`,
			wantParams: []value.Value{value.Int(1), value.Int(2)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql, params, err := tc.compile()
			require.NoError(t, err)

			assert.Equal(t, tc.wantSQL, sql)
			assert.Equal(t, tc.wantParams, params)
		})
	}
}

func TestBuilders_BranchingIsSafe(t *testing.T) {
	base := SelectFrom("person").Where("age", ">=", 18)

	a := base.Where("first_name", "=", "Jennifer")
	b := base.OrWhere("first_name", "=", "Arnold")

	baseNode, err := base.ToNode()
	require.NoError(t, err)
	aNode, err := a.ToNode()
	require.NoError(t, err)
	bNode, err := b.ToNode()
	require.NoError(t, err)

	assert.IsType(t, &node.BinaryOperationNode{}, baseNode.Where().Where())
	assert.IsType(t, &node.AndNode{}, aNode.Where().Where())
	assert.IsType(t, &node.OrNode{}, bNode.Where().Where())
}

func TestBuilders_FirstErrorSticks(t *testing.T) {
	b := SelectFrom("person").
		Where("age", "==", 18).
		Where("", "=", 1)

	_, err := b.ToNode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operator")

	_, err = b.Compile()
	require.Error(t, err)
}

func TestBuilders_InvalidBoolOpIsDeferred(t *testing.T) {
	p := node.CreateBinaryOperation(node.CreateReference("b"), node.OpEqual, node.CreateValue(value.Int(2)))
	xor := node.BoolOp("xor")

	testCases := []struct {
		name  string
		build func() error
	}{
		{"select first filter", func() error { _, err := SelectFrom("t").WhereExpr(xor, p).ToNode(); return err }},
		{"select later filter", func() error {
			_, err := SelectFrom("t").Where("a", "=", 1).WhereExpr(xor, p).ToNode()
			return err
		}},
		{"update first filter", func() error { _, err := UpdateTable("t").Set("a", 1).WhereExpr(xor, p).ToNode(); return err }},
		{"delete later filter", func() error {
			_, err := DeleteFrom("t").Where("a", "=", 1).WhereExpr(xor, p).ToNode()
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tc.build() })
			require.Error(t, err)
			assert.Contains(t, err.Error(), `invalid boolean operator "xor"`)
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		compile  func() (string, []value.Value, error)
		contains string
	}{
		{"empty table", wrap(SelectFrom("").Compile), "empty table name"},
		{"float value", wrap(SelectFrom("t").Where("a", "=", 1.5).Compile), "floats are not supported"},
		{"bad direction", wrap(SelectFrom("t").OrderBy("a", "up").Compile), "invalid order direction"},
		{"negative limit", wrap(SelectFrom("t").Limit(-1).Compile), "negative limit"},
		{"bad join reference", wrap(SelectFrom("t").InnerJoin("u", ".a", "t.a").Compile), "invalid reference"},
		{"aliased star", wrap(SelectFrom("t").Select("* as everything").Compile), "cannot alias"},
		{"unsupported value", wrap(InsertInto("t").Columns("a").Values(struct{}{}).Compile), "unsupported value type"},
		{"update without set", wrap(UpdateTable("t").Where("a", "=", 1).Compile), "no column assignments"},
		{"delete join", wrap(DeleteFrom("t").Join(node.InnerJoin, "u", "u.t_id", "t.id").Compile), "joins on delete"},
		{"nil predicate", wrap(DeleteFrom("t").WhereExpr(node.And, nil).Compile), "nil predicate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.compile()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestParseReference(t *testing.T) {
	r, err := parseReference("main.person.id")
	require.NoError(t, err)
	assert.Equal(t, "main", r.Table().Schema())
	assert.Equal(t, "person", r.Table().Name())
	assert.Equal(t, "id", r.Column().Name())

	r, err = parseReference("*")
	require.NoError(t, err)
	assert.True(t, r.IsSelectAll())
	assert.Nil(t, r.Table())
}

func TestSplitAlias(t *testing.T) {
	valid := []struct {
		input, expr, alias string
	}{
		{"person", "person", ""},
		{"person  AS p", "person", "p"},
		{"main.person as p", "main.person", "p"},
		{"as", "as", ""},
		{"  ", "", ""},
	}
	for _, tc := range valid {
		t.Run(tc.input, func(t *testing.T) {
			expr, alias, err := splitAlias(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expr, expr)
			assert.Equal(t, tc.alias, alias)
		})
	}

	for _, input := range []string{"person p", "x as", "a b as c", "x as y z", "x alias y"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := splitAlias(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid name")
		})
	}
}

func TestBuilders_RejectMalformedAliases(t *testing.T) {
	_, err := SelectFrom("person p").ToNode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid name "person p"`)

	_, err = SelectFrom("person").Select("x as").ToNode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid name "x as"`)

	_, err = InsertInto("person").Columns("id").Values(1).Returning("id as").ToNode()
	require.Error(t, err)
}

// wrap adapts a builder's Compile method for table-driven tests.
func wrap(compile func() (*querysql.CompiledQuery, error)) func() (string, []value.Value, error) {
	return func() (string, []value.Value, error) {
		compiled, err := compile()
		if err != nil {
			return "", nil, err
		}
		return compiled.SQL, compiled.Parameters, nil
	}
}
