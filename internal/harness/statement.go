package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/stmtir/internal/builder"
	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/querysql"
)

// StatementSpec declares one statement. Which fields apply depends on Kind;
// validate rejects clauses the statement kind does not support.
type StatementSpec struct {
	// Kind is select, insert, update or delete.
	Kind string `yaml:"kind" json:"kind"`

	// Table is the target table ("name", "schema.name", "name as alias").
	Table string `yaml:"table" json:"table"`

	// From lists additional select tables.
	From []string `yaml:"from,omitempty" json:"from,omitempty"`

	Select   []string `yaml:"select,omitempty" json:"select,omitempty"`
	Distinct bool     `yaml:"distinct,omitempty" json:"distinct,omitempty"`

	// Insert clauses.
	Columns             []string `yaml:"columns,omitempty" json:"columns,omitempty"`
	Values              [][]any  `yaml:"values,omitempty" json:"values,omitempty"`
	OnConflictDoNothing bool     `yaml:"on_conflict_do_nothing,omitempty" json:"on_conflict_do_nothing,omitempty"`

	// Update assignments, applied in order.
	Set []Assignment `yaml:"set,omitempty" json:"set,omitempty"`

	// Filterable clauses (select, update, delete).
	Joins []JoinSpec  `yaml:"joins,omitempty" json:"joins,omitempty"`
	Where []Condition `yaml:"where,omitempty" json:"where,omitempty"`

	// Select-only clauses.
	OrderBy []OrderSpec `yaml:"order_by,omitempty" json:"order_by,omitempty"`
	Limit   *int64      `yaml:"limit,omitempty" json:"limit,omitempty"`
	Offset  *int64      `yaml:"offset,omitempty" json:"offset,omitempty"`

	// Returning applies to mutating statements (insert, update, delete).
	// Use "*" to return every column.
	Returning []string `yaml:"returning,omitempty" json:"returning,omitempty"`
}

// Condition is one comparison. Conditions combine left to right; Or
// combines a condition with everything before it using or instead of and.
type Condition struct {
	Ref      string `yaml:"ref" json:"ref"`
	Op       string `yaml:"op" json:"op"`
	Value    any    `yaml:"value,omitempty" json:"value,omitempty"`
	ValueRef string `yaml:"value_ref,omitempty" json:"value_ref,omitempty"`
	Or       bool   `yaml:"or,omitempty" json:"or,omitempty"`
}

// Assignment sets one column to a literal or to another column.
type Assignment struct {
	Column   string `yaml:"column" json:"column"`
	Value    any    `yaml:"value,omitempty" json:"value,omitempty"`
	ValueRef string `yaml:"value_ref,omitempty" json:"value_ref,omitempty"`
}

// JoinSpec joins Table on Left = Right. Left and Right may both be empty
// for a join without a condition.
type JoinSpec struct {
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
	Table string `yaml:"table" json:"table"`
	Left  string `yaml:"left,omitempty" json:"left,omitempty"`
	Right string `yaml:"right,omitempty" json:"right,omitempty"`
}

// OrderSpec is one order by item.
type OrderSpec struct {
	Ref       string `yaml:"ref" json:"ref"`
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// parseKind maps a scenario kind name to the statement node kind.
func parseKind(kind string) (node.Kind, error) {
	switch strings.ToLower(kind) {
	case "select":
		return node.KindSelectQuery, nil
	case "insert":
		return node.KindInsertQuery, nil
	case "update":
		return node.KindUpdateQuery, nil
	case "delete":
		return node.KindDeleteQuery, nil
	default:
		return node.KindUnknown, fmt.Errorf("unknown statement kind %q", kind)
	}
}

// prototype returns an empty statement of the given kind, used to ask the
// node package which clauses the kind supports.
func prototype(k node.Kind) node.Query {
	switch k {
	case node.KindSelectQuery:
		return node.CreateSelectQuery()
	case node.KindInsertQuery:
		return node.CreateInsertQuery(nil)
	case node.KindUpdateQuery:
		return node.CreateUpdateQuery(nil)
	default:
		return node.CreateDeleteQuery(nil)
	}
}

// validate checks the statement's clauses against its kind.
func (s *StatementSpec) validate() error {
	kind, err := parseKind(s.Kind)
	if err != nil {
		return err
	}
	if s.Table == "" {
		return fmt.Errorf("table is required")
	}

	proto := prototype(kind)
	name := kind.Statement()

	if (len(s.Where) > 0 || len(s.Joins) > 0) && !node.IsFilterable(proto) {
		return fmt.Errorf("where and joins are not supported on %s statements", name)
	}
	if len(s.Returning) > 0 && !node.IsMutating(proto) {
		return fmt.Errorf("returning is not supported on %s statements", name)
	}
	if kind != node.KindSelectQuery &&
		(len(s.From) > 0 || len(s.Select) > 0 || s.Distinct || len(s.OrderBy) > 0 || s.Limit != nil || s.Offset != nil) {
		return fmt.Errorf("from, select, distinct, order_by, limit and offset are select clauses, not %s", name)
	}
	if kind != node.KindInsertQuery && (len(s.Columns) > 0 || len(s.Values) > 0 || s.OnConflictDoNothing) {
		return fmt.Errorf("columns, values and on_conflict_do_nothing are insert clauses, not %s", name)
	}
	if kind != node.KindUpdateQuery && len(s.Set) > 0 {
		return fmt.Errorf("set is an update clause, not %s", name)
	}
	if kind == node.KindUpdateQuery && len(s.Set) == 0 {
		return fmt.Errorf("update requires at least one set assignment")
	}

	for i, c := range s.Where {
		if c.Ref == "" || c.Op == "" {
			return fmt.Errorf("where[%d]: ref and op are required", i)
		}
		if c.ValueRef != "" && c.Value != nil {
			return fmt.Errorf("where[%d]: value and value_ref are exclusive", i)
		}
	}
	for i, a := range s.Set {
		if a.Column == "" {
			return fmt.Errorf("set[%d]: column is required", i)
		}
		if a.ValueRef != "" && a.Value != nil {
			return fmt.Errorf("set[%d]: value and value_ref are exclusive", i)
		}
	}
	for i, j := range s.Joins {
		if j.Table == "" {
			return fmt.Errorf("joins[%d]: table is required", i)
		}
		if _, err := node.ParseJoinType(j.Type); err != nil {
			return fmt.Errorf("joins[%d]: %w", i, err)
		}
		if (j.Left == "") != (j.Right == "") {
			return fmt.Errorf("joins[%d]: left and right must be given together", i)
		}
	}

	return nil
}

// Build constructs and compiles the statement.
func (s *StatementSpec) Build() (*querysql.CompiledQuery, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	kind, _ := parseKind(s.Kind)

	switch kind {
	case node.KindSelectQuery:
		b := builder.SelectFrom(append([]string{s.Table}, s.From...)...).Select(s.Select...)
		if s.Distinct {
			b = b.Distinct()
		}
		b = applyFilters(b, s.Joins, s.Where)
		for _, o := range s.OrderBy {
			b = b.OrderBy(o.Ref, strings.ToLower(o.Direction))
		}
		if s.Limit != nil {
			b = b.Limit(*s.Limit)
		}
		if s.Offset != nil {
			b = b.Offset(*s.Offset)
		}
		return b.Compile()

	case node.KindInsertQuery:
		b := builder.InsertInto(s.Table).Columns(s.Columns...)
		for _, row := range s.Values {
			b = b.Values(row...)
		}
		if s.OnConflictDoNothing {
			b = b.OnConflictDoNothing()
		}
		b = applyReturning(b, s.Returning)
		return b.Compile()

	case node.KindUpdateQuery:
		b := builder.UpdateTable(s.Table)
		for _, a := range s.Set {
			b = b.Set(a.Column, operand(a.Value, a.ValueRef))
		}
		b = applyFilters(b, s.Joins, s.Where)
		b = applyReturning(b, s.Returning)
		return b.Compile()

	default:
		b := applyFilters(builder.DeleteFrom(s.Table), s.Joins, s.Where)
		b = applyReturning(b, s.Returning)
		return b.Compile()
	}
}

// filterBuilder is implemented by the select, update and delete builders.
type filterBuilder[B any] interface {
	Where(lhs, operator string, rhs any) B
	OrWhere(lhs, operator string, rhs any) B
	Join(joinType node.JoinType, table, left, right string) B
}

// returningBuilder is implemented by the insert, update and delete builders.
type returningBuilder[B any] interface {
	Returning(refs ...string) B
}

func applyFilters[B filterBuilder[B]](b B, joins []JoinSpec, where []Condition) B {
	for _, j := range joins {
		// Join types were checked by validate.
		jt, _ := node.ParseJoinType(j.Type)
		b = b.Join(jt, j.Table, j.Left, j.Right)
	}
	for _, c := range where {
		rhs := operand(c.Value, c.ValueRef)
		if c.Or {
			b = b.OrWhere(c.Ref, c.Op, rhs)
		} else {
			b = b.Where(c.Ref, c.Op, rhs)
		}
	}
	return b
}

func applyReturning[B returningBuilder[B]](b B, refs []string) B {
	if len(refs) == 0 {
		return b
	}
	return b.Returning(refs...)
}

func operand(v any, ref string) any {
	if ref != "" {
		return builder.Ref(ref)
	}
	return v
}
