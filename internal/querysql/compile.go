package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/value"
)

// Compiler renders statement nodes to parameterized SQLite SQL.
//
// Identifiers are always double-quoted. Values are never interpolated:
// every ValueNode becomes a ? placeholder and its value is appended to
// the parameter list in the order the placeholders appear.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile converts a statement node to SQL and its bound parameters.
func (c *Compiler) Compile(q node.Query) (*CompiledQuery, error) {
	if q == nil {
		return nil, invalid(node.KindUnknown, "cannot compile nil query")
	}

	var (
		sql    string
		params []value.Value
		err    error
	)
	switch query := q.(type) {
	case *node.SelectQueryNode:
		sql, params, err = c.compileSelect(query)
	case *node.InsertQueryNode:
		sql, params, err = c.compileInsert(query)
	case *node.UpdateQueryNode:
		sql, params, err = c.compileUpdate(query)
	case *node.DeleteQueryNode:
		sql, params, err = c.compileDelete(query)
	default:
		return nil, unsupported(q.Kind(), "unsupported query type %T", q)
	}
	if err != nil {
		return nil, err
	}

	return &CompiledQuery{
		SQL:         sql,
		Parameters:  params,
		Kind:        q.Kind(),
		ReturnsRows: returnsRows(q),
	}, nil
}

// compileSelect renders
// SELECT [DISTINCT] <selections> [FROM ...] [joins] [WHERE] [ORDER BY] [LIMIT] [OFFSET].
func (c *Compiler) compileSelect(q *node.SelectQueryNode) (string, []value.Value, error) {
	var sb strings.Builder
	var params []value.Value

	sb.WriteString("SELECT ")
	if q.Distinct() {
		sb.WriteString("DISTINCT ")
	}

	sel, selParams, err := c.compileSelections(q.Selections())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(sel)
	params = append(params, selParams...)

	if !q.From().IsEmpty() {
		tables := make([]string, 0, q.From().Len())
		for t := range q.From().Values() {
			tables = append(tables, compileTable(t))
		}
		sb.WriteString(" FROM ")
		sb.WriteString(strings.Join(tables, ", "))
	} else if !q.Joins().IsEmpty() {
		return "", nil, invalid(node.KindSelectQuery, "joins require a from table")
	}

	for j := range q.Joins().Values() {
		joinSQL, joinParams, err := c.compileJoin(j)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" ")
		sb.WriteString(joinSQL)
		params = append(params, joinParams...)
	}

	whereSQL, whereParams, err := c.compileWhere(q.Where())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(whereSQL)
	params = append(params, whereParams...)

	if !q.OrderBy().IsEmpty() {
		items := make([]string, 0, q.OrderBy().Len())
		for item := range q.OrderBy().Values() {
			itemSQL, itemParams, err := c.compileOperand(item.OrderBy())
			if err != nil {
				return "", nil, fmt.Errorf("compile order by: %w", err)
			}
			if item.Direction() != "" {
				itemSQL += " " + strings.ToUpper(string(item.Direction()))
			}
			items = append(items, itemSQL)
			params = append(params, itemParams...)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(items, ", "))
	}

	// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
	if q.Limit() != nil {
		sb.WriteString(" LIMIT ?")
		params = append(params, q.Limit().Value())
	} else if q.Offset() != nil {
		sb.WriteString(" LIMIT -1")
	}
	if q.Offset() != nil {
		sb.WriteString(" OFFSET ?")
		params = append(params, q.Offset().Value())
	}

	return sb.String(), params, nil
}

// compileInsert renders
// INSERT INTO <table> [(columns)] VALUES (...), ... [ON CONFLICT DO NOTHING] [RETURNING].
func (c *Compiler) compileInsert(q *node.InsertQueryNode) (string, []value.Value, error) {
	if q.Into() == nil {
		return "", nil, invalid(node.KindInsertQuery, "missing target table")
	}

	var sb strings.Builder
	var params []value.Value

	sb.WriteString("INSERT INTO ")
	sb.WriteString(compileTable(q.Into()))

	if !q.Columns().IsEmpty() {
		cols := make([]string, 0, q.Columns().Len())
		for col := range q.Columns().Values() {
			cols = append(cols, quoteIdent(col.Name()))
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	switch {
	case q.Values().IsEmpty() && q.Columns().IsEmpty():
		sb.WriteString(" DEFAULT VALUES")
	case q.Values().IsEmpty():
		return "", nil, invalid(node.KindInsertQuery, "columns given without values")
	default:
		rows := make([]string, 0, q.Values().Len())
		for i, row := range q.Values().All() {
			if !q.Columns().IsEmpty() && row.Values().Len() != q.Columns().Len() {
				return "", nil, invalid(node.KindInsertQuery,
					"row %d has %d values, expected %d", i, row.Values().Len(), q.Columns().Len())
			}
			rowSQL, rowParams, err := c.compileValueList(row)
			if err != nil {
				return "", nil, fmt.Errorf("compile row %d: %w", i, err)
			}
			rows = append(rows, rowSQL)
			params = append(params, rowParams...)
		}
		sb.WriteString(" VALUES ")
		sb.WriteString(strings.Join(rows, ", "))
	}

	if q.OnConflictDoNothing() {
		sb.WriteString(" ON CONFLICT DO NOTHING")
	}

	retSQL, retParams, err := c.compileReturning(q.Returning())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(retSQL)
	params = append(params, retParams...)

	return sb.String(), params, nil
}

// compileUpdate renders
// UPDATE <table> SET ... [FROM ...] [WHERE] [RETURNING].
//
// SQLite has no JOIN clause on UPDATE. Joins are rendered through
// UPDATE ... FROM: the first join's table becomes the FROM table, later
// joins keep their own clause, and the first join's condition moves into
// WHERE ahead of the statement's own filter.
func (c *Compiler) compileUpdate(q *node.UpdateQueryNode) (string, []value.Value, error) {
	if q.Table() == nil {
		return "", nil, invalid(node.KindUpdateQuery, "missing target table")
	}
	if q.Updates().IsEmpty() {
		return "", nil, invalid(node.KindUpdateQuery, "no column assignments")
	}

	var sb strings.Builder
	var params []value.Value

	sb.WriteString("UPDATE ")
	sb.WriteString(compileTable(q.Table()))
	sb.WriteString(" SET ")

	sets := make([]string, 0, q.Updates().Len())
	for u := range q.Updates().Values() {
		valSQL, valParams, err := c.compileOperand(u.Value())
		if err != nil {
			return "", nil, fmt.Errorf("compile set %s: %w", u.Column().Name(), err)
		}
		sets = append(sets, quoteIdent(u.Column().Name())+" = "+valSQL)
		params = append(params, valParams...)
	}
	sb.WriteString(strings.Join(sets, ", "))

	var firstOn node.Predicate
	if first, ok := firstJoin(q.Joins()); ok {
		switch first.JoinType() {
		case node.InnerJoin, node.CrossJoin:
		default:
			return "", nil, unsupported(node.KindJoin,
				"update cannot start with a %s", first.JoinType())
		}
		sb.WriteString(" FROM ")
		sb.WriteString(compileTable(first.Table()))
		if first.On() != nil {
			firstOn = first.On().On()
		}

		for i, j := range q.Joins().All() {
			if i == 0 {
				continue
			}
			joinSQL, joinParams, err := c.compileJoin(j)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(" ")
			sb.WriteString(joinSQL)
			params = append(params, joinParams...)
		}
	}

	where := q.Where()
	if firstOn != nil {
		if where == nil {
			where = node.CreateWhere(firstOn)
		} else {
			where = node.CreateWhere(node.CreateAnd(firstOn, where.Where()))
		}
	}
	whereSQL, whereParams, err := c.compileWhere(where)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(whereSQL)
	params = append(params, whereParams...)

	retSQL, retParams, err := c.compileReturning(q.Returning())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(retSQL)
	params = append(params, retParams...)

	return sb.String(), params, nil
}

// compileDelete renders DELETE FROM <table> [WHERE] [RETURNING].
func (c *Compiler) compileDelete(q *node.DeleteQueryNode) (string, []value.Value, error) {
	if q.From() == nil {
		return "", nil, invalid(node.KindDeleteQuery, "missing target table")
	}
	if !q.Joins().IsEmpty() {
		return "", nil, unsupported(node.KindJoin, "sqlite does not support joins on delete")
	}

	var sb strings.Builder
	var params []value.Value

	sb.WriteString("DELETE FROM ")
	sb.WriteString(compileTable(q.From()))

	whereSQL, whereParams, err := c.compileWhere(q.Where())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(whereSQL)
	params = append(params, whereParams...)

	retSQL, retParams, err := c.compileReturning(q.Returning())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(retSQL)
	params = append(params, retParams...)

	return sb.String(), params, nil
}

// compileWhere renders " WHERE <predicate>", or nothing for a nil clause.
func (c *Compiler) compileWhere(w *node.WhereNode) (string, []value.Value, error) {
	if w == nil {
		return "", nil, nil
	}
	sql, params, err := c.compilePredicate(w.Where())
	if err != nil {
		return "", nil, fmt.Errorf("compile where: %w", err)
	}
	return " WHERE " + sql, params, nil
}

func (c *Compiler) compileJoin(j *node.JoinNode) (string, []value.Value, error) {
	if j.Table() == nil {
		return "", nil, invalid(node.KindJoin, "missing join table")
	}
	sql := strings.ToUpper(string(j.JoinType())) + " " + compileTable(j.Table())
	if j.On() == nil {
		return sql, nil, nil
	}
	if j.JoinType() == node.CrossJoin {
		return "", nil, unsupported(node.KindOn, "cross join cannot have a condition")
	}
	onSQL, params, err := c.compilePredicate(j.On().On())
	if err != nil {
		return "", nil, fmt.Errorf("compile join on: %w", err)
	}
	return sql + " ON " + onSQL, params, nil
}

// compileReturning renders " RETURNING <selections>", or nothing for a nil clause.
func (c *Compiler) compileReturning(r *node.ReturningNode) (string, []value.Value, error) {
	if r == nil {
		return "", nil, nil
	}
	sql, params, err := c.compileSelections(r.Selections())
	if err != nil {
		return "", nil, fmt.Errorf("compile returning: %w", err)
	}
	return " RETURNING " + sql, params, nil
}

// compileSelections renders a selection list. An empty list selects *.
func (c *Compiler) compileSelections(selections node.List[*node.SelectionNode]) (string, []value.Value, error) {
	if selections.IsEmpty() {
		return "*", nil, nil
	}

	parts := make([]string, 0, selections.Len())
	var params []value.Value
	for s := range selections.Values() {
		sql, p, err := c.compileOperand(s.Selection())
		if err != nil {
			return "", nil, err
		}
		if s.Alias() != "" {
			sql += " AS " + quoteIdent(s.Alias())
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}
	return strings.Join(parts, ", "), params, nil
}

// compilePredicate renders a filter expression.
//
// And and Or chains are left-associative in the tree. A chain nested inside
// the other connective is parenthesised so the rendered SQL keeps the
// tree's grouping regardless of operator precedence.
func (c *Compiler) compilePredicate(p node.Predicate) (string, []value.Value, error) {
	switch pred := p.(type) {
	case *node.BinaryOperationNode:
		return c.compileBinaryOperation(pred)
	case *node.AndNode:
		return c.compileConnective("AND", node.KindAnd, pred.Left(), pred.Right())
	case *node.OrNode:
		return c.compileConnective("OR", node.KindOr, pred.Left(), pred.Right())
	case *node.ParensNode:
		sql, params, err := c.compilePredicate(pred.Inner())
		if err != nil {
			return "", nil, err
		}
		return "(" + sql + ")", params, nil
	case nil:
		return "", nil, invalid(node.KindUnknown, "nil predicate")
	default:
		return "", nil, unsupported(p.Kind(), "unsupported predicate type %T", p)
	}
}

func (c *Compiler) compileConnective(keyword string, kind node.Kind, left, right node.Predicate) (string, []value.Value, error) {
	leftSQL, leftParams, err := c.compilePredicate(left)
	if err != nil {
		return "", nil, err
	}
	rightSQL, rightParams, err := c.compilePredicate(right)
	if err != nil {
		return "", nil, err
	}
	if needsGrouping(left, kind) {
		leftSQL = "(" + leftSQL + ")"
	}
	if needsGrouping(right, kind) {
		rightSQL = "(" + rightSQL + ")"
	}
	return leftSQL + " " + keyword + " " + rightSQL, append(leftParams, rightParams...), nil
}

// needsGrouping reports whether p is a connective of a different kind than
// its parent.
func needsGrouping(p node.Predicate, parent node.Kind) bool {
	switch p.(type) {
	case *node.AndNode, *node.OrNode:
		return p.Kind() != parent
	default:
		return false
	}
}

func (c *Compiler) compileBinaryOperation(op *node.BinaryOperationNode) (string, []value.Value, error) {
	if _, err := node.ParseOperator(string(op.Operator())); err != nil {
		return "", nil, unsupported(node.KindBinaryOperation, "%v", err)
	}

	leftSQL, leftParams, err := c.compileOperand(op.Left())
	if err != nil {
		return "", nil, err
	}
	rightSQL, rightParams, err := c.compileOperand(op.Right())
	if err != nil {
		return "", nil, err
	}

	sql := leftSQL + " " + strings.ToUpper(string(op.Operator())) + " " + rightSQL
	return sql, append(leftParams, rightParams...), nil
}

// compileOperand renders a leaf expression.
func (c *Compiler) compileOperand(o node.Operand) (string, []value.Value, error) {
	switch operand := o.(type) {
	case *node.ReferenceNode:
		return compileReference(operand), nil, nil
	case *node.ValueNode:
		return "?", []value.Value{operand.Value()}, nil
	case *node.ValueListNode:
		return c.compileValueList(operand)
	case nil:
		return "", nil, invalid(node.KindUnknown, "nil operand")
	default:
		return "", nil, unsupported(o.Kind(), "unsupported operand type %T", o)
	}
}

// compileValueList renders "(a, b, ...)". An empty list renders "()" which
// SQLite accepts on the right of IN.
func (c *Compiler) compileValueList(list *node.ValueListNode) (string, []value.Value, error) {
	parts := make([]string, 0, list.Values().Len())
	var params []value.Value
	for v := range list.Values().Values() {
		sql, p, err := c.compileOperand(v)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}
	return "(" + strings.Join(parts, ", ") + ")", params, nil
}

func compileReference(r *node.ReferenceNode) string {
	var prefix string
	if r.Table() != nil {
		prefix = quoteIdent(r.Table().RefName()) + "."
	}
	if r.IsSelectAll() {
		return prefix + "*"
	}
	return prefix + quoteIdent(r.Column().Name())
}

func compileTable(t *node.TableNode) string {
	sql := quoteIdent(t.Name())
	if t.Schema() != "" {
		sql = quoteIdent(t.Schema()) + "." + sql
	}
	if t.Alias() != "" {
		sql += " AS " + quoteIdent(t.Alias())
	}
	return sql
}

// quoteIdent wraps an identifier in double quotes, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func returnsRows(q node.Query) bool {
	if m, ok := q.(node.MutatingQuery); ok {
		return m.Returning() != nil
	}
	return node.IsSelectQuery(q)
}

func firstJoin(joins node.List[*node.JoinNode]) (*node.JoinNode, bool) {
	if joins.IsEmpty() {
		return nil, false
	}
	return joins.At(0), true
}
