package builder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/value"
)

// Ref marks a string argument as a column reference instead of a literal.
//
//	Where("pet.owner_id", "=", Ref("person.id"))
type Ref string

// parseTable parses "name", "schema.name" and either form followed by
// "as alias".
func parseTable(s string) (*node.TableNode, error) {
	name, alias, err := splitAlias(s)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("empty table name in %q", s)
	}

	var table *node.TableNode
	if schema, rest, ok := strings.Cut(name, "."); ok {
		if schema == "" || rest == "" {
			return nil, fmt.Errorf("invalid table name %q", s)
		}
		table = node.CreateTableWithSchema(schema, rest)
	} else {
		table = node.CreateTable(name)
	}
	if alias != "" {
		table = table.WithAlias(alias)
	}
	return table, nil
}

// parseReference parses "column", "table.column", "*" and "table.*".
func parseReference(s string) (*node.ReferenceNode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference")
	}
	if s == "*" {
		return node.CreateSelectAll(nil), nil
	}

	i := strings.LastIndex(s, ".")
	if i < 0 {
		return node.CreateReference(s), nil
	}
	tableName, column := s[:i], s[i+1:]
	if tableName == "" || column == "" {
		return nil, fmt.Errorf("invalid reference %q", s)
	}
	table, err := parseTable(tableName)
	if err != nil {
		return nil, err
	}
	if column == "*" {
		return node.CreateSelectAll(table), nil
	}
	return node.CreateTableReference(table, column), nil
}

// parseSelection parses a reference with an optional "as alias".
func parseSelection(s string) (*node.SelectionNode, error) {
	expr, alias, err := splitAlias(s)
	if err != nil {
		return nil, err
	}
	ref, err := parseReference(expr)
	if err != nil {
		return nil, err
	}
	if alias != "" {
		if ref.IsSelectAll() {
			return nil, fmt.Errorf("cannot alias %q", expr)
		}
		return node.CreateAliasedSelection(ref, alias), nil
	}
	return node.CreateSelection(ref), nil
}

func parseSelections(refs []string) ([]*node.SelectionNode, error) {
	out := make([]*node.SelectionNode, 0, len(refs))
	for _, r := range refs {
		s, err := parseSelection(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// splitAlias accepts a single name or "name as alias" (as is matched
// case-insensitively). Anything else, such as "person p" or "x as", is an
// error. Blank input yields an empty name for the caller to reject.
func splitAlias(s string) (string, string, error) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 0:
		return "", "", nil
	case len(fields) == 1:
		return fields[0], "", nil
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return fields[0], fields[2], nil
	default:
		return "", "", fmt.Errorf("invalid name %q: want \"name\" or \"name as alias\"", s)
	}
}

// toOperand converts the right-hand side of a comparison. Ref values become
// references, slices become value lists, everything else must convert via
// value.FromAny.
func toOperand(v any) (node.Operand, error) {
	switch val := v.(type) {
	case Ref:
		return parseReference(string(val))
	case node.Operand:
		return val, nil
	case []byte:
		return node.CreateValue(value.String(val)), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		items := make([]node.Operand, 0, rv.Len())
		for i := range rv.Len() {
			item, err := toOperand(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return node.CreateValueList(items...), nil
	}

	val, err := value.FromAny(v)
	if err != nil {
		return nil, err
	}
	return node.CreateValue(val), nil
}

// comparison builds `lhs operator rhs`.
func comparison(lhs, operator string, rhs any) (node.Predicate, error) {
	left, err := parseReference(lhs)
	if err != nil {
		return nil, err
	}
	op, err := node.ParseOperator(operator)
	if err != nil {
		return nil, err
	}
	right, err := toOperand(rhs)
	if err != nil {
		return nil, fmt.Errorf("compare %s: %w", lhs, err)
	}
	return node.CreateBinaryOperation(left, op, right), nil
}
