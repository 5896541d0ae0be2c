package querysql

import (
	"fmt"

	"github.com/roach88/stmtir/internal/node"
	"github.com/roach88/stmtir/internal/value"
)

// QueryIDDomain separates compiled query hashes from other content hashes.
const QueryIDDomain = "stmtir/query/v1"

// CompiledQuery is SQL text plus the parameters bound to its placeholders.
type CompiledQuery struct {
	SQL        string
	Parameters []value.Value
	Kind       node.Kind

	// ReturnsRows is true for selects and for statements with a
	// returning clause.
	ReturnsRows bool
}

// Args returns the parameters as driver arguments for database/sql.
func (q *CompiledQuery) Args() []any {
	args := make([]any, len(q.Parameters))
	for i, p := range q.Parameters {
		args[i] = value.ToAny(p)
	}
	return args
}

// ID returns a content address for the query: the hash of the canonical
// JSON form of {"parameters": [...], "sql": "..."}. Two compilations of
// structurally identical statements share an ID. SQL text and parameters
// are hashed byte for byte, without Unicode normalization.
func (q *CompiledQuery) ID() (string, error) {
	params := q.Parameters
	if params == nil {
		params = []value.Value{}
	}
	data, err := value.MarshalCanonical(map[string]any{
		"sql":        value.String(q.SQL),
		"parameters": params,
	})
	if err != nil {
		return "", fmt.Errorf("marshal compiled query: %w", err)
	}
	return value.Hash(QueryIDDomain, data), nil
}
