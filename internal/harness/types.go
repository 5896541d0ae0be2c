package harness

import "github.com/roach88/stmtir/internal/value"

// Trace event types.
const (
	EventStatement = "statement"
	EventResult    = "result"
	EventError     = "error"
)

// TraceEvent is one entry of a scenario trace. A step produces a statement
// event when it compiles, then either a result or an error event.
type TraceEvent struct {
	Type string `json:"type"` // "statement", "result" or "error"
	Seq  int64  `json:"seq"`
	Step string `json:"step"`

	// statement events
	Kind    string        `json:"kind,omitempty"`
	SQL     string        `json:"sql,omitempty"`
	Params  []value.Value `json:"params,omitempty"`
	QueryID string        `json:"query_id,omitempty"`

	// result events
	Rows         []map[string]value.Value `json:"rows,omitempty"`
	RowsAffected int64                    `json:"rows_affected,omitempty"`

	// error events
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every step expectation and assertion holds.
	Pass bool `json:"pass"`

	// Trace contains statement, result and error events in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStatementTrace records a compiled statement.
func (r *Result) AddStatementTrace(step, kind, sql string, params []value.Value, queryID string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    EventStatement,
		Seq:     seq,
		Step:    step,
		Kind:    kind,
		SQL:     sql,
		Params:  params,
		QueryID: queryID,
	})
}

// AddResultTrace records the outcome of executing a statement.
func (r *Result) AddResultTrace(step string, rows []map[string]value.Value, rowsAffected int64, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:         EventResult,
		Seq:          seq,
		Step:         step,
		Rows:         rows,
		RowsAffected: rowsAffected,
	})
}

// AddErrorTrace records a failed build, compile or execution.
func (r *Result) AddErrorTrace(step, message string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    EventError,
		Seq:     seq,
		Step:    step,
		Message: message,
	})
}

// Statements returns the statement events in order.
func (r *Result) Statements() []TraceEvent {
	var out []TraceEvent
	for _, e := range r.Trace {
		if e.Type == EventStatement {
			out = append(out, e)
		}
	}
	return out
}
