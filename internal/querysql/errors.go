package querysql

import (
	"errors"
	"fmt"

	"github.com/roach88/stmtir/internal/node"
)

var (
	// ErrUnsupportedNode is returned when a node has no SQL rendering in
	// the position it appears in.
	ErrUnsupportedNode = errors.New("unsupported node")

	// ErrInvalidQuery is returned when a statement is structurally
	// incomplete, such as an update without assignments.
	ErrInvalidQuery = errors.New("invalid query")
)

// CompileError reports where compilation stopped.
type CompileError struct {
	Kind   node.Kind // kind of the node being compiled
	Reason string
	Err    error // ErrUnsupportedNode or ErrInvalidQuery
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Kind, e.Reason)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func unsupported(kind node.Kind, format string, args ...any) error {
	return &CompileError{Kind: kind, Reason: fmt.Sprintf(format, args...), Err: ErrUnsupportedNode}
}

func invalid(kind node.Kind, format string, args ...any) error {
	return &CompileError{Kind: kind, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidQuery}
}

// IsUnsupportedNode reports whether err stems from a node the compiler
// cannot render.
func IsUnsupportedNode(err error) bool {
	return errors.Is(err, ErrUnsupportedNode)
}
