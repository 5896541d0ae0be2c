package node

import "fmt"

// ErrorCode categorizes errors raised by this package.
type ErrorCode string

const (
	// ErrCodeCapabilityMismatch indicates a clone operation was applied to a
	// statement outside its capability group.
	ErrCodeCapabilityMismatch ErrorCode = "CAPABILITY_MISMATCH"
)

// Capability names a capability group.
type Capability string

const (
	CapabilityFilterable Capability = "filterable"
	CapabilityMutating   Capability = "mutating"
)

// CapabilityError reports a clone operation applied to a node lacking the
// required capability.
//
// This is a caller contract violation, not a recoverable condition: the
// Clone*Query functions panic with it rather than return it.
type CapabilityError struct {
	Code     ErrorCode
	Op       string
	Kind     Kind
	Required Capability
}

func newCapabilityError(op string, n Node, required Capability) *CapabilityError {
	return &CapabilityError{
		Code:     ErrCodeCapabilityMismatch,
		Op:       op,
		Kind:     kindOf(n),
		Required: required,
	}
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s requires a %s query, got %s", e.Code, e.Op, e.Required, e.Kind)
}
