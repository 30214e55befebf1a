package bom

import "errors"

// Authoring and data-integrity errors. None of them is transient: a run that
// hits one must stop and show it to the operator.
var (
	ErrInvalidIdentifier      = errors.New("invalid identifier")
	ErrDuplicateComponent     = errors.New("duplicate component")
	ErrNotFound               = errors.New("component not found")
	ErrNotAssembly            = errors.New("component is not an assembly")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrCyclicAssembly         = errors.New("cyclic assembly")
	ErrMissingComponent       = errors.New("missing component")
	ErrUnknownPartNumberShape = errors.New("unknown part number shape")
	ErrFilenameMismatch       = errors.New("filename does not match part number")
	ErrSubtotalMismatch       = errors.New("subtotal mismatch")
	ErrOrphanedFiles          = errors.New("orphaned files")
	ErrInvalidRecord          = errors.New("invalid record")
	ErrMissingDirectory       = errors.New("missing directory")
	ErrMissingConfig          = errors.New("missing configuration")
	ErrInvalidSystemSection   = errors.New("invalid system section")
	ErrInvalidPartNumber      = errors.New("invalid part number")
)
