package cli

import (
	"errors"

	"github.com/roach88/indexgen/internal/config"
	"github.com/roach88/indexgen/internal/evmabi"
	"github.com/roach88/indexgen/internal/fuelabi"
	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/resolve"
	"github.com/roach88/indexgen/internal/schema"
)

// Error code constants for failures outside lowering and resolution.
// Lowering, resolution and schema errors keep their own codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // Input file unreadable
	ErrCodeConfig      = "E004" // Project configuration invalid
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeCache       = "E008" // Generation cache error
)

// codedError attaches a CLI error code to an error.
type codedError struct {
	code string
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code string, err error) error {
	return &codedError{code: code, err: err}
}

// ErrorCode returns the stable diagnostic code carried by err.
func ErrorCode(err error) string {
	var (
		coded      *codedError
		shape      *fuelabi.ShapeError
		arity      *fuelabi.ArityError
		unknown    *fuelabi.UnknownTypeError
		invalidABI *fuelabi.ValidationError
		evm        *evmabi.UnsupportedError
		decl       ir.ValidationError
		unresolved *resolve.UnresolvedError
		cycle      *resolve.CycleError
		schemaErr  *schema.Error
		cfg        *config.Error
	)
	switch {
	case errors.As(err, &coded):
		return coded.code
	case errors.As(err, &shape):
		return shape.Code
	case errors.As(err, &arity):
		return arity.Code
	case errors.As(err, &unknown):
		return unknown.Code
	case errors.As(err, &invalidABI):
		return invalidABI.Code
	case errors.As(err, &evm):
		return evm.Code
	case errors.As(err, &decl):
		return decl.Code
	case errors.As(err, &unresolved):
		return unresolved.Code
	case errors.As(err, &cycle):
		return cycle.Code
	case errors.As(err, &schemaErr):
		return schemaErr.Code
	case errors.As(err, &cfg):
		return ErrCodeConfig
	}
	return ErrCodeGeneric
}
