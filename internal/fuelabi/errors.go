package fuelabi

import "fmt"

// Fuel lowering error codes (E211-E219)
const (
	ErrShape       = "E211" // type lacks required type parameters or components
	ErrArity       = "E212" // wrong number of type arguments at a usage site
	ErrUnknownType = "E213" // reference to an undeclared type id
	ErrInvalidABI  = "E214" // document fails shape validation
)

// ShapeError reports a catalogue entry missing what its shape requires.
type ShapeError struct {
	TypeID    int    `json:"type_id"`
	TypeField string `json:"type_field"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("[%s] type %d (%s): %s", e.Code, e.TypeID, e.TypeField, e.Message)
}

// ArityError reports a reference whose type arguments do not match the
// referenced type's parameters.
type ArityError struct {
	TypeID int    `json:"type_id"`
	Field  string `json:"field,omitempty"`
	Want   int    `json:"want"`
	Got    int    `json:"got"`
	Code   string `json:"code"`
}

func (e *ArityError) Error() string {
	where := ""
	if e.Field != "" {
		where = fmt.Sprintf(" in %q", e.Field)
	}
	return fmt.Sprintf("[%s] reference to type %d%s: want %d type arguments, got %d", e.Code, e.TypeID, where, e.Want, e.Got)
}

// UnknownTypeError reports a reference to a type id absent from the
// catalogue.
type UnknownTypeError struct {
	TypeID int    `json:"type_id"`
	From   string `json:"from"`
	Code   string `json:"code"`
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("[%s] %s: unknown type id %d", e.Code, e.From, e.TypeID)
}

// ValidationError reports an ABI document that is not shaped like a Fuel ABI.
type ValidationError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] invalid Fuel ABI: %s", e.Code, e.Message)
}
