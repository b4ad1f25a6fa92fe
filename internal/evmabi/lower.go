package evmabi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/schema"
)

// Lowering error codes (E201-E209)
const (
	ErrTupleParam      = "E201" // tuple parameters cannot be imported
	ErrUnsupportedType = "E202" // type string not recognized
)

// UnsupportedError reports an ABI parameter that cannot be lowered.
type UnsupportedError struct {
	Param   string `json:"param"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("[%s] param %q (%s): %s", e.Code, e.Param, e.Type, e.Message)
}

// LowerParam maps an ABI parameter to its type identifier and the schema
// field type of an imported entity. Event arguments are always present, so
// field types are never nullable.
func LowerParam(p Param) (ir.TypeIdent, schema.FieldType, error) {
	return lowerType(p.Name, p.Type)
}

func lowerType(param, typ string) (ir.TypeIdent, schema.FieldType, error) {
	if elem, ok := arrayElem(typ); ok {
		inner, ft, err := lowerType(param, elem)
		if err != nil {
			return nil, schema.FieldType{}, err
		}
		return ir.NewArray(inner), schema.ListOf(ft), nil
	}

	switch {
	case strings.HasPrefix(typ, "tuple"):
		return nil, schema.FieldType{}, &UnsupportedError{
			Param:   param,
			Type:    typ,
			Message: "tuple parameters are not supported in contract import",
			Code:    ErrTupleParam,
		}
	case typ == "bool":
		return ir.NewScalar(ir.Bool), schema.NamedType("Boolean"), nil
	case typ == "address", typ == "string":
		return ir.NewScalar(ir.String), schema.NamedType("String"), nil
	case typ == "bytes", isSized(typ, "bytes", 1, 32, 1):
		return ir.NewScalar(ir.String), schema.NamedType("String"), nil
	case isSized(typ, "uint", 8, 256, 8), isSized(typ, "int", 8, 256, 8):
		return ir.NewScalar(ir.BigInt), schema.NamedType("BigInt"), nil
	}
	return nil, schema.FieldType{}, &UnsupportedError{
		Param:   param,
		Type:    typ,
		Message: "unsupported parameter type",
		Code:    ErrUnsupportedType,
	}
}

// arrayElem strips the outermost array suffix: uint8[2][] → uint8[2].
func arrayElem(typ string) (string, bool) {
	if !strings.HasSuffix(typ, "]") {
		return "", false
	}
	open := strings.LastIndexByte(typ, '[')
	if open <= 0 {
		return "", false
	}
	if size := typ[open+1 : len(typ)-1]; size != "" {
		if n, err := strconv.Atoi(size); err != nil || n <= 0 {
			return "", false
		}
	}
	return typ[:open], true
}

// isSized reports whether typ is prefix, or prefix followed by a size in
// [lo, hi] that is a multiple of step. A bare prefix is allowed only for the
// integer types, where it aliases the 256-bit width.
func isSized(typ, prefix string, lo, hi, step int) bool {
	rest, ok := strings.CutPrefix(typ, prefix)
	if !ok {
		return false
	}
	if rest == "" {
		return prefix != "bytes"
	}
	n, err := strconv.Atoi(rest)
	if err != nil || strings.HasPrefix(rest, "0") {
		return false
	}
	return n >= lo && n <= hi && n%step == 0
}
