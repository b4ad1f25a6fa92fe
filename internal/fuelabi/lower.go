package fuelabi

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/roach88/indexgen/internal/ir"
)

// DeclName is the declaration name of catalogue entry id.
func DeclName(id int) string {
	return "type" + strconv.Itoa(id)
}

// LowerTypes lowers every concrete catalogue entry, in catalogue order.
// Entries with an unrecognized type field lower to an unknown alias and are
// reported on logger; every other failure is returned.
func LowerTypes(abi *ABI, logger zerolog.Logger) ([]ir.FuelType, error) {
	var out []ir.FuelType
	for _, entry := range abi.Types {
		shape := Classify(entry.Type)
		if shape == Generic {
			continue
		}
		decl, err := lowerEntry(abi, entry, shape, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, ir.FuelType{Decl: decl, TypeID: entry.TypeID, TypeField: entry.Type})
	}
	return out, nil
}

// Decls collects lowered types into one declaration set.
func Decls(types []ir.FuelType) (*ir.TypeDeclMulti, error) {
	set, err := ir.NewTypeDeclMulti()
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if err := set.Add(t.Decl); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func lowerEntry(abi *ABI, entry TypeEntry, shape Shape, logger zerolog.Logger) (ir.TypeDecl, error) {
	params, err := typeParams(abi, entry)
	if err != nil {
		return ir.TypeDecl{}, err
	}
	name := DeclName(entry.TypeID)
	shapeErr := func(msg string) error {
		return &ShapeError{TypeID: entry.TypeID, TypeField: entry.Type, Message: msg, Code: ErrShape}
	}

	var body ir.TypeExpr
	switch shape {
	case Unit:
		body = ir.Alias(ir.NewScalar(ir.Unit))
	case Bool:
		body = ir.Alias(ir.NewScalar(ir.Bool))
	case SmallInt:
		body = ir.Alias(ir.NewScalar(ir.Int))
	case BigInt:
		body = ir.Alias(ir.NewScalar(ir.BigInt))
	case String:
		body = ir.Alias(ir.NewScalar(ir.String))

	case Vec, Option:
		if len(params) != 1 {
			return ir.TypeDecl{}, shapeErr(fmt.Sprintf("expected exactly one type parameter, got %d", len(params)))
		}
		elem := ir.NewGenericParam(params[0])
		if shape == Vec {
			body = ir.Alias(ir.NewArray(elem))
		} else {
			body = ir.Alias(ir.NewOption(elem))
		}

	case Struct:
		if entry.Components == nil {
			return ir.TypeDecl{}, shapeErr("struct has no component list")
		}
		fields := make([]ir.RecordField, len(entry.Components))
		for i, c := range entry.Components {
			t, err := resolveRef(abi, c, name)
			if err != nil {
				return ir.TypeDecl{}, err
			}
			fields[i] = ir.NewRecordField(c.Name, t)
		}
		body = ir.NewRecord(fields...)

	case Enum:
		if entry.Components == nil {
			return ir.TypeDecl{}, shapeErr("enum has no component list")
		}
		ctors := make([]ir.Constructor, len(entry.Components))
		for i, c := range entry.Components {
			t, err := resolveRef(abi, c, name)
			if err != nil {
				return ir.TypeDecl{}, err
			}
			ctors[i] = ir.Constructor{Name: ir.Capitalize(c.Name), Payload: t}
		}
		body = ir.NewVariant(ctors...)

	case Tuple:
		if entry.Components == nil {
			return ir.TypeDecl{}, shapeErr("tuple has no component list")
		}
		elems := make([]ir.TypeIdent, len(entry.Components))
		for i, c := range entry.Components {
			if elems[i], err = resolveRef(abi, c, name); err != nil {
				return ir.TypeDecl{}, err
			}
		}
		body = ir.Alias(ir.NewTuple(elems...))

	case Array:
		if len(entry.Components) == 0 {
			return ir.TypeDecl{}, shapeErr("array has no element component")
		}
		elem, err := resolveRef(abi, entry.Components[0], name)
		if err != nil {
			return ir.TypeDecl{}, err
		}
		body = ir.Alias(ir.NewArray(elem))

	default:
		logger.Warn().
			Int("type_id", entry.TypeID).
			Str("type_field", entry.Type).
			Msg("unrecognized Fuel type, lowering to unknown")
		body = ir.Alias(ir.NewScalar(ir.Unknown))
	}

	decl := ir.NewTypeDecl(name, body, params...)
	if errs := decl.Validate(); len(errs) > 0 {
		return ir.TypeDecl{}, errs[0]
	}
	return decl, nil
}

// typeParams names the entry's type parameters after their placeholders.
func typeParams(abi *ABI, entry TypeEntry) ([]string, error) {
	params := make([]string, len(entry.TypeParameters))
	for i, id := range entry.TypeParameters {
		p, ok := abi.Lookup(id)
		if !ok {
			return nil, &UnknownTypeError{TypeID: id, From: DeclName(entry.TypeID), Code: ErrUnknownType}
		}
		if Classify(p.Type) != Generic {
			return nil, &ShapeError{
				TypeID:    entry.TypeID,
				TypeField: entry.Type,
				Message:   fmt.Sprintf("type parameter %d is %q, not a generic placeholder", id, p.Type),
				Code:      ErrShape,
			}
		}
		params[i] = placeholderName(p, i)
	}
	return params, nil
}

func placeholderName(p TypeEntry, i int) string {
	if name := genericName(p.Type); name != "" {
		return ir.GenericParamName(name)
	}
	return "t" + strconv.Itoa(i)
}

// resolveRef turns a component, type argument or logged type reference into
// a type identifier. Placeholders become generic parameters; everything else
// is an application of the referenced declaration.
func resolveRef(abi *ABI, ref TypeRef, from string) (ir.TypeIdent, error) {
	target, ok := abi.Lookup(ref.Type)
	if !ok {
		return nil, &UnknownTypeError{TypeID: ref.Type, From: from, Code: ErrUnknownType}
	}
	if Classify(target.Type) == Generic {
		return ir.NewGenericParam(placeholderName(target, 0)), nil
	}
	if len(ref.TypeArguments) != len(target.TypeParameters) {
		return nil, &ArityError{
			TypeID: ref.Type,
			Field:  ref.Name,
			Want:   len(target.TypeParameters),
			Got:    len(ref.TypeArguments),
			Code:   ErrArity,
		}
	}
	args := make([]ir.TypeIdent, len(ref.TypeArguments))
	for i, a := range ref.TypeArguments {
		t, err := resolveRef(abi, a, from)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return ir.Apply(DeclName(ref.Type), args...), nil
}
