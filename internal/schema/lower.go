package schema

import (
	"fmt"

	"github.com/roach88/indexgen/internal/ir"
)

var scalarKinds = map[string]ir.ScalarKind{
	"ID":         ir.ID,
	"String":     ir.String,
	"Int":        ir.Int,
	"Float":      ir.Float,
	"BigInt":     ir.BigInt,
	"BigDecimal": ir.BigDecimal,
	"Boolean":    ir.Bool,
	"Bytes":      ir.String,
	"Timestamp":  ir.Timestamp,
	"Json":       ir.JSON,
}

// TypeName is the declaration name of an entity's record type.
func TypeName(entity string) string {
	return ir.Uncapitalize(entity)
}

// FieldIdent lowers a field type. An entity reference is stored as the
// referenced entity's id; ref reports whether that happened.
func (s *Schema) FieldIdent(ft FieldType) (ident ir.TypeIdent, ref bool, err error) {
	if ft.Elem != nil {
		elem, ref, err := s.FieldIdent(*ft.Elem)
		if err != nil {
			return nil, false, err
		}
		ident = ir.NewArray(elem)
		if ft.Nullable {
			ident = ir.NewOption(ident)
		}
		return ident, ref, nil
	}

	switch kind, isScalar := scalarKinds[ft.Named]; {
	case isScalar:
		ident = ir.NewScalar(kind)
	case s.isEnum(ft.Named):
		ident = ir.SchemaEnum{Name: ft.Named}
	default:
		if _, ok := s.entity(ft.Named); !ok {
			return nil, false, fmt.Errorf("unknown type %q", ft.Named)
		}
		ident, ref = ir.NewScalar(ir.ID), true
	}
	if ft.Nullable {
		ident = ir.NewOption(ident)
	}
	return ident, ref, nil
}

// EntityDecl lowers one entity to its stored record. Derived fields are
// omitted and entity references become <field>_id.
func (s *Schema) EntityDecl(ent Entity) (ir.TypeDecl, error) {
	var fields []ir.RecordField
	for _, f := range ent.Fields {
		if f.DerivedFrom != "" {
			continue
		}
		ft, err := ParseFieldType(f.Type)
		if err != nil {
			return ir.TypeDecl{}, invalid(ent.Name, f.Name, "%v", err)
		}
		ident, ref, err := s.FieldIdent(ft)
		if err != nil {
			return ir.TypeDecl{}, invalid(ent.Name, f.Name, "%v", err)
		}
		name := f.Name
		if ref {
			name += "_id"
		}
		fields = append(fields, ir.NewRecordField(name, ident))
	}
	return ir.NewTypeDecl(TypeName(ent.Name), ir.NewRecord(fields...)), nil
}

// Decls lowers every entity of s into one declaration set.
func (s *Schema) Decls() (*ir.TypeDeclMulti, error) {
	set, err := ir.NewTypeDeclMulti()
	if err != nil {
		return nil, err
	}
	for _, ent := range s.Entities {
		d, err := s.EntityDecl(ent)
		if err != nil {
			return nil, err
		}
		if err := set.Add(d); err != nil {
			return nil, fmt.Errorf("entity %s: %w", ent.Name, err)
		}
	}
	return set, nil
}
