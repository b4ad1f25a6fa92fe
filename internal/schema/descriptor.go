package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema is the code of every descriptor validation error.
const ErrInvalidSchema = "E401"

// Error is a schema descriptor validation error.
type Error struct {
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *Error) Error() string {
	switch {
	case e.Entity != "" && e.Field != "":
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Entity, e.Field, e.Message)
	case e.Entity != "":
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Entity, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

func invalid(entity, field, format string, args ...any) *Error {
	return &Error{Entity: entity, Field: field, Message: fmt.Sprintf(format, args...), Code: ErrInvalidSchema}
}

// Schema is a deserialized user schema.
type Schema struct {
	Entities []Entity `yaml:"entities" json:"entities"`
	Enums    []Enum   `yaml:"enums,omitempty" json:"enums,omitempty"`
}

// Entity is one stored record type.
type Entity struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field describes one entity field. Type is GraphQL type syntax naming a
// scalar, an enum or another entity. A field with DerivedFrom is a reverse
// lookup and is not stored.
type Field struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	DerivedFrom string `yaml:"derivedFrom,omitempty" json:"derivedFrom,omitempty"`
}

// Enum is a user-defined enumeration.
type Enum struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values" json:"values"`
}

// Scalars lists the built-in scalar type names.
var Scalars = []string{
	"ID", "String", "Int", "Float", "BigInt", "BigDecimal",
	"Boolean", "Bytes", "Timestamp", "Json",
}

// LoadFile reads and validates a schema descriptor file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML descriptors with strict field checking and validates
// the result.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Merge returns a schema holding the entities and enums of s followed by
// those of other.
func (s *Schema) Merge(other *Schema) *Schema {
	out := &Schema{}
	for _, x := range []*Schema{s, other} {
		if x == nil {
			continue
		}
		out.Entities = append(out.Entities, x.Entities...)
		out.Enums = append(out.Enums, x.Enums...)
	}
	return out
}

func (s *Schema) entity(name string) (Entity, bool) {
	i := slices.IndexFunc(s.Entities, func(e Entity) bool { return e.Name == name })
	if i < 0 {
		return Entity{}, false
	}
	return s.Entities[i], true
}

func (s *Schema) isEnum(name string) bool {
	return slices.ContainsFunc(s.Enums, func(e Enum) bool { return e.Name == name })
}

// Validate checks names, references and derived fields. Returns the first
// error found.
func (s *Schema) Validate() error {
	seen := make(map[string]bool)
	for _, e := range s.Enums {
		if e.Name == "" {
			return invalid("", "", "enum name is required")
		}
		if seen[e.Name] || slices.Contains(Scalars, e.Name) {
			return invalid(e.Name, "", "duplicate type name")
		}
		seen[e.Name] = true
		if len(e.Values) == 0 {
			return invalid(e.Name, "", "enum has no values")
		}
	}
	for _, ent := range s.Entities {
		if ent.Name == "" {
			return invalid("", "", "entity name is required")
		}
		if seen[ent.Name] || slices.Contains(Scalars, ent.Name) {
			return invalid(ent.Name, "", "duplicate type name")
		}
		seen[ent.Name] = true
	}
	for _, ent := range s.Entities {
		if err := s.validateEntity(ent); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateEntity(ent Entity) error {
	fields := make(map[string]bool, len(ent.Fields))
	hasID := false
	for _, f := range ent.Fields {
		if f.Name == "" {
			return invalid(ent.Name, "", "field name is required")
		}
		if fields[f.Name] {
			return invalid(ent.Name, f.Name, "duplicate field")
		}
		fields[f.Name] = true

		ft, err := ParseFieldType(f.Type)
		if err != nil {
			return invalid(ent.Name, f.Name, "%v", err)
		}
		base := ft.Base()
		target, isEntity := s.entity(base)
		if !isEntity && !s.isEnum(base) && !slices.Contains(Scalars, base) {
			return invalid(ent.Name, f.Name, "unknown type %q", base)
		}
		if f.Name == "id" {
			if ft.String() != "ID!" {
				return invalid(ent.Name, f.Name, "id must have type ID!, got %s", ft)
			}
			hasID = true
		}
		if f.DerivedFrom == "" {
			continue
		}
		if !isEntity {
			return invalid(ent.Name, f.Name, "derivedFrom requires an entity type, got %q", base)
		}
		if !slices.ContainsFunc(target.Fields, func(tf Field) bool { return tf.Name == f.DerivedFrom }) {
			return invalid(ent.Name, f.Name, "derivedFrom field %q not found on %s", f.DerivedFrom, target.Name)
		}
	}
	if !hasID {
		return invalid(ent.Name, "", "missing id field")
	}
	return nil
}
