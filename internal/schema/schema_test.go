package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/indexgen/internal/ir"
)

const sampleYAML = `
entities:
  - name: User
    fields:
      - {name: id, type: "ID!"}
      - {name: balance, type: "BigInt!"}
      - {name: nickname, type: String}
      - {name: status, type: "Status!"}
      - {name: tokens, type: "[Token!]!", derivedFrom: owner}
  - name: Token
    fields:
      - {name: id, type: "ID!"}
      - {name: owner, type: "User!"}
      - {name: tags, type: "[String]"}
      - {name: module, type: "Json!"}
enums:
  - {name: Status, values: [Active, Closed]}
`

// TestParseFieldType tests GraphQL type syntax round trips.
func TestParseFieldType(t *testing.T) {
	tests := []struct {
		in   string
		want FieldType
	}{
		{"String!", NamedType("String")},
		{"String", NamedType("String").OrNull()},
		{"[String!]!", ListOf(NamedType("String"))},
		{"[String]", ListOf(NamedType("String").OrNull()).OrNull()},
		{"[[BigInt!]!]!", ListOf(ListOf(NamedType("BigInt")))},
		{" [ Int ! ] ! ", ListOf(NamedType("Int"))},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

// TestParseFieldTypeErrors tests malformed type syntax.
func TestParseFieldTypeErrors(t *testing.T) {
	for _, in := range []string{"", "[String", "String!!", "1Int", "[]"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFieldType(in)
			assert.Error(t, err)
		})
	}
}

// TestEntities tests lowering entities to record declarations.
func TestEntities(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	set, err := s.Decls()
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	user, ok := set.Lookup("user")
	require.True(t, ok)
	rec := user.Body.(ir.Record)
	names := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "balance", "nickname", "status"}, names, "derived fields are not stored")
	assert.True(t, ir.Equal(ir.NewOption(ir.NewScalar(ir.String)), rec.Fields[2].Type))
	assert.True(t, ir.Equal(ir.SchemaEnum{Name: "Status"}, rec.Fields[3].Type))

	token, ok := set.Lookup("token")
	require.True(t, ok)
	trec := token.Body.(ir.Record)
	assert.Equal(t, "owner_id", trec.Fields[1].Name)
	assert.True(t, ir.Equal(ir.NewScalar(ir.ID), trec.Fields[1].Type))
	assert.True(t, ir.Equal(ir.NewOption(ir.NewArray(ir.NewOption(ir.NewScalar(ir.String)))), trec.Fields[2].Type))
	assert.Equal(t, "module_", trec.Fields[3].Name)
	assert.Equal(t, "module", trec.Fields[3].Original)
}

// TestValidate tests descriptor validation errors.
func TestValidate(t *testing.T) {
	idField := Field{Name: "id", Type: "ID!"}
	tests := []struct {
		name   string
		schema Schema
		want   string
	}{
		{"unknown type", Schema{Entities: []Entity{{Name: "A", Fields: []Field{idField, {Name: "x", Type: "Nope!"}}}}}, "unknown type"},
		{"missing id", Schema{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "x", Type: "Int!"}}}}}, "missing id"},
		{"nullable id", Schema{Entities: []Entity{{Name: "A", Fields: []Field{{Name: "id", Type: "ID"}}}}}, "id must have type ID!"},
		{"duplicate field", Schema{Entities: []Entity{{Name: "A", Fields: []Field{idField, idField}}}}, "duplicate field"},
		{"duplicate entity", Schema{Entities: []Entity{{Name: "A", Fields: []Field{idField}}, {Name: "A", Fields: []Field{idField}}}}, "duplicate type name"},
		{"enum without values", Schema{Enums: []Enum{{Name: "E"}}}, "no values"},
		{"derived from scalar", Schema{Entities: []Entity{{Name: "A", Fields: []Field{idField, {Name: "x", Type: "[Int!]!", DerivedFrom: "a"}}}}}, "requires an entity"},
		{"derived field missing", Schema{Entities: []Entity{
			{Name: "A", Fields: []Field{idField, {Name: "bs", Type: "[B!]!", DerivedFrom: "nope"}}},
			{Name: "B", Fields: []Field{idField}},
		}}, "not found on B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			require.Error(t, err)

			var serr *Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, ErrInvalidSchema, serr.Code)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestParseRejectsUnknownFields tests strict YAML decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("entities:\n  - name: A\n    feilds: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

// TestLoadFile tests reading descriptors from disk.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Entities, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestMerge tests combining user and generated schemas.
func TestMerge(t *testing.T) {
	a := &Schema{Entities: []Entity{{Name: "A"}}}
	b := &Schema{Entities: []Entity{{Name: "B"}}, Enums: []Enum{{Name: "E", Values: []string{"X"}}}}

	m := a.Merge(b)
	assert.Len(t, m.Entities, 2)
	assert.Len(t, m.Enums, 1)
	assert.Len(t, (*Schema)(nil).Merge(b).Entities, 1)
}
