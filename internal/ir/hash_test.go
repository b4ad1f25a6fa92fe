package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashFixture(t *testing.T, decls ...TypeDecl) *TypeDeclMulti {
	t.Helper()
	m, err := NewTypeDeclMulti(decls...)
	require.NoError(t, err)
	return m
}

func TestDeclHashDeterminism(t *testing.T) {
	build := func() *TypeDeclMulti {
		return hashFixture(t,
			NewTypeDecl("a", NewRecord(NewRecordField("x", NewScalar(Int)))),
			NewTypeDecl("b", Alias(NewArray(Named("a")))),
		)
	}

	h1, err := DeclHash(build())
	require.NoError(t, err)
	h2, err := DeclHash(build())
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "DeclHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestDeclHashChangesWithInput(t *testing.T) {
	base := MustDeclHash(hashFixture(t,
		NewTypeDecl("a", NewRecord(NewRecordField("x", NewScalar(Int)))),
	))

	tests := []struct {
		name  string
		decls []TypeDecl
	}{
		{"different field type", []TypeDecl{
			NewTypeDecl("a", NewRecord(NewRecordField("x", NewScalar(BigInt)))),
		}},
		{"different field name", []TypeDecl{
			NewTypeDecl("a", NewRecord(NewRecordField("y", NewScalar(Int)))),
		}},
		{"different decl name", []TypeDecl{
			NewTypeDecl("b", NewRecord(NewRecordField("x", NewScalar(Int)))),
		}},
		{"extra param", []TypeDecl{
			NewTypeDecl("a", NewRecord(NewRecordField("x", NewScalar(Int))), "t"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, MustDeclHash(hashFixture(t, tt.decls...)))
		})
	}
}

func TestDeclHashOrderSensitive(t *testing.T) {
	a := NewTypeDecl("a", Alias(NewScalar(Int)))
	b := NewTypeDecl("b", Alias(NewScalar(Bool)))

	assert.NotEqual(t,
		MustDeclHash(hashFixture(t, a, b)),
		MustDeclHash(hashFixture(t, b, a)),
	)
}

func TestInputHashIgnoresMapOrder(t *testing.T) {
	in1 := map[string][]byte{"abi/a.json": []byte("{}"), "schema.yaml": []byte("entities: []")}
	in2 := map[string][]byte{"schema.yaml": []byte("entities: []"), "abi/a.json": []byte("{}")}

	h1, err := InputHash(in1)
	require.NoError(t, err)
	h2, err := InputHash(in2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	in2["abi/a.json"] = []byte(`{"types":[]}`)
	h3, err := InputHash(in2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashDomainSeparation(t *testing.T) {
	data := []byte("same")
	assert.NotEqual(t, hashWithDomain(DomainDecls, data), hashWithDomain(DomainInput, data))
}
