package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencies(t *testing.T) {
	tests := []struct {
		name  string
		ident TypeIdent
		want  []string
	}{
		{"scalar", NewScalar(Int), nil},
		{"enum", SchemaEnum{Name: "Color"}, nil},
		{"generic", NewGenericParam("T"), nil},
		{"named", Named("foo"), []string{"foo"}},
		{"array of named", NewArray(Named("foo")), []string{"foo"}},
		{"option of named", NewOption(Named("foo")), []string{"foo"}},
		{"application then args", Apply("a", Named("b"), Apply("c", Named("b"))), []string{"a", "b", "c", "b"}},
		{"tuple in order", NewTuple(Named("x"), NewScalar(Bool), Named("y")), []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dependencies(tt.ident))
		})
	}
}

func TestGenericParams(t *testing.T) {
	ident := NewTuple(NewGenericParam("T"), Apply("box", NewGenericParam("U"), NewGenericParam("t")))
	assert.Equal(t, []string{"t", "u"}, GenericParams(ident))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Apply("a", NewScalar(Int)), Apply("a", NewScalar(Int))))
	assert.False(t, Equal(Apply("a", NewScalar(Int)), Apply("a", NewScalar(BigInt))))
	assert.False(t, Equal(NewArray(NewScalar(Int)), NewOption(NewScalar(Int))))
	assert.False(t, Equal(NewTuple(NewScalar(Int)), NewTuple(NewScalar(Int), NewScalar(Int))))
}

func TestVisitAcceptsPointers(t *testing.T) {
	arr := &Array{Elem: NewScalar(Int)}
	assert.Equal(t, []string(nil), Dependencies(arr))
	app := &TypeApplication{Name: "foo"}
	assert.Equal(t, []string{"foo"}, Dependencies(app))
}

func TestConstructorsCopySlices(t *testing.T) {
	args := []TypeIdent{NewScalar(Int)}
	app := Apply("a", args...)
	args[0] = NewScalar(Bool)
	assert.True(t, Equal(NewScalar(Int), app.Args[0]))
}

func TestScalarKindString(t *testing.T) {
	for _, k := range ScalarKinds() {
		assert.NotEmpty(t, k.String(), "kind %d", int(k))
	}
}

func TestExprDependenciesDeduplicates(t *testing.T) {
	rec := NewRecord(
		NewRecordField("a", Named("x")),
		NewRecordField("b", NewArray(Named("y"))),
		NewRecordField("c", Apply("x", Named("y"))),
	)
	assert.Equal(t, []string{"x", "y"}, ExprDependencies(rec))
}
