package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/resolve"
)

var (
	intT    = ir.NewScalar(ir.Int)
	boolT   = ir.NewScalar(ir.Bool)
	bigintT = ir.NewScalar(ir.BigInt)
	strT    = ir.NewScalar(ir.String)
)

func mustSet(t *testing.T, decls ...ir.TypeDecl) *ir.TypeDeclMulti {
	t.Helper()
	m, err := ir.NewTypeDeclMulti(decls...)
	require.NoError(t, err)
	return m
}

// TestSchema tests combinator rendering for identifiers.
func TestSchema(t *testing.T) {
	tests := []struct {
		name  string
		ident ir.TypeIdent
		mode  Mode
		want  string
	}{
		{"array of int", ir.NewArray(intT), Storage, "S.array(S.int)"},
		{"option storage", ir.NewOption(intT), Storage, "S.null(S.int)"},
		{"option field selection", ir.NewOption(intT), FieldSelection, "S.nullable(S.int)"},
		{"tuple", ir.NewTuple(intT, boolT), Storage, "S.tuple(s => (s.item(0, S.int), s.item(1, S.bool)))"},
		{"bigint storage", bigintT, Storage, "BigInt.schema"},
		{"bigint field selection", bigintT, FieldSelection, "BigInt.nativeSchema"},
		{"json", ir.NewScalar(ir.JSON), Storage, "S.json(~validate=false)"},
		{"timestamp", ir.NewScalar(ir.Timestamp), Storage, "Utils.Schema.dbDate"},
		{"enum", ir.SchemaEnum{Name: "Color"}, Storage, "Enums.Color.schema"},
		{"generic", ir.NewGenericParam("T"), Storage, "tSchema"},
		{"named", ir.Named("type3"), Storage, "type3Schema"},
		{"application", ir.Apply("box", ir.NewOption(bigintT)), FieldSelection, "boxSchema(S.nullable(BigInt.nativeSchema))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.ident, tt.mode))
		})
	}
}

// TestTypeString tests ReScript type syntax for identifiers.
func TestTypeString(t *testing.T) {
	tests := []struct {
		name  string
		ident ir.TypeIdent
		want  string
	}{
		{"unit", ir.NewScalar(ir.Unit), "unit"},
		{"bigdecimal", ir.NewScalar(ir.BigDecimal), "BigDecimal.t"},
		{"nested", ir.NewArray(ir.NewOption(intT)), "array<option<int>>"},
		{"tuple", ir.NewTuple(strT, boolT), "(string, bool)"},
		{"generic", ir.NewGenericParam("T"), "'t"},
		{"enum", ir.SchemaEnum{Name: "Color"}, "Enums.Color.t"},
		{"application", ir.Apply("pair", intT, ir.Named("foo")), "pair<int, foo>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeString(tt.ident))
		})
	}
}

// TestTSType tests TypeScript rendering for identifiers.
func TestTSType(t *testing.T) {
	tests := []struct {
		name  string
		ident ir.TypeIdent
		want  string
	}{
		{"unit", ir.NewScalar(ir.Unit), "undefined"},
		{"option", ir.NewOption(intT), "(undefined | number)"},
		{"array", ir.NewArray(bigintT), "readonly bigint[]"},
		{"tuple", ir.NewTuple(intT, boolT), "[number, boolean]"},
		{"enum", ir.SchemaEnum{Name: "Color"}, "Color_t"},
		{"application", ir.Apply("pair", strT, ir.NewGenericParam("T")), "Pair<string, t>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TSType(tt.ident))
		})
	}
}

// TestDefaults tests both default literal syntaxes.
func TestDefaults(t *testing.T) {
	tests := []struct {
		name     string
		ident    ir.TypeIdent
		rescript string
		js       string
	}{
		{"unit", ir.NewScalar(ir.Unit), "()", "undefined"},
		{"int", intT, "0", "0"},
		{"float", ir.NewScalar(ir.Float), "0.", "0.0"},
		{"bigint", bigintT, "0n", "BigInt(0)"},
		{"string", strT, `"foo"`, `"foo"`},
		{"address", ir.NewScalar(ir.Address), "TestHelpers_MockAddresses.defaultAddress", "TestHelpers.Addresses.defaultAddress"},
		{"timestamp", ir.NewScalar(ir.Timestamp), "Js.Date.fromFloat(0.)", "new Date(0)"},
		{"unknown", ir.NewScalar(ir.Unknown), "%raw(`undefined`)", "undefined"},
		{"option", ir.NewOption(intT), "None", "undefined"},
		{"array", ir.NewArray(intT), "[]", "[]"},
		{"tuple", ir.NewTuple(intT, boolT), "(0, false)", "[0, false]"},
		{"application", ir.Apply("box", bigintT), "boxDefault(0n)", "boxDefault(BigInt(0))"},
		{"generic", ir.NewGenericParam("A"), "aDefault", "aDefault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rescript, DefaultRescript(tt.ident))
			assert.Equal(t, tt.js, DefaultJS(tt.ident))
		})
	}
}

// TestVariantSchemaIsTaggedUnion tests the case/payload wire form.
func TestVariantSchemaIsTaggedUnion(t *testing.T) {
	d := ir.NewTypeDecl("color", ir.NewVariant(
		ir.Constructor{Name: "Red", Payload: ir.NewScalar(ir.Unit)},
		ir.Constructor{Name: "Custom", Payload: intT},
	))

	assert.Equal(t,
		`let colorSchema: S.t<color> = S.union([`+
			`S.object((s): color => {s.tag("case", "Red"); Red(s.field("payload", S.unit))}), `+
			`S.object((s): color => {s.tag("case", "Custom"); Custom(s.field("payload", S.int))})])`,
		DeclSchema(d, Storage))
	assert.Equal(t, `@tag("case") type color = Red(unit) | Custom(int)`, Decl(d))
	assert.Equal(t, `let colorDefault: color = Red(())`, DeclDefault(d))
	assert.Equal(t, `const colorDefault = {case: "Red", payload: undefined};`, DeclDefaultJS(d))
}

// TestEscapedFieldKeepsWireName tests reserved-word field emission.
func TestEscapedFieldKeepsWireName(t *testing.T) {
	d := ir.NewTypeDecl("meta", ir.NewRecord(ir.NewRecordField("module", strT)))

	assert.Equal(t, `type meta = {@as("module") module_: string}`, Decl(d))
	assert.Equal(t, `let metaSchema: S.t<meta> = S.object((s): meta => {module_: s.field("module", S.string)})`, DeclSchema(d, Storage))
	assert.Equal(t, `let metaDefault: meta = {module_: "foo"}`, DeclDefault(d))
	assert.Equal(t, `const metaDefault = {module: "foo"};`, DeclDefaultJS(d))
	assert.Equal(t, `export type Meta = { readonly module: string };`, DeclTS(d))
}

// TestDeclSelfRecursive tests that a self-referencing declaration uses rec.
func TestDeclSelfRecursive(t *testing.T) {
	d := ir.NewTypeDecl("node", ir.NewRecord(ir.NewRecordField("next", ir.NewOption(ir.Named("node")))))
	assert.Equal(t, "type rec node = {next: option<node>}", Decl(d))
}

// TestMultiRecursiveBlock tests that a cycle renders as one rec block.
func TestMultiRecursiveBlock(t *testing.T) {
	set := mustSet(t,
		ir.NewTypeDecl("a", ir.NewRecord(ir.NewRecordField("b", ir.NewOption(ir.Named("b"))))),
		ir.NewTypeDecl("b", ir.NewVariant(ir.Constructor{Name: "A", Payload: ir.Named("a")})),
	)

	out, err := Multi(set)
	require.NoError(t, err)
	assert.Equal(t,
		"type rec a = {b: option<b>}\n"+
			`and @tag("case") b = A(a)`,
		out)
}

// TestMultiIndependent tests that unrelated declarations stay non-recursive.
func TestMultiIndependent(t *testing.T) {
	set := mustSet(t,
		ir.NewTypeDecl("a", ir.Alias(intT)),
		ir.NewTypeDecl("b", ir.Alias(ir.NewArray(strT))),
	)

	out, err := Multi(set)
	require.NoError(t, err)
	assert.Equal(t, "type a = int\ntype b = array<string>", out)
	assert.NotContains(t, out, "rec")
	assert.NotContains(t, out, "and ")
}

// TestSchemasRejectCycles tests that schema rendering surfaces cycles.
func TestSchemasRejectCycles(t *testing.T) {
	set := mustSet(t,
		ir.NewTypeDecl("a", ir.Alias(ir.Named("b"))),
		ir.NewTypeDecl("b", ir.Alias(ir.Named("a"))),
	)

	_, err := Schemas(set, Storage)
	var cerr *resolve.CycleError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []string{"a", "b", "a"}, cerr.Path)

	_, err = Defaults(set)
	require.Error(t, err)
}

// TestGenericDecl tests function-valued schemas and defaults.
func TestGenericDecl(t *testing.T) {
	d := ir.NewTypeDecl("pair",
		ir.Alias(ir.NewTuple(ir.NewGenericParam("A"), ir.NewGenericParam("B"))),
		"A", "B")

	assert.Equal(t, "type pair<'a, 'b> = ('a, 'b)", Decl(d))
	assert.Equal(t,
		"let pairSchema = (aSchema: S.t<'a>, bSchema: S.t<'b>) => S.tuple(s => (s.item(0, aSchema), s.item(1, bSchema)))",
		DeclSchema(d, Storage))
	assert.Equal(t,
		"let pairDefault = (aDefault: 'a, bDefault: 'b): pair<'a, 'b> => (aDefault, bDefault)",
		DeclDefault(d))
	assert.Equal(t, "const pairDefault = (aDefault, bDefault) => [aDefault, bDefault];", DeclDefaultJS(d))
	assert.Equal(t, "export type Pair<a, b> = [a, b];", DeclTS(d))
}

// TestParseMode tests mode parsing.
func TestParseMode(t *testing.T) {
	m, err := ParseMode("field-selection")
	require.NoError(t, err)
	assert.Equal(t, FieldSelection, m)
	assert.Equal(t, "field-selection", m.String())

	_, err = ParseMode("bogus")
	require.Error(t, err)
}

// TestPrintLambda tests arrow printing in both syntaxes.
func TestPrintLambda(t *testing.T) {
	fn := Lambda{
		Params: []Param{{Name: "aSchema", Type: "S.t<'a>"}, {Name: "bSchema", Type: "S.t<'b>"}},
		Body:   call("S.tuple2", Ident{"aSchema"}, Ident{"bSchema"}),
	}
	assert.Equal(t, "(aSchema: S.t<'a>, bSchema: S.t<'b>) => S.tuple2(aSchema, bSchema)", Print(fn, ReScript))
	assert.Equal(t, "(aSchema, bSchema) => S.tuple2(aSchema, bSchema)", Print(fn, JS))

	obj := Lambda{Params: []Param{{Name: "x"}}, Body: RecordLit{[]FieldInit{{Name: "0x", Value: Ident{"x"}}}}}
	assert.Equal(t, `x => ({"0x": x})`, Print(obj, JS))
}

// TestEnumModule tests enum modules referenced by SchemaEnum identifiers.
func TestEnumModule(t *testing.T) {
	got := EnumModule("Status", []string{"Active", "Closed"})
	want := "module Status = {\n" +
		"  type t = [#Active | #Closed]\n" +
		"  let schema: S.t<t> = S.union([S.literal(#Active), S.literal(#Closed)])\n" +
		"  let default: t = #Active\n" +
		"}"
	assert.Equal(t, want, got)

	assert.Equal(t, `export type Status_t = "Active" | "Closed";`, EnumTS("Status", []string{"Active", "Closed"}))
}
