package evmabi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/testutil"
)

// TestLowerParam tests the parameter mapping table.
func TestLowerParam(t *testing.T) {
	tests := []struct {
		typ   string
		ident ir.TypeIdent
		field string
	}{
		{"uint256", ir.NewScalar(ir.BigInt), "BigInt!"},
		{"uint8", ir.NewScalar(ir.BigInt), "BigInt!"},
		{"int", ir.NewScalar(ir.BigInt), "BigInt!"},
		{"int24", ir.NewScalar(ir.BigInt), "BigInt!"},
		{"bool", ir.NewScalar(ir.Bool), "Boolean!"},
		{"address", ir.NewScalar(ir.String), "String!"},
		{"string", ir.NewScalar(ir.String), "String!"},
		{"bytes", ir.NewScalar(ir.String), "String!"},
		{"bytes32", ir.NewScalar(ir.String), "String!"},
		{"address[]", ir.NewArray(ir.NewScalar(ir.String)), "[String!]!"},
		{"uint256[2][]", ir.NewArray(ir.NewArray(ir.NewScalar(ir.BigInt))), "[[BigInt!]!]!"},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			ident, ft, err := LowerParam(Param{Name: "x", Type: tt.typ})
			require.NoError(t, err)
			assert.True(t, ir.Equal(tt.ident, ident), "got %#v", ident)
			assert.Equal(t, tt.field, ft.String())
		})
	}
}

// TestLowerParamErrors tests unsupported parameter types.
func TestLowerParamErrors(t *testing.T) {
	tests := []struct {
		typ  string
		code string
	}{
		{"tuple", ErrTupleParam},
		{"tuple[]", ErrTupleParam},
		{"fixed128x18", ErrUnsupportedType},
		{"function", ErrUnsupportedType},
		{"uint7", ErrUnsupportedType},
		{"uint512", ErrUnsupportedType},
		{"bytes33", ErrUnsupportedType},
		{"uint256[0]", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			_, _, err := LowerParam(Param{Name: "p", Type: tt.typ})
			require.Error(t, err)

			var uerr *UnsupportedError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.code, uerr.Code)
			assert.Equal(t, "p", uerr.Param)
		})
	}
}

// TestDecodeAndEvents tests decoding and event selection.
func TestDecodeAndEvents(t *testing.T) {
	abi, err := Decode(testutil.ERC20ABI())
	require.NoError(t, err)
	require.Len(t, abi, 3)

	all, err := abi.Events()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := abi.Events("Approval")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Approval", only[0].Name)
	assert.True(t, only[0].Inputs[0].Indexed)

	_, err = abi.Events("Mint")
	assert.ErrorContains(t, err, `"Mint"`)

	_, err = Decode([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

// TestEventDecls tests event argument records.
func TestEventDecls(t *testing.T) {
	ev := Entry{Type: "event", Name: "Transfer", Inputs: []Param{
		{Name: "from", Type: "address"},
		{Name: "", Type: "uint256"},
		{Name: "type", Type: "bool"},
	}}

	set, err := EventDecls([]Entry{ev})
	require.NoError(t, err)

	d, ok := set.Lookup("transferEventArgs")
	require.True(t, ok)
	rec := d.Body.(ir.Record)
	require.Len(t, rec.Fields, 3)
	assert.Equal(t, "_1", rec.Fields[1].Name)
	assert.Equal(t, "type_", rec.Fields[2].Name)
	assert.Equal(t, "type", rec.Fields[2].Original)
}

// TestEventDeclsRejectTuples tests that tuple events fail with context.
func TestEventDeclsRejectTuples(t *testing.T) {
	ev := Entry{Type: "event", Name: "Swap", Inputs: []Param{{Name: "path", Type: "tuple[]"}}}
	_, err := EventDecls([]Entry{ev})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event Swap")
	assert.Contains(t, err.Error(), ErrTupleParam)
}

// TestImportSchema tests contract-import entity descriptors.
func TestImportSchema(t *testing.T) {
	abi, err := Decode(testutil.ERC20ABI())
	require.NoError(t, err)
	events, err := abi.Events("Transfer")
	require.NoError(t, err)

	s, err := ImportSchema("ERC20", events)
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	require.Len(t, s.Entities, 1)

	ent := s.Entities[0]
	assert.Equal(t, "ERC20_Transfer", ent.Name)
	types := make(map[string]string)
	for _, f := range ent.Fields {
		types[f.Name] = f.Type
	}
	assert.Equal(t, map[string]string{
		"id":    "ID!",
		"from":  "String!",
		"to":    "String!",
		"value": "BigInt!",
	}, types)

	set, err := s.Decls()
	require.NoError(t, err)
	_, ok := set.Lookup("eRC20_Transfer")
	assert.True(t, ok)
}
