package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeFieldName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"module", "module_"},
		{"type", "type_"},
		{"owner", "owner"},
		{"0x", "_0x"},
		{"", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeFieldName(tt.in))
		})
	}
}

func TestNewRecordFieldKeepsWireName(t *testing.T) {
	f := NewRecordField("module", NewScalar(String))
	assert.Equal(t, "module_", f.Name)
	assert.Equal(t, "module", f.Original)
	assert.True(t, f.Escaped())

	plain := NewRecordField("owner", NewScalar(Address))
	assert.False(t, plain.Escaped())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Transfer", Capitalize("transfer"))
	assert.Equal(t, "transfer", Uncapitalize("Transfer"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "t", GenericParamName("T"))
}
