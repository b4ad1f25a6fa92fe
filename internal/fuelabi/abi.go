package fuelabi

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"fortio.org/safecast"
	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed abi.schema.json
var abiSchemaJSON []byte

// TypeRef references a catalogue type, instantiated with type arguments.
type TypeRef struct {
	Name          string
	Type          int
	TypeArguments []TypeRef
}

// TypeEntry is one element of the type catalogue.
type TypeEntry struct {
	TypeID         int
	Type           string
	Components     []TypeRef // nil when absent
	TypeParameters []int     // nil when absent
}

// LoggedType is one element of the logged-types table.
type LoggedType struct {
	LogID      string
	LoggedType TypeRef
}

// ABI is a decoded Fuel program ABI. Only the parts needed for type lowering
// are kept.
type ABI struct {
	Types       []TypeEntry
	LoggedTypes []LoggedType

	index map[int]int
}

// Lookup returns the catalogue entry with the given id.
func (a *ABI) Lookup(id int) (TypeEntry, bool) {
	i, ok := a.index[id]
	if !ok {
		return TypeEntry{}, false
	}
	return a.Types[i], true
}

// Wire shapes. Ids are decoded wide and narrowed with safecast.
type (
	wireRef struct {
		Name          string    `json:"name"`
		Type          uint64    `json:"type"`
		TypeArguments []wireRef `json:"typeArguments"`
	}
	wireType struct {
		TypeID         uint64    `json:"typeId"`
		Type           string    `json:"type"`
		Components     []wireRef `json:"components"`
		TypeParameters []uint64  `json:"typeParameters"`
	}
	wireLog struct {
		LogID      logID   `json:"logId"`
		LoggedType wireRef `json:"loggedType"`
	}
	wireABI struct {
		Types       []wireType `json:"types"`
		LoggedTypes []wireLog  `json:"loggedTypes"`
	}
)

// logID accepts a JSON number or string. Log ids are u64 and exceed the
// float64 range, so numbers are kept as their literal digits.
type logID string

func (l *logID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = logID(s)
		return nil
	}
	if _, err := strconv.ParseUint(string(data), 10, 64); err != nil {
		return fmt.Errorf("invalid log id %s", data)
	}
	*l = logID(data)
	return nil
}

// Decode validates data against the ABI shape and decodes it.
func Decode(data []byte) (*ABI, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var w wireABI
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode Fuel ABI: %w", err)
	}

	abi := &ABI{index: make(map[int]int, len(w.Types))}
	for _, wt := range w.Types {
		entry, err := wt.convert()
		if err != nil {
			return nil, err
		}
		if _, dup := abi.index[entry.TypeID]; dup {
			return nil, &ValidationError{Message: fmt.Sprintf("duplicate type id %d", entry.TypeID), Code: ErrInvalidABI}
		}
		abi.index[entry.TypeID] = len(abi.Types)
		abi.Types = append(abi.Types, entry)
	}
	for _, wl := range w.LoggedTypes {
		ref, err := wl.LoggedType.convert()
		if err != nil {
			return nil, err
		}
		abi.LoggedTypes = append(abi.LoggedTypes, LoggedType{LogID: string(wl.LogID), LoggedType: ref})
	}
	return abi, nil
}

func convertID(id uint64) (int, error) {
	n, err := safecast.Conv[int](id)
	if err != nil {
		return 0, fmt.Errorf("[%s] type id %d out of range: %w", ErrInvalidABI, id, err)
	}
	return n, nil
}

func (w wireRef) convert() (TypeRef, error) {
	id, err := convertID(w.Type)
	if err != nil {
		return TypeRef{}, err
	}
	ref := TypeRef{Name: w.Name, Type: id}
	if w.TypeArguments != nil {
		ref.TypeArguments = make([]TypeRef, len(w.TypeArguments))
		for i, a := range w.TypeArguments {
			if ref.TypeArguments[i], err = a.convert(); err != nil {
				return TypeRef{}, err
			}
		}
	}
	return ref, nil
}

func (w wireType) convert() (TypeEntry, error) {
	id, err := convertID(w.TypeID)
	if err != nil {
		return TypeEntry{}, err
	}
	entry := TypeEntry{TypeID: id, Type: w.Type}
	if w.Components != nil {
		entry.Components = make([]TypeRef, len(w.Components))
		for i, c := range w.Components {
			if entry.Components[i], err = c.convert(); err != nil {
				return TypeEntry{}, err
			}
		}
	}
	if w.TypeParameters != nil {
		entry.TypeParameters = make([]int, len(w.TypeParameters))
		for i, p := range w.TypeParameters {
			if entry.TypeParameters[i], err = convertID(p); err != nil {
				return TypeEntry{}, err
			}
		}
	}
	return entry, nil
}

var (
	abiSchemaOnce sync.Once
	abiSchema     *jsonschema.Schema
	abiSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	abiSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(abiSchemaJSON))
		if err != nil {
			abiSchemaErr = fmt.Errorf("unmarshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("fuel-abi.json", doc); err != nil {
			abiSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		abiSchema, abiSchemaErr = c.Compile("fuel-abi.json")
	})
	return abiSchema, abiSchemaErr
}

// Validate checks data against the Fuel ABI JSON shape.
func Validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err), Code: ErrInvalidABI}
	}
	if err := sch.Validate(inst); err != nil {
		return &ValidationError{Message: err.Error(), Code: ErrInvalidABI}
	}
	return nil
}
