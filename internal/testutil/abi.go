package testutil

import (
	"github.com/goccy/go-json"
)

// EVMParam is an event parameter of an EVM ABI fixture.
type EVMParam struct {
	Name    string
	Type    string
	Indexed bool
}

// EVMEvent builds an event entry.
func EVMEvent(name string, params ...EVMParam) map[string]any {
	inputs := make([]any, len(params))
	for i, p := range params {
		inputs[i] = map[string]any{"name": p.Name, "type": p.Type, "indexed": p.Indexed}
	}
	return map[string]any{"type": "event", "name": name, "inputs": inputs, "anonymous": false}
}

// EVMFunction builds a function entry, which lowering ignores.
func EVMFunction(name string) map[string]any {
	return map[string]any{"type": "function", "name": name, "inputs": []any{}, "outputs": []any{}, "stateMutability": "view"}
}

// EVMABI encodes entries as ABI JSON.
func EVMABI(entries ...map[string]any) []byte {
	return mustJSON(entries)
}

// ERC20ABI is a Transfer/Approval token ABI.
func ERC20ABI() []byte {
	return EVMABI(
		EVMEvent("Transfer",
			EVMParam{Name: "from", Type: "address", Indexed: true},
			EVMParam{Name: "to", Type: "address", Indexed: true},
			EVMParam{Name: "value", Type: "uint256"},
		),
		EVMEvent("Approval",
			EVMParam{Name: "owner", Type: "address", Indexed: true},
			EVMParam{Name: "spender", Type: "address", Indexed: true},
			EVMParam{Name: "value", Type: "uint256"},
		),
		EVMFunction("totalSupply"),
	)
}

// FuelRef is a reference to a Fuel type with type arguments: a component,
// type argument or logged type.
type FuelRef struct {
	Name string
	Type int
	Args []FuelRef
}

func (r FuelRef) json() map[string]any {
	var args any
	if r.Args != nil {
		list := make([]any, len(r.Args))
		for i, a := range r.Args {
			list[i] = a.json()
		}
		args = list
	}
	return map[string]any{"name": r.Name, "type": r.Type, "typeArguments": args}
}

// FuelABI builds Fuel program ABI JSON.
type FuelABI struct {
	types []any
	logs  []any
}

// NewFuelABI returns an empty builder.
func NewFuelABI() *FuelABI {
	return &FuelABI{}
}

// Type adds a type entry. A nil components slice is encoded as null.
func (b *FuelABI) Type(id int, typeField string, components []FuelRef, typeParams ...int) *FuelABI {
	entry := map[string]any{"typeId": id, "type": typeField, "components": nil, "typeParameters": nil}
	if components != nil {
		list := make([]any, len(components))
		for i, c := range components {
			list[i] = c.json()
		}
		entry["components"] = list
	}
	if typeParams != nil {
		entry["typeParameters"] = typeParams
	}
	b.types = append(b.types, entry)
	return b
}

// Log adds a logged type. logID is encoded as a JSON string.
func (b *FuelABI) Log(logID string, ref FuelRef) *FuelABI {
	b.logs = append(b.logs, map[string]any{"logId": logID, "loggedType": ref.json()})
	return b
}

// JSON encodes the ABI.
func (b *FuelABI) JSON() []byte {
	types := b.types
	if types == nil {
		types = []any{}
	}
	logs := b.logs
	if logs == nil {
		logs = []any{}
	}
	return mustJSON(map[string]any{
		"types":         types,
		"loggedTypes":   logs,
		"functions":     []any{},
		"messagesTypes": []any{},
		"configurables": []any{},
	})
}

// GreeterFuelABI is a small program exercising every lowering shape:
// primitives, a generic Option and Vec, a struct, an enum and two logged
// types whose event names collide.
func GreeterFuelABI() []byte {
	return NewFuelABI().
		Type(0, "()", nil).
		Type(1, "bool", nil).
		Type(2, "u64", nil).
		Type(3, "generic T", nil).
		Type(4, "enum Option", []FuelRef{{Name: "None", Type: 0}, {Name: "Some", Type: 3}}, 3).
		Type(5, "struct Vec", []FuelRef{{Name: "buf", Type: 9, Args: []FuelRef{{Type: 3}}}, {Name: "len", Type: 2}}, 3).
		Type(6, "struct greeter::Greeting", []FuelRef{
			{Name: "count", Type: 2},
			{Name: "module", Type: 1},
			{Name: "tags", Type: 5, Args: []FuelRef{{Type: 2}}},
		}).
		Type(7, "enum other::Greeting", []FuelRef{
			{Name: "Hello", Type: 0},
			{Name: "Number", Type: 4, Args: []FuelRef{{Type: 2}}},
		}).
		Type(8, "(_, _)", []FuelRef{{Type: 1}, {Type: 2}}).
		Type(9, "struct RawVec", []FuelRef{{Name: "ptr", Type: 10}, {Name: "cap", Type: 2}}, 3).
		Type(10, "raw untyped ptr", nil).
		Log("1515152261580153489", FuelRef{Type: 6}).
		Log("8961848586872524460", FuelRef{Type: 7}).
		Log("13213829929622723620", FuelRef{Type: 8}).
		JSON()
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
