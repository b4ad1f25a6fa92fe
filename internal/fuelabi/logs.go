package fuelabi

import (
	"strconv"

	"github.com/roach88/indexgen/internal/ir"
)

var primitiveEvents = map[string]string{
	"()":              "UnitLog",
	"bool":            "BoolLog",
	"u8":              "U8Log",
	"u16":             "U16Log",
	"u32":             "U32Log",
	"u64":             "U64Log",
	"u128":            "U128Log",
	"u256":            "U256Log",
	"raw untyped ptr": "RawUntypedPtrLog",
	"b256":            "B256Log",
	"address":         "AddressLog",
	"str":             "StrLog",
}

// EventName derives the event name of a logged type from its type field.
// The name ignores type arguments, so distinct types may share one.
func EventName(typeField string) string {
	if name, ok := primitiveEvents[typeField]; ok {
		return name
	}
	switch Classify(typeField) {
	case String:
		return "StrLog"
	case Vec:
		return "VecLog"
	case Option:
		return "OptionLog"
	case Struct, Enum:
		return TypeName(typeField)
	case Tuple:
		return "TupleLog"
	case Array:
		return "ArrayLog"
	}
	return "UnknownLog"
}

// eventNames hands out unique event names for one decode pass.
type eventNames struct {
	next  map[string]int
	taken map[string]bool
}

func newEventNames() *eventNames {
	return &eventNames{next: make(map[string]int), taken: make(map[string]bool)}
}

// claim returns base on its first use and base2, base3, ... afterwards,
// skipping suffixed names already handed out.
func (e *eventNames) claim(base string) string {
	if !e.taken[base] {
		e.taken[base] = true
		e.next[base] = 2
		return base
	}
	for n := e.next[base]; ; n++ {
		name := base + strconv.Itoa(n)
		if !e.taken[name] {
			e.taken[name] = true
			e.next[base] = n + 1
			return name
		}
	}
}

// DecodeLogs resolves the logged-types table against lowered types.
func DecodeLogs(abi *ABI, types []ir.FuelType) ([]ir.FuelLog, error) {
	byID := make(map[int]ir.FuelType, len(types))
	for _, t := range types {
		byID[t.TypeID] = t
	}

	names := newEventNames()
	logs := make([]ir.FuelLog, 0, len(abi.LoggedTypes))
	for _, lt := range abi.LoggedTypes {
		from := "log " + lt.LogID
		ft, ok := byID[lt.LoggedType.Type]
		if !ok {
			return nil, &UnknownTypeError{TypeID: lt.LoggedType.Type, From: from, Code: ErrUnknownType}
		}
		data, err := resolveRef(abi, lt.LoggedType, from)
		if err != nil {
			return nil, err
		}
		logs = append(logs, ir.FuelLog{
			LogID:     lt.LogID,
			Type:      ft,
			EventName: names.claim(EventName(ft.TypeField)),
			Data:      data,
		})
	}
	return logs, nil
}
