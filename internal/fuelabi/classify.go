package fuelabi

import "strings"

// Shape is the lowering rule selected for a raw ABI type field.
type Shape int

const (
	Unknown Shape = iota
	Unit
	Bool
	SmallInt
	BigInt
	String
	Vec
	Option
	Struct
	Enum
	Tuple
	Array
	Generic
)

var shapeNames = [...]string{
	Unknown:  "unknown",
	Unit:     "unit",
	Bool:     "bool",
	SmallInt: "small-int",
	BigInt:   "big-int",
	String:   "string",
	Vec:      "vec",
	Option:   "option",
	Struct:   "struct",
	Enum:     "enum",
	Tuple:    "tuple",
	Array:    "array",
	Generic:  "generic",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

const (
	structPrefix  = "struct "
	enumPrefix    = "enum "
	genericPrefix = "generic "
)

// Classify maps a raw type field such as "struct std::vec::Vec" or "[_; 4]"
// to its Shape. It is the only place type fields are pattern matched.
func Classify(typeField string) Shape {
	switch typeField {
	case "()":
		return Unit
	case "bool":
		return Bool
	case "u8", "u16", "u32":
		return SmallInt
	case "u64", "u128", "u256", "raw untyped ptr":
		return BigInt
	case "b256", "address", "str":
		return String
	}

	switch {
	case strings.HasPrefix(typeField, genericPrefix):
		return Generic
	case isFixedStr(typeField):
		return String
	case strings.HasPrefix(typeField, structPrefix):
		if lastSegment(typeField[len(structPrefix):]) == "Vec" {
			return Vec
		}
		return Struct
	case strings.HasPrefix(typeField, enumPrefix):
		if lastSegment(typeField[len(enumPrefix):]) == "Option" {
			return Option
		}
		return Enum
	case strings.HasPrefix(typeField, "(") && strings.HasSuffix(typeField, ")"):
		return Tuple
	case strings.HasPrefix(typeField, "[") && strings.HasSuffix(typeField, "]") && strings.Contains(typeField, ";"):
		return Array
	}
	return Unknown
}

// isFixedStr matches "str[N]".
func isFixedStr(s string) bool {
	rest, ok := strings.CutPrefix(s, "str[")
	if !ok {
		return false
	}
	digits, ok := strings.CutSuffix(rest, "]")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// lastSegment returns the final "::" path segment of a type name, without
// any generic argument list.
func lastSegment(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	return strings.TrimSpace(name)
}

// TypeName returns the unqualified name of a struct or enum type field, or ""
// for any other shape.
func TypeName(typeField string) string {
	switch {
	case strings.HasPrefix(typeField, structPrefix):
		return lastSegment(typeField[len(structPrefix):])
	case strings.HasPrefix(typeField, enumPrefix):
		return lastSegment(typeField[len(enumPrefix):])
	}
	return ""
}

// genericName returns the parameter name of a "generic T" placeholder.
func genericName(typeField string) string {
	return strings.TrimSpace(strings.TrimPrefix(typeField, genericPrefix))
}
