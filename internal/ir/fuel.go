package ir

// FuelType is a declaration lowered from one Fuel ABI type entry.
type FuelType struct {
	Decl      TypeDecl
	TypeID    int    // Wire-format type id
	TypeField string // Raw ABI "type" string, e.g. "struct Foo"
}

// FuelLog is one entry of a Fuel program's logged-types table.
type FuelLog struct {
	LogID     string
	Type      FuelType
	EventName string    // Disambiguated, e.g. "Foo2"
	Data      TypeIdent // Concrete application describing the logged payload
}
