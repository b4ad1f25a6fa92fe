package codegen

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/indexgen/internal/evmabi"
	"github.com/roach88/indexgen/internal/fuelabi"
	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/schema"
)

// Ecosystem selects the ABI dialect of a contract.
type Ecosystem string

const (
	EVM  Ecosystem = "evm"
	Fuel Ecosystem = "fuel"
)

// Contract is one ABI input of a project.
type Contract struct {
	Name      string
	Ecosystem Ecosystem
	ABI       []byte
	Events    []string // EVM event selection; empty selects every event
}

// Event is a lowered event: its name and the type of its payload.
type Event struct {
	Name  string
	LogID string // Fuel only
	Data  ir.TypeIdent
}

// Lowered is a contract after lowering.
type Lowered struct {
	Contract  string
	Ecosystem Ecosystem
	Decls     *ir.TypeDeclMulti
	Events    []Event
	Entities  *schema.Schema // EVM contract-import entities
}

// Lower lowers one contract's ABI.
func Lower(c Contract, logger zerolog.Logger) (*Lowered, error) {
	switch c.Ecosystem {
	case EVM:
		return lowerEVM(c)
	case Fuel:
		return lowerFuel(c, logger)
	}
	return nil, fmt.Errorf("unknown ecosystem %q", c.Ecosystem)
}

func lowerEVM(c Contract) (*Lowered, error) {
	abi, err := evmabi.Decode(c.ABI)
	if err != nil {
		return nil, err
	}
	events, err := abi.Events(c.Events...)
	if err != nil {
		return nil, err
	}
	set, err := evmabi.EventDecls(events)
	if err != nil {
		return nil, err
	}
	imported, err := evmabi.ImportSchema(c.Name, events)
	if err != nil {
		return nil, err
	}

	l := &Lowered{Contract: c.Name, Ecosystem: EVM, Decls: set, Entities: imported}
	for _, ev := range events {
		l.Events = append(l.Events, Event{Name: ev.Name, Data: ir.Named(evmabi.ArgsTypeName(ev.Name))})
	}
	return l, nil
}

func lowerFuel(c Contract, logger zerolog.Logger) (*Lowered, error) {
	abi, err := fuelabi.Decode(c.ABI)
	if err != nil {
		return nil, err
	}
	types, err := fuelabi.LowerTypes(abi, logger.With().Str("contract", c.Name).Logger())
	if err != nil {
		return nil, err
	}
	set, err := fuelabi.Decls(types)
	if err != nil {
		return nil, err
	}
	logs, err := fuelabi.DecodeLogs(abi, types)
	if err != nil {
		return nil, err
	}

	l := &Lowered{Contract: c.Name, Ecosystem: Fuel, Decls: set}
	for _, lg := range logs {
		l.Events = append(l.Events, Event{Name: lg.EventName, LogID: lg.LogID, Data: lg.Data})
	}
	return l, nil
}
