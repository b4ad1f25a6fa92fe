package evmabi

import (
	"fmt"
	"strconv"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/schema"
)

// ParamName is the wire name of the i-th parameter; unnamed parameters are
// called _<i>.
func ParamName(p Param, i int) string {
	if p.Name == "" {
		return "_" + strconv.Itoa(i)
	}
	return p.Name
}

// ArgsTypeName is the declaration name of an event's argument record.
func ArgsTypeName(event string) string {
	return ir.Uncapitalize(event) + "EventArgs"
}

// EventDecl lowers an event's inputs to a record declaration.
func EventDecl(ev Entry) (ir.TypeDecl, error) {
	fields := make([]ir.RecordField, len(ev.Inputs))
	for i, p := range ev.Inputs {
		ident, _, err := LowerParam(p)
		if err != nil {
			return ir.TypeDecl{}, fmt.Errorf("event %s: %w", ev.Name, err)
		}
		fields[i] = ir.NewRecordField(ParamName(p, i), ident)
	}
	return ir.NewTypeDecl(ArgsTypeName(ev.Name), ir.NewRecord(fields...)), nil
}

// EventDecls lowers events into one declaration set.
func EventDecls(events []Entry) (*ir.TypeDeclMulti, error) {
	set, err := ir.NewTypeDeclMulti()
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		d, err := EventDecl(ev)
		if err != nil {
			return nil, err
		}
		if err := set.Add(d); err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.Name, err)
		}
	}
	return set, nil
}

// EntityName is the name of the entity imported for a contract event.
func EntityName(contract, event string) string {
	return contract + "_" + event
}

// EventEntity builds the entity descriptor storing one contract event: an id
// plus one field per event parameter.
func EventEntity(contract string, ev Entry) (schema.Entity, error) {
	ent := schema.Entity{
		Name:   EntityName(contract, ev.Name),
		Fields: []schema.Field{{Name: "id", Type: schema.NamedType("ID").String()}},
	}
	for i, p := range ev.Inputs {
		_, ft, err := LowerParam(p)
		if err != nil {
			return schema.Entity{}, fmt.Errorf("event %s: %w", ev.Name, err)
		}
		name := ParamName(p, i)
		if name == "id" {
			name = "event_id"
		}
		ent.Fields = append(ent.Fields, schema.Field{Name: name, Type: ft.String()})
	}
	return ent, nil
}

// ImportSchema builds the entity schema for every event of a contract.
func ImportSchema(contract string, events []Entry) (*schema.Schema, error) {
	s := &schema.Schema{}
	for _, ev := range events {
		ent, err := EventEntity(contract, ev)
		if err != nil {
			return nil, err
		}
		s.Entities = append(s.Entities, ent)
	}
	return s, nil
}
