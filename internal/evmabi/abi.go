package evmabi

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Param is one input or output of an ABI entry.
type Param struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	InternalType string  `json:"internalType,omitempty"`
	Indexed      bool    `json:"indexed,omitempty"`
	Components   []Param `json:"components,omitempty"`
}

// Entry is one element of a contract ABI.
type Entry struct {
	Type            string  `json:"type"`
	Name            string  `json:"name,omitempty"`
	Inputs          []Param `json:"inputs,omitempty"`
	Outputs         []Param `json:"outputs,omitempty"`
	Anonymous       bool    `json:"anonymous,omitempty"`
	StateMutability string  `json:"stateMutability,omitempty"`
}

// ABI is a decoded contract ABI.
type ABI []Entry

// Decode parses ABI JSON: an array of entries.
func Decode(data []byte) (ABI, error) {
	var abi ABI
	if err := json.Unmarshal(data, &abi); err != nil {
		return nil, fmt.Errorf("failed to decode EVM ABI: %w", err)
	}
	return abi, nil
}

// Events returns the event entries in ABI order. When names is non-empty only
// the named events are returned; a name with no matching event is an error.
func (abi ABI) Events(names ...string) ([]Entry, error) {
	var events []Entry
	found := make(map[string]bool)
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, e := range abi {
		if e.Type != "event" {
			continue
		}
		if len(want) > 0 && !want[e.Name] {
			continue
		}
		found[e.Name] = true
		events = append(events, e)
	}
	for _, n := range names {
		if !found[n] {
			return nil, fmt.Errorf("event %q not found in ABI", n)
		}
	}
	return events, nil
}
