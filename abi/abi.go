// Package abi models Starknet contract ABIs and derives Ethereum equivalents of
// their functions.
package abi

import (
	"encoding/json"
	"errors"
)

// EntryType is the discriminator of a top level ABI item.
type EntryType string

const (
	EntryTypeFunction    EntryType = "function"
	EntryTypeInterface   EntryType = "interface"
	EntryTypeImpl        EntryType = "impl"
	EntryTypeStruct      EntryType = "struct"
	EntryTypeEnum        EntryType = "enum"
	EntryTypeEvent       EntryType = "event"
	EntryTypeConstructor EntryType = "constructor"
	EntryTypeL1Handler   EntryType = "l1_handler"
)

var ErrEmptyABI = errors.New("contract abi is empty")

// Variable is a named, typed slot of the ABI: a function input or output, a struct
// member or an enum variant.
type Variable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Function struct {
	Name            string     `json:"name"`
	Inputs          []Variable `json:"inputs"`
	Outputs         []Variable `json:"outputs"`
	StateMutability string     `json:"state_mutability,omitempty"`
	// Interface is the name of the interface the function was declared in, if any.
	Interface string `json:"-"`
}

type Struct struct {
	Name    string     `json:"name"`
	Members []Variable `json:"members"`
}

type Enum struct {
	Name     string     `json:"name"`
	Variants []Variable `json:"variants"`
}

// ABI is the parsed form of a Sierra or deprecated Cairo contract ABI. Only the
// items that take part in translation are kept.
type ABI struct {
	Functions []Function
	Structs   []Struct
	Enums     []Enum
}

type entryCommon struct {
	Type EntryType `json:"type"`
}

type interfaceEntry struct {
	Name  string            `json:"name"`
	Items []json.RawMessage `json:"items"`
}

// Parse accepts the ABI either as a JSON array or as a JSON string holding the
// array, which is how Sierra classes carry it.
func Parse(data []byte) (*ABI, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrEmptyABI
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, err
		}
		if inner == "" {
			return nil, ErrEmptyABI
		}
		data = []byte(inner)
	}

	a := new(ABI)
	if err := json.Unmarshal(data, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *ABI) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	parsed := new(ABI)
	if err := parsed.addItems(items, ""); err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a *ABI) addItems(items []json.RawMessage, iface string) error {
	for _, item := range items {
		var common entryCommon
		if err := json.Unmarshal(item, &common); err != nil {
			return err
		}

		switch common.Type {
		case EntryTypeFunction:
			fn := Function{}
			if err := json.Unmarshal(item, &fn); err != nil {
				return err
			}
			fn.Interface = iface
			a.Functions = append(a.Functions, fn)
		case EntryTypeInterface:
			entry := interfaceEntry{}
			if err := json.Unmarshal(item, &entry); err != nil {
				return err
			}
			if err := a.addItems(entry.Items, entry.Name); err != nil {
				return err
			}
		case EntryTypeStruct:
			s := Struct{}
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			a.Structs = append(a.Structs, s)
		case EntryTypeEnum:
			e := Enum{}
			if err := json.Unmarshal(item, &e); err != nil {
				return err
			}
			a.Enums = append(a.Enums, e)
		default:
			// events, impls, constructors and l1 handlers are never called through the gateway
		}
	}
	return nil
}
