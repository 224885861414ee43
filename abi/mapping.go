package abi

import (
	"strings"

	"github.com/NethermindEth/rosettanet/core/crypto"
	"github.com/NethermindEth/rosettanet/core/felt"
)

var arrayPrefixes = []string{"core::array::Array::<", "core::array::Span::<"}

// CallableFunction is a native function whose inputs and outputs all have an
// Ethereum equivalent.
type CallableFunction struct {
	Function Function
	Inputs   []ConvertibleType
	Outputs  []ConvertibleType
}

// EthereumSignature returns the canonical Ethereum signature, e.g. transfer(address,uint256).
func (f *CallableFunction) EthereumSignature() string {
	var sb strings.Builder
	sb.WriteString(f.Function.Name)
	sb.WriteByte('(')
	for i, in := range f.Inputs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(in.Solidity)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (f *CallableFunction) EthereumSelector() Selector {
	return EthereumSelector(f.EthereumSignature())
}

// StarknetSelector is the native entry point selector, derived from the bare name.
func (f *CallableFunction) StarknetSelector() *felt.Felt {
	return crypto.EntryPointSelector(f.Function.Name)
}

func (f *CallableFunction) sameLayout(other *CallableFunction) bool {
	if f.Function.Name != other.Function.Name || len(f.Inputs) != len(other.Inputs) ||
		len(f.Outputs) != len(other.Outputs) {
		return false
	}
	for i := range f.Inputs {
		if !sameShape(f.Inputs[i], other.Inputs[i]) {
			return false
		}
	}
	for i := range f.Outputs {
		if !sameShape(f.Outputs[i], other.Outputs[i]) {
			return false
		}
	}
	return true
}

func sameShape(a, b ConvertibleType) bool {
	if a.Kind != b.Kind || a.Solidity != b.Solidity || a.Bits != b.Bits || a.Variants != b.Variants {
		return false
	}
	if a.Elem == nil || b.Elem == nil {
		return a.Elem == b.Elem
	}
	return sameShape(*a.Elem, *b.Elem)
}

// TypeMapping holds the Ethereum equivalents of every type and function of one
// contract ABI. It is immutable once built.
type TypeMapping struct {
	types     map[string]ConvertibleType
	functions []CallableFunction
	omitted   []string
}

// NewTypeMapping derives the mapping of every struct and enum defined in the ABI,
// then of every function. Functions with an untranslatable parameter are omitted.
func NewTypeMapping(a *ABI) *TypeMapping {
	b := &mappingBuilder{
		structs:  make(map[string]*Struct, len(a.Structs)),
		enums:    make(map[string]*Enum, len(a.Enums)),
		resolved: make(map[string]ConvertibleType),
		visiting: make(map[string]bool),
	}
	for i := range a.Structs {
		b.structs[a.Structs[i].Name] = &a.Structs[i]
	}
	for i := range a.Enums {
		b.enums[a.Enums[i].Name] = &a.Enums[i]
	}

	for _, s := range a.Structs {
		b.resolve(s.Name)
	}
	for _, e := range a.Enums {
		b.resolve(e.Name)
	}

	m := &TypeMapping{types: b.resolved}
	for _, fn := range a.Functions {
		inputs, ok := b.resolveAll(fn.Inputs)
		if !ok {
			m.omitted = append(m.omitted, fn.Name)
			continue
		}
		outputs, ok := b.resolveAll(fn.Outputs)
		if !ok {
			m.omitted = append(m.omitted, fn.Name)
			continue
		}
		m.functions = append(m.functions, CallableFunction{
			Function: fn,
			Inputs:   inputs,
			Outputs:  outputs,
		})
	}
	return m
}

// Lookup returns the Ethereum equivalent of a native type name.
func (m *TypeMapping) Lookup(native string) (ConvertibleType, bool) {
	t, ok := m.types[native]
	if !ok {
		if t, ok = builtins[native]; !ok {
			return unsupported, false
		}
	}
	return t, t.Supported()
}

// Functions returns the callable functions in ABI order.
func (m *TypeMapping) Functions() []CallableFunction {
	return m.functions
}

// Omitted returns the names of the functions that have no Ethereum equivalent.
func (m *TypeMapping) Omitted() []string {
	return m.omitted
}

type mappingBuilder struct {
	structs  map[string]*Struct
	enums    map[string]*Enum
	resolved map[string]ConvertibleType
	visiting map[string]bool
}

func (b *mappingBuilder) resolveAll(vars []Variable) ([]ConvertibleType, bool) {
	types := make([]ConvertibleType, 0, len(vars))
	for _, v := range vars {
		t := b.resolve(v.Type)
		if !t.Supported() {
			return nil, false
		}
		types = append(types, t)
	}
	return types, true
}

func (b *mappingBuilder) resolve(native string) ConvertibleType {
	if t, ok := b.resolved[native]; ok {
		return t
	}
	if t, ok := builtins[native]; ok {
		return t
	}
	if b.visiting[native] {
		return unsupported
	}

	b.visiting[native] = true
	t := b.derive(native)
	delete(b.visiting, native)

	b.resolved[native] = t
	return t
}

func (b *mappingBuilder) derive(native string) ConvertibleType {
	if elem, ok := arrayElement(native); ok {
		e := b.resolve(elem)
		if !e.Supported() || e.Kind == KindArray {
			return unsupported
		}
		return arrayType(native, e)
	}
	if s, ok := b.structs[native]; ok {
		return b.deriveStruct(native, s)
	}
	if e, ok := b.enums[native]; ok {
		return deriveEnum(native, e)
	}
	return unsupported
}

func (b *mappingBuilder) deriveStruct(native string, s *Struct) ConvertibleType {
	switch len(s.Members) {
	case 1:
		member := b.resolve(s.Members[0].Type)
		if !member.Supported() {
			return unsupported
		}
		if member.Kind == KindFelt && strings.HasSuffix(lastSegment(native), "Address") {
			return contractAddressType(native)
		}
		member.Native = native
		return member
	case 2:
		if s.Members[0].Name != "low" || s.Members[1].Name != "high" {
			return unsupported
		}
		for _, m := range s.Members {
			half := b.resolve(m.Type)
			if !(half.Kind == KindFelt || (half.Kind == KindUint && half.Bits == 128)) {
				return unsupported
			}
		}
		return u256Type(native)
	default:
		return unsupported
	}
}

func deriveEnum(native string, e *Enum) ConvertibleType {
	if len(e.Variants) == 0 || len(e.Variants) > 256 {
		return unsupported
	}
	for _, v := range e.Variants {
		if v.Type != "()" && v.Type != "" {
			return unsupported
		}
	}
	if len(e.Variants) == 2 && e.Variants[0].Name == "False" && e.Variants[1].Name == "True" {
		return boolType(native)
	}
	return ConvertibleType{Native: native, Solidity: "uint8", Kind: KindEnum, Variants: len(e.Variants)}
}

func arrayElement(native string) (string, bool) {
	for _, prefix := range arrayPrefixes {
		if rest, ok := strings.CutPrefix(native, prefix); ok {
			return strings.CutSuffix(rest, ">")
		}
	}
	return "", false
}

func lastSegment(native string) string {
	if i := strings.LastIndex(native, "::"); i >= 0 {
		return native[i+2:]
	}
	return native
}
