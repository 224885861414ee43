package abi

import "strconv"

// Kind is the closed set of native type shapes the gateway knows how to translate.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindFelt
	KindUint
	KindInt
	KindBool
	KindEnum
	KindContractAddress
	KindEthAddress
	KindBytes31
	KindU256
	KindByteArray
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindFelt:
		return "felt"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindContractAddress:
		return "contract_address"
	case KindEthAddress:
		return "eth_address"
	case KindBytes31:
		return "bytes31"
	case KindU256:
		return "u256"
	case KindByteArray:
		return "byte_array"
	case KindArray:
		return "array"
	default:
		return "unsupported"
	}
}

// ConvertibleType pairs a native type with its Ethereum equivalent.
type ConvertibleType struct {
	// Native is the fully qualified native type name, e.g. core::integer::u256.
	Native string
	// Solidity is the Ethereum ABI type name, e.g. uint256 or address[].
	Solidity string
	Kind     Kind
	// Bits is the integer width for KindUint and KindInt.
	Bits int
	// Variants is the number of unit variants for KindEnum.
	Variants int
	// Elem is the element type for KindArray.
	Elem *ConvertibleType
}

// Supported reports whether the type can be translated.
func (t ConvertibleType) Supported() bool {
	return t.Kind != KindUnsupported
}

// Dynamic reports whether the Ethereum encoding of the type uses the head/tail layout.
func (t ConvertibleType) Dynamic() bool {
	return t.Kind == KindArray || t.Kind == KindByteArray
}

var unsupported = ConvertibleType{Kind: KindUnsupported}

func feltType(native string) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "uint256", Kind: KindFelt}
}

func uintType(native string, bits int) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "uint" + strconv.Itoa(bits), Kind: KindUint, Bits: bits}
}

func intType(native string, bits int) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "int" + strconv.Itoa(bits), Kind: KindInt, Bits: bits}
}

func boolType(native string) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "bool", Kind: KindBool}
}

func u256Type(native string) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "uint256", Kind: KindU256}
}

func contractAddressType(native string) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: "address", Kind: KindContractAddress}
}

func arrayType(native string, elem ConvertibleType) ConvertibleType {
	return ConvertibleType{Native: native, Solidity: elem.Solidity + "[]", Kind: KindArray, Elem: &elem}
}

// builtins are the corelib types that do not appear as definitions in an ABI.
var builtins = map[string]ConvertibleType{
	"felt":                                  feltType("felt"),
	"core::felt252":                         feltType("core::felt252"),
	"core::starknet::class_hash::ClassHash": feltType("core::starknet::class_hash::ClassHash"),
	"core::integer::u8":                     uintType("core::integer::u8", 8),
	"core::integer::u16":                    uintType("core::integer::u16", 16),
	"core::integer::u32":                    uintType("core::integer::u32", 32),
	"core::integer::u64":                    uintType("core::integer::u64", 64),
	"core::integer::u128":                   uintType("core::integer::u128", 128),
	"core::integer::i8":                     intType("core::integer::i8", 8),
	"core::integer::i16":                    intType("core::integer::i16", 16),
	"core::integer::i32":                    intType("core::integer::i32", 32),
	"core::integer::i64":                    intType("core::integer::i64", 64),
	"core::integer::i128":                   intType("core::integer::i128", 128),
	"core::bool":                            boolType("core::bool"),
	"core::integer::u256":                   u256Type("core::integer::u256"),
	"Uint256":                               u256Type("Uint256"),
	"core::starknet::contract_address::ContractAddress": contractAddressType(
		"core::starknet::contract_address::ContractAddress"),
	"core::starknet::eth_address::EthAddress": {
		Native:   "core::starknet::eth_address::EthAddress",
		Solidity: "address",
		Kind:     KindEthAddress,
	},
	"core::bytes_31::bytes31": {
		Native:   "core::bytes_31::bytes31",
		Solidity: "bytes31",
		Kind:     KindBytes31,
	},
	"core::byte_array::ByteArray": {
		Native:   "core::byte_array::ByteArray",
		Solidity: "string",
		Kind:     KindByteArray,
	},
}
