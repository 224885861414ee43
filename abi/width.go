package abi

import (
	"strconv"
	"strings"
)

// BitWidth returns the number of bits an elementary Ethereum type occupies inside a
// calldata slot, or 0 when the type is not elementary.
func BitWidth(solidityType string) int {
	switch solidityType {
	case "bool":
		return 1
	case "address":
		return 160
	case "uint", "int":
		return 256
	}

	for _, prefix := range []string{"uint", "int"} {
		if rest, ok := strings.CutPrefix(solidityType, prefix); ok {
			bits, err := strconv.Atoi(rest)
			if err != nil || bits < 8 || bits > 256 || bits%8 != 0 || rest[0] == '0' {
				return 0
			}
			return bits
		}
	}

	if rest, ok := strings.CutPrefix(solidityType, "bytes"); ok && rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > 32 || rest[0] == '0' {
			return 0
		}
		return n * 8
	}
	return 0
}
