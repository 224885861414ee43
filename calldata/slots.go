package calldata

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/rosettanet/abi"
)

// slotBits is the width of one Ethereum calldata word.
const slotBits = 256

// Slot is one 256-bit word of a packed parameter list.
type Slot struct {
	Order int
	// Bits is the number of bits used by the slot's parameters.
	Bits int
	// Params is the number of consecutive parameters stored in the slot.
	Params int
}

// Slots packs elementary types greedily: a slot takes parameters until the next
// one would overflow 256 bits.
func Slots(types []string) ([]Slot, error) {
	var slots []Slot
	for _, t := range types {
		bits := abi.BitWidth(t)
		if bits == 0 {
			return nil, fmt.Errorf("type %q has no fixed bit width", t)
		}
		if len(slots) == 0 || slots[len(slots)-1].Bits+bits > slotBits {
			slots = append(slots, Slot{Order: len(slots)})
		}
		last := &slots[len(slots)-1]
		last.Bits += bits
		last.Params++
	}
	return slots, nil
}

// Pack lays out values in the slots of types. The first parameter of a slot takes
// its most significant bits and the used bits are right aligned. Signed values are
// stored in two's complement.
func Pack(types []string, values []*big.Int) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%d values for %d types", len(values), len(types))
	}
	slots, err := Slots(types)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(slots)*32)
	i := 0
	for _, slot := range slots {
		word := new(big.Int)
		for range slot.Params {
			bits := abi.BitWidth(types[i])
			raw, err := toBits(types[i], bits, values[i])
			if err != nil {
				return nil, fmt.Errorf("parameter %d: %w", i, err)
			}
			word.Lsh(word, uint(bits)).Or(word, raw)
			i++
		}
		var buf [32]byte
		out = append(out, word.FillBytes(buf[:])...)
	}
	return out, nil
}

// Unpack is the inverse of Pack.
func Unpack(types []string, data []byte) ([]*big.Int, error) {
	slots, err := Slots(types)
	if err != nil {
		return nil, err
	}
	if len(data) != len(slots)*32 {
		return nil, fmt.Errorf("%d bytes for %d slots", len(data), len(slots))
	}

	values := make([]*big.Int, 0, len(types))
	i := 0
	for _, slot := range slots {
		word := new(big.Int).SetBytes(data[slot.Order*32 : (slot.Order+1)*32])
		if word.BitLen() > slot.Bits {
			return nil, fmt.Errorf("slot %d has bits set beyond its %d used bits", slot.Order, slot.Bits)
		}
		consumed := 0
		for range slot.Params {
			bits := abi.BitWidth(types[i])
			consumed += bits
			v := new(big.Int).Rsh(word, uint(slot.Bits-consumed))
			v.And(v, mask(bits))
			if isSigned(types[i]) && v.Bit(bits-1) == 1 {
				v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
			}
			values = append(values, v)
			i++
		}
	}
	return values, nil
}

func toBits(t string, bits int, v *big.Int) (*big.Int, error) {
	if isSigned(t) {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%s does not fit in %s", v, t)
		}
		if v.Sign() < 0 {
			return new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), uint(bits))), nil
		}
		return v, nil
	}
	if v.Sign() < 0 || v.BitLen() > bits {
		return nil, fmt.Errorf("%s does not fit in %s", v, t)
	}
	return v, nil
}

func isSigned(t string) bool {
	return strings.HasPrefix(t, "int")
}

func mask(bits int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return m.Sub(m, big.NewInt(1))
}
