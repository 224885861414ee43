package felt

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element

	Base16 = 16
)

var ErrNotCanonical = errors.New("value is not a canonical field element")

// Zero felt constant
var Zero = Felt{}

var bigIntPool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// Felt is a native word of the target chain: an element of the Stark field.
type Felt struct {
	val fp.Element
}

// NewFromUint64 returns a felt holding v.
func NewFromUint64(v uint64) *Felt {
	return new(Felt).SetUint64(v)
}

// Modulus returns the field prime.
func Modulus() *big.Int {
	return fp.Modulus()
}

// UnmarshalJSON accepts numbers and strings as input.
// See Element.SetString for valid prefixes (0x, 0b, ...).
// If there is an error, we try to explicitly unmarshal from hex before
// returning an error. This implementation is taken from [gnark-crypto].
//
// [gnark-crypto]: https://github.com/ConsenSys/gnark-crypto/blob/9fd0a7de2044f088a29cfac373da73d868230148/ecc/stark-curve/fp/element.go#L1028-L1056
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > fp.Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	// we accept numbers and strings, remove leading and trailing quotes if any
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}

	// get temporary big int from the pool
	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, 16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}

	z.val.SetBigInt(vv)
	return nil
}

// MarshalJSON encodes the felt as a 0x-prefixed hex string
func (z *Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// SetBytes interprets e as a big-endian number and reduces it modulo the field prime
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetBytesCanonical interprets data as a big-endian number and fails if it is not
// smaller than the field prime. No reduction ever happens.
func (z *Felt) SetBytesCanonical(data []byte) error {
	if len(data) > Bytes {
		return ErrNotCanonical
	}
	return z.val.SetBytesCanonical(leftPad(data))
}

// SetBig sets z to v. Negative values and values not below the field prime are rejected.
func (z *Felt) SetBig(v *big.Int) (*Felt, error) {
	if v.Sign() < 0 || v.Cmp(fp.Modulus()) >= 0 {
		return nil, ErrNotCanonical
	}
	z.val.SetBigInt(v)
	return z, nil
}

// SetString parses a decimal or 0x-prefixed hex string
func (z *Felt) SetString(number string) (*Felt, error) {
	if number == "" || number == "0x" || number == "0X" {
		z.val.SetZero()
		return z, nil
	}
	_, err := z.val.SetString(number)
	return z, err
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// String returns the 0x-prefixed hex representation without leading zeros
func (z *Felt) String() string {
	return "0x" + z.val.Text(Base16)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Marshal forwards the call to underlying field element implementation
func (z *Felt) Marshal() []byte {
	return z.val.Marshal()
}

// Bytes forwards the call to underlying field element implementation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// BigInt stores the regular (non montgomery) value of z in res and returns it
func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// Uint64 returns the value of z and whether it fits in 64 bits
func (z *Felt) Uint64() (uint64, bool) {
	b := z.BigInt(new(big.Int))
	return b.Uint64(), b.IsUint64()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.val.IsOne()
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.val.Add(&x.val, &y.val)
	return z
}

// Neg forwards the call to underlying field element implementation
func (z *Felt) Neg(x *Felt) *Felt {
	z.val.Neg(&x.val)
	return z
}

// BitLen returns the number of bits required to represent z
func (z *Felt) BitLen() int {
	return z.val.BitLen()
}

func leftPad(data []byte) []byte {
	if len(data) == Bytes {
		return data
	}
	padded := make([]byte, Bytes)
	copy(padded[Bytes-len(data):], data)
	return padded
}

// FromHex parses a hex string with or without the 0x prefix
func FromHex(s string) (*Felt, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return new(Felt).SetString(s)
}

// Strings renders a slice of felts as hex strings
func Strings(felts []*Felt) []string {
	out := make([]string, len(felts))
	for i, f := range felts {
		out[i] = f.String()
	}
	return out
}
