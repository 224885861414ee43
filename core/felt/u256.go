package felt

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	ErrU128Overflow = errors.New("value does not fit in 128 bits")
	ErrU256Overflow = errors.New("value does not fit in 256 bits")
)

var mask128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// SplitU256 splits a 256-bit value into its low and high 128-bit halves,
// the representation Cairo uses for core::integer::u256.
func SplitU256(v *big.Int) (low, high *Felt, err error) {
	if v.Sign() < 0 {
		return nil, nil, ErrU256Overflow
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, nil, ErrU256Overflow
	}
	lo := new(uint256.Int).And(u, mask128)
	hi := new(uint256.Int).Rsh(u, 128)

	loBytes, hiBytes := lo.Bytes32(), hi.Bytes32()
	return new(Felt).SetBytes(loBytes[:]), new(Felt).SetBytes(hiBytes[:]), nil
}

// JoinU256 recombines low and high 128-bit halves into a 256-bit value.
func JoinU256(low, high *Felt) (*big.Int, error) {
	if low.BitLen() > 128 || high.BitLen() > 128 {
		return nil, ErrU128Overflow
	}
	lowBytes, highBytes := low.Bytes(), high.Bytes()
	lo := new(uint256.Int).SetBytes32(lowBytes[:])
	hi := new(uint256.Int).SetBytes32(highBytes[:])
	return new(uint256.Int).Or(new(uint256.Int).Lsh(hi, 128), lo).ToBig(), nil
}
