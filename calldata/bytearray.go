package calldata

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/rosettanet/core/felt"
)

// bytesPerWord is the number of bytes a bytes31 word holds.
const bytesPerWord = 31

// byteArrayWords serialises b the way core::byte_array::ByteArray is laid out:
// the number of full words, the full words, the pending word and its length.
func byteArrayWords(b []byte) []*felt.Felt {
	full := len(b) / bytesPerWord
	words := make([]*felt.Felt, 0, full+3)
	words = append(words, new(felt.Felt).SetUint64(uint64(full)))
	for i := range full {
		words = append(words, new(felt.Felt).SetBytes(b[i*bytesPerWord:(i+1)*bytesPerWord]))
	}
	pending := b[full*bytesPerWord:]
	return append(words,
		new(felt.Felt).SetBytes(pending),
		new(felt.Felt).SetUint64(uint64(len(pending))),
	)
}

func readByteArray(c *cursor) ([]byte, error) {
	full, err := c.length()
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, (full+1)*bytesPerWord)
	for range full {
		word, err := c.next()
		if err != nil {
			return nil, err
		}
		if word.BitLen() > 8*bytesPerWord {
			return nil, errors.New("byte array word exceeds 31 bytes")
		}
		raw := word.Bytes()
		b = append(b, raw[32-bytesPerWord:]...)
	}

	pending, err := c.next()
	if err != nil {
		return nil, err
	}
	pendingLen, err := c.next()
	if err != nil {
		return nil, err
	}
	n, ok := pendingLen.Uint64()
	if !ok || n >= bytesPerWord {
		return nil, fmt.Errorf("pending word length %s out of range", pendingLen)
	}
	if pending.BitLen() > 8*int(n) {
		return nil, errors.New("pending word exceeds its length")
	}
	raw := pending.Bytes()
	return append(b, raw[32-n:]...), nil
}
