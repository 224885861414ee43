package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BlockID is an Ethereum block parameter. Tags name the latest native block; numbers
// and hashes name the native block with the same number or hash. The zero value is
// the latest block.
type BlockID struct {
	number *uint64
	hash   *felt.Felt
}

type blockObject struct {
	BlockNumber *hexutil.Uint64 `json:"blockNumber"`
	BlockHash   *common.Hash    `json:"blockHash"`
}

func (b *BlockID) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		return b.setTag(tag)
	}

	var obj blockObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid block id: %w", err)
	}
	switch {
	case obj.BlockNumber != nil && obj.BlockHash != nil:
		return errors.New("invalid block id: both blockNumber and blockHash are set")
	case obj.BlockNumber != nil:
		n := uint64(*obj.BlockNumber)
		b.number = &n
	case obj.BlockHash != nil:
		hash := new(felt.Felt)
		if err := hash.SetBytesCanonical(obj.BlockHash.Bytes()); err != nil {
			return fmt.Errorf("invalid block hash: %w", err)
		}
		b.hash = hash
	}
	return nil
}

func (b *BlockID) setTag(tag string) error {
	switch tag {
	case "latest", "safe", "finalized", "pending":
		return nil
	case "earliest":
		b.number = new(uint64)
		return nil
	}
	n, err := hexutil.DecodeUint64(tag)
	if err != nil {
		return fmt.Errorf("invalid block tag %q", tag)
	}
	b.number = &n
	return nil
}

// MarshalJSON writes the native form of the block id.
func (b BlockID) MarshalJSON() ([]byte, error) {
	switch {
	case b.hash != nil:
		return json.Marshal(map[string]*felt.Felt{"block_hash": b.hash})
	case b.number != nil:
		return json.Marshal(map[string]uint64{"block_number": *b.number})
	default:
		return json.Marshal("latest")
	}
}
