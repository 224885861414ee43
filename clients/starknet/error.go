package starknet

import (
	"encoding/json"
	"fmt"
)

// Error is a JSON-RPC error returned by a Starknet node.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("%d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.Code, e.Message, e.Data)
}

// Well known Starknet node error codes
const (
	ContractNotFound        = 20
	BlockNotFound           = 24
	ContractError           = 40
	TransactionExecError    = 41
	InvalidTransactionNonce = 52
	ValidationFailure       = 55
)
