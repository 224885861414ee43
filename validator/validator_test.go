package validator_test

import (
	"testing"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexData(t *testing.T) {
	type request struct {
		Data string `validate:"hexdata"`
	}

	tests := map[string]bool{
		"0x":         true,
		"0xa9059cbb": true,
		"0xABCD":     true,
		"":           false,
		"a9059cbb":   false,
		"0xabc":      false,
		"0xzz":       false,
	}
	for data, valid := range tests {
		t.Run(data, func(t *testing.T) {
			err := validator.Validator().Struct(request{Data: data})
			if valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEthAddress(t *testing.T) {
	type request struct {
		From *string `validate:"omitempty,eth_addr"`
		To   string  `validate:"required,eth_addr"`
	}

	to := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	require.NoError(t, validator.Validator().Struct(request{To: to}))
	require.NoError(t, validator.Validator().Struct(request{To: to, From: &to}))

	bad := "0x1234"
	require.Error(t, validator.Validator().Struct(request{To: to, From: &bad}))
	require.Error(t, validator.Validator().Struct(request{To: bad}))
	require.Error(t, validator.Validator().Struct(request{}))
}

func TestFeltField(t *testing.T) {
	type request struct {
		Address *felt.Felt `validate:"required"`
	}

	require.NoError(t, validator.Validator().Struct(request{Address: new(felt.Felt).SetUint64(7)}))
	require.Error(t, validator.Validator().Struct(request{}))
}
