package utils_test

import (
	"testing"

	"github.com/NethermindEth/rosettanet/utils"
	"github.com/stretchr/testify/assert"
)

func TestHexPrefix(t *testing.T) {
	assert.True(t, utils.HasHexPrefix("0Xabc"))
	assert.False(t, utils.HasHexPrefix("x0abc"))
	assert.Equal(t, "abc", utils.RemoveHexPrefix("0xabc"))
	assert.Equal(t, "abc", utils.RemoveHexPrefix("0Xabc"))
	assert.Equal(t, "abc", utils.RemoveHexPrefix("abc"))
	assert.Equal(t, "0xabc", utils.AddHexPrefix("abc"))
	assert.Equal(t, "0xabc", utils.AddHexPrefix("0xabc"))
}

func TestAddHexPadding(t *testing.T) {
	tests := map[string]struct {
		value  string
		target int
		prefix bool
		want   string
	}{
		"empty":          {"", 4, true, "0x0000"},
		"empty bare":     {"", 4, false, "0000"},
		"pads":           {"0x1", 4, true, "0x0001"},
		"adds prefix":    {"1", 4, true, "0x0001"},
		"drops prefix":   {"0x1", 4, false, "0001"},
		"exact":          {"0x1234", 4, true, "0x1234"},
		"longer is kept": {"0x12345", 4, true, "0x12345"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, utils.AddHexPadding(test.value, test.target, test.prefix))
		})
	}
}
