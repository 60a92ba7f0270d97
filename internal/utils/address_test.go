package utils_test

import (
	"testing"

	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		name string
		addr string
		want bool
	}{
		{"valid lowercase", "0xab5801a7d398351b8be11c439e05c5b3259aec9b", true},
		{"valid mixed case", "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B", true},
		{"zero address", "0x0000000000000000000000000000000000000000", false},
		{"missing prefix", "ab5801a7d398351b8be11c439e05c5b3259aec9b", false},
		{"too short", "0xab5801", false},
		{"non-hex characters", "0xzz5801a7d398351b8be11c439e05c5b3259aec9b", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, utils.IsValidAddress(tc.addr))
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b",
		utils.NormalizeAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"))
}
