package solc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectorTransfer(t *testing.T) {
	// "transfer(address,uint256)" -> 0xa9059cbb, the ERC-20 standard
	// selector, a well-known fixed point for keccak256-based selector
	// derivation.
	got := SelectorHex("transfer(address,uint256)")
	require.Equal(t, "a9059cbb", got)
}

func TestEntrySelectorMatchesPrefix(t *testing.T) {
	hashes := map[string]string{
		"transfer(address,uint256)": "a9059cbb",
		"transferFrom(address,address,uint256)": "23b872dd",
	}
	sel, ok := EntrySelector(hashes, "transfer")
	require.True(t, ok)
	require.Equal(t, "a9059cbb", sel)
}

func TestEntrySelectorNoMatch(t *testing.T) {
	_, ok := EntrySelector(map[string]string{"foo()": "12345678"}, "bar")
	require.False(t, ok)
}
