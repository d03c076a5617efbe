package solc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataEntryRoundTripsHex(t *testing.T) {
	entry := DataEntry{Hex: "a1b2c3"}
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	require.Equal(t, `"a1b2c3"`, string(raw))

	var decoded DataEntry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "a1b2c3", decoded.Hex)
	require.Nil(t, decoded.Assembly)
}

func TestDataEntryRoundTripsNestedAssembly(t *testing.T) {
	entry := DataEntry{Assembly: &RawAssembly{
		Code: []RawInstruction{{Name: "PUSH", Value: "01"}},
	}}
	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded DataEntry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Assembly)
	require.Empty(t, decoded.Hex)
	require.Len(t, decoded.Assembly.Code, 1)
	require.Equal(t, "PUSH", decoded.Assembly.Code[0].Name)
}

func TestWarningEcrecoverAppendsContractPath(t *testing.T) {
	w := WarningEcrecover("Test.yul")
	require.Equal(t, severityWarning, w.Severity)
	require.Contains(t, w.FormattedMessage, "ecrecover")
	require.Contains(t, w.FormattedMessage, "--> Test.yul")
}

func TestWarningEcrecoverNoPathWhenUnknown(t *testing.T) {
	w := WarningEcrecover("")
	require.NotContains(t, w.FormattedMessage, "-->")
}

func TestSettingsWantsWildcard(t *testing.T) {
	s := Settings{OutputSelection: map[string][]string{
		"*": {string(SelectionEVM)},
	}}
	require.True(t, s.Wants("Anything.yul", SelectionEVM))
	require.False(t, s.Wants("Anything.yul", SelectionAST))
}

func TestSettingsLibraryAddresses(t *testing.T) {
	s := Settings{Libraries: map[string]map[string]string{
		"lib.yul": {"Math": "0x00000000000000000000000000000000000001"},
	}}
	addrs := s.LibraryAddresses()
	addr, ok := addrs["lib.yul:Math"]
	require.True(t, ok)
	require.Equal(t, byte(1), addr[19])
}
