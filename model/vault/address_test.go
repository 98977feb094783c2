package vault_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/inheritance-guard/model/vault"
)

func TestAddressHexRoundTrip(t *testing.T) {
	addr := vault.HexToAddress("0102030405060708")
	assert.Equal(t, "0102030405060708", addr.Hex())
	assert.Equal(t, addr, vault.HexToAddress(addr.Hex()))
}

func TestAddressHexPrefix(t *testing.T) {
	assert.Equal(t,
		vault.HexToAddress("0102030405060708"),
		vault.HexToAddress("0x0102030405060708"))
}

func TestBytesToAddressPadsAndCrops(t *testing.T) {
	short := vault.BytesToAddress([]byte{0xab})
	assert.Equal(t, "00000000000000ab", short.Hex())

	long := vault.BytesToAddress([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	assert.Equal(t, "0203040506070809", long.Hex())
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, vault.ZeroAddress.IsZero())
	assert.False(t, vault.HexToAddress("01").IsZero())
}

func TestAddressJSON(t *testing.T) {
	addr := vault.HexToAddress("deadbeef00000001")

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"deadbeef00000001"`, string(data))

	var decoded vault.Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}
