package hederalegacy

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestKeccak256(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Keccak256().Hex())
}

func TestArraySlot(t *testing.T) {
	assert.Equal(t, "0x290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563", ArraySlot(0).Hex())
	assert.Equal(t, "0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf6", ArraySlot(1).Hex())
}

func TestMappingSlot(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000002ec8369")

	slot, err := AddressMappingSlot(addr, 16)
	assert.Nil(t, err)

	expected := Keccak256(common.LeftPadBytes(addr.Bytes(), 32), common.LeftPadBytes([]byte{16}, 32))
	assert.Equal(t, expected, slot)

	nested := NestedSlot(slot)
	assert.Equal(t, Keccak256(slot.Bytes()), nested)

	_, err = MappingSlot(new(big.Int).Neg(big.NewInt(1)), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument, "uint256 keys cannot be negative")
}

func TestAddressTextHash(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000002EC8369")
	assert.Equal(t, Keccak256([]byte("0000000000000000000000000000000002ec8369")), AddressTextHash(addr))
}
