package hederalegacy

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

var uint256Pair abi.Arguments

func init() {
	t, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	uint256Pair = abi.Arguments{{Type: t}, {Type: t}}
}

func Keccak256(data ...[]byte) (h common.Hash) {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	hasher.Sum(h[:0])
	return
}

// MappingSlot is the storage slot of mapping[key] for a mapping declared at
// slot: keccak256(abi.encode(key, slot)).
func MappingSlot(key *big.Int, slot uint64) (common.Hash, error) {
	if key == nil || key.Sign() < 0 || key.BitLen() > 256 {
		return common.Hash{}, errors.Wrapf(ErrInvalidArgument, "mapping key %v is not a uint256", key)
	}
	packed, err := uint256Pair.Pack(key, new(big.Int).SetUint64(slot))
	if err != nil {
		return common.Hash{}, errors.Wrapf(ErrInvalidArgument, "mapping key %s: %v", key, err)
	}
	return Keccak256(packed), nil
}

func AddressMappingSlot(addr common.Address, slot uint64) (common.Hash, error) {
	return MappingSlot(new(big.Int).SetBytes(addr.Bytes()), slot)
}

// ArraySlot is where the data of a dynamic array declared at slot begins.
func ArraySlot(slot uint64) common.Hash {
	return Keccak256(common.BigToHash(new(big.Int).SetUint64(slot)).Bytes())
}

// NestedSlot hashes a slot again, giving the data location of a dynamic value
// stored at h.
func NestedSlot(h common.Hash) common.Hash {
	return Keccak256(h.Bytes())
}

// AddressTextHash hashes the 40 character hex text of addr, without the 0x
// prefix, as raw bytes.
func AddressTextHash(addr common.Address) common.Hash {
	return Keccak256([]byte(strings.TrimPrefix(strings.ToLower(addr.Hex()), "0x")))
}
