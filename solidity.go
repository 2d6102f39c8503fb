package hederalegacy

import (
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
)

// EntityToSolidity converts a shard.realm.num id into its long-zero EVM
// address. Alias and evm-address account ids have no long-zero form.
func EntityToSolidity(id string) (addr common.Address, err error) {
	account, err := hedera.AccountIDFromString(id)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "entity id '%s': %s", id, err)
		return
	}
	if account.AliasKey != nil || account.AliasEvmAddress != nil {
		err = errors.Wrapf(ErrInvalidArgument, "entity id '%s' is an alias", id)
		return
	}
	if account.Shard > math.MaxUint32 {
		err = errors.Wrapf(ErrInvalidArgument, "shard out of range in '%s'", id)
		return
	}

	addr = common.HexToAddress(account.ToSolidityAddress())
	return
}

func SolidityToEntity(addr common.Address) string {
	// 20 bytes of hex always decode.
	account, _ := hedera.AccountIDFromSolidityAddress(common.Bytes2Hex(addr.Bytes()))
	return account.String()
}

// ResolveAddress accepts either a 0x prefixed EVM address or an entity id.
func ResolveAddress(value string) (common.Address, error) {
	if strings.HasPrefix(value, "0x") {
		if !common.IsHexAddress(value) {
			return common.Address{}, errors.Wrapf(ErrInvalidArgument, "address '%s'", value)
		}
		return common.HexToAddress(value), nil
	}
	return EntityToSolidity(value)
}
