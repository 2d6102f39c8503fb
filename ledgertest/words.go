package ledgertest

import (
	"math/big"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/ethereum/go-ethereum/common"
)

// Words builds an ABI encoded result from 32 byte words. Accepted values:
// int, int64, uint64, *big.Int (two's complement when negative),
// common.Address and bool.
func Words(values ...any) hl.FunctionResult {
	out := make([]byte, 0, len(values)*32)
	for _, v := range values {
		out = append(out, word(v)...)
	}
	return out
}

// StringTail appends the length and padded bytes of s, for use after an
// offset word produced by Words.
func StringTail(s string) []byte {
	out := word(len(s))
	data := []byte(s)
	padded := make([]byte, (len(data)+31)/32*32)
	copy(padded, data)
	return append(out, padded...)
}

func word(v any) []byte {
	var n *big.Int
	switch x := v.(type) {
	case int:
		n = big.NewInt(int64(x))
	case int64:
		n = big.NewInt(x)
	case uint64:
		n = new(big.Int).SetUint64(x)
	case *big.Int:
		n = new(big.Int).Set(x)
	case common.Address:
		return common.LeftPadBytes(x.Bytes(), 32)
	case bool:
		n = big.NewInt(0)
		if x {
			n = big.NewInt(1)
		}
	default:
		panic("ledgertest: unsupported word type")
	}

	if n.Sign() < 0 {
		n.Add(n, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return common.LeftPadBytes(n.Bytes(), 32)
}
