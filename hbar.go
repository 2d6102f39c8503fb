package hederalegacy

import (
	"math"
	"strconv"

	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/holiman/uint256"
)

const TinybarsPerHbar = 100_000_000

// Hbar is an amount in tinybars.
type Hbar int64

func HbarFrom(hbars float64) Hbar {
	return Hbar(math.Round(hbars * TinybarsPerHbar))
}

func HbarFromTinybars(tinybars int64) Hbar {
	return Hbar(tinybars)
}

func (h Hbar) Tinybars() int64 {
	return int64(h)
}

func (h Hbar) Hbars() float64 {
	return float64(h) / TinybarsPerHbar
}

func (h Hbar) Neg() Hbar {
	return -h
}

func (h Hbar) Sdk() hedera.Hbar {
	return hedera.HbarFromTinybar(int64(h))
}

// String formats small amounts in tinybars and everything else in hbars.
func (h Hbar) String() string {
	if h < 10_000 && h > -10_000 {
		return strconv.FormatInt(int64(h), 10) + " tℏ"
	}
	return strconv.FormatFloat(h.Hbars(), 'f', -1, 64) + " ℏ"
}

// TinybarsString formats a contract returned tinybar amount. Values that do
// not fit an Hbar are printed raw.
func TinybarsString(v *uint256.Int) string {
	if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return v.Dec() + " tℏ"
	}
	return HbarFromTinybars(int64(v.Uint64())).String()
}
