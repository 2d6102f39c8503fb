package hederalegacy

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const wordSize = 32

// FunctionResult is the raw ABI encoded output of a contract call. Values are
// read by word index, the way the SDK result getters address them.
type FunctionResult []byte

var twoTo256 = new(big.Int).Lsh(big.NewInt(1), 256)

func (r FunctionResult) Words() int {
	return len(r) / wordSize
}

func (r FunctionResult) word(index uint64) ([]byte, error) {
	start := index * wordSize
	if start+wordSize > uint64(len(r)) || start/wordSize != index {
		return nil, errors.Wrapf(ErrResultOutOfRange, "word %d of %d", index, r.Words())
	}
	return r[start : start+wordSize], nil
}

func (r FunctionResult) Uint256(index uint64) (*uint256.Int, error) {
	w, err := r.word(index)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(w), nil
}

func (r FunctionResult) Int256(index uint64) (*big.Int, error) {
	w, err := r.word(index)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(w)
	if w[0]&0x80 != 0 {
		v.Sub(v, twoTo256)
	}
	return v, nil
}

func (r FunctionResult) Uint160(index uint64) (*uint256.Int, error) {
	w, err := r.word(index)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes20(w[12:]), nil
}

func (r FunctionResult) Address(index uint64) (common.Address, error) {
	w, err := r.word(index)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(w[12:]), nil
}

func (r FunctionResult) Int64(index uint64) (int64, error) {
	w, err := r.word(index)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(w[24:])), nil
}

func (r FunctionResult) Uint64(index uint64) (uint64, error) {
	w, err := r.word(index)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(w[24:]), nil
}

func (r FunctionResult) Bool(index uint64) (bool, error) {
	w, err := r.word(index)
	if err != nil {
		return false, err
	}
	return w[wordSize-1] != 0, nil
}

// String decodes a dynamic string whose offset is stored at word index.
func (r FunctionResult) String(index uint64) (string, error) {
	offset, err := r.Uint256(index)
	if err != nil {
		return "", err
	}
	if !offset.IsUint64() || offset.Uint64()%wordSize != 0 {
		return "", errors.Wrapf(ErrResultOutOfRange, "bad string offset %s", offset)
	}

	length, err := r.Uint256(offset.Uint64() / wordSize)
	if err != nil {
		return "", err
	}

	start := offset.Uint64() + wordSize
	if !length.IsUint64() || start+length.Uint64() > uint64(len(r)) {
		return "", errors.Wrapf(ErrResultOutOfRange, "string of length %s at offset %d", length, start)
	}

	return string(r[start : start+length.Uint64()]), nil
}

func (r FunctionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(r))
}

func (r *FunctionResult) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return errors.WithStack(err)
	}
	*r = b
	return
}
