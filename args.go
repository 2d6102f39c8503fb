package hederalegacy

import (
	"fmt"
	"strings"

	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

type ArgKind int

const (
	ArgAddress ArgKind = iota
	ArgUint256
	ArgInt64Array
	ArgString
	ArgBool
)

func (k ArgKind) String() string {
	switch k {
	case ArgAddress:
		return "address"
	case ArgUint256:
		return "uint256"
	case ArgInt64Array:
		return "int64[]"
	case ArgString:
		return "string"
	case ArgBool:
		return "bool"
	}
	return fmt.Sprintf("ArgKind(%d)", int(k))
}

type Arg struct {
	Kind    ArgKind
	Address string
	Uint256 *uint256.Int
	Int64s  []int64
	String  string
	Bool    bool
}

// Args is an ordered list of contract function arguments. It is kept separate
// from the SDK parameter builder so commands can be inspected before they are
// submitted.
type Args struct {
	items []Arg
}

func NewArgs() *Args {
	return &Args{}
}

// AddAddress takes an entity id (0.0.x) or a 0x address.
func (a *Args) AddAddress(value string) *Args {
	a.items = append(a.items, Arg{Kind: ArgAddress, Address: value})
	return a
}

func (a *Args) AddUint256(value *uint256.Int) *Args {
	a.items = append(a.items, Arg{Kind: ArgUint256, Uint256: new(uint256.Int).Set(value)})
	return a
}

func (a *Args) AddUint64(value uint64) *Args {
	return a.AddUint256(uint256.NewInt(value))
}

func (a *Args) AddInt64Array(values []int64) *Args {
	a.items = append(a.items, Arg{Kind: ArgInt64Array, Int64s: append([]int64(nil), values...)})
	return a
}

func (a *Args) AddString(value string) *Args {
	a.items = append(a.items, Arg{Kind: ArgString, String: value})
	return a
}

func (a *Args) AddBool(value bool) *Args {
	a.items = append(a.items, Arg{Kind: ArgBool, Bool: value})
	return a
}

func (a *Args) Items() []Arg {
	if a == nil {
		return nil
	}
	return a.items
}

func (a *Args) Len() int {
	return len(a.Items())
}

func (a *Args) String() string {
	parts := make([]string, 0, a.Len())
	for _, item := range a.Items() {
		var value string
		switch item.Kind {
		case ArgAddress:
			value = item.Address
		case ArgUint256:
			value = item.Uint256.Dec()
		case ArgInt64Array:
			value = fmt.Sprint(item.Int64s)
		case ArgString:
			value = fmt.Sprintf("%q", item.String)
		case ArgBool:
			value = fmt.Sprint(item.Bool)
		}
		parts = append(parts, item.Kind.String()+" "+value)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Params converts the list into SDK function parameters. A nil list gives
// empty parameters.
func (a *Args) Params() (params *hedera.ContractFunctionParameters, err error) {
	params = hedera.NewContractFunctionParameters()

	for _, item := range a.Items() {
		switch item.Kind {
		case ArgAddress:
			addr, err2 := ResolveAddress(item.Address)
			if err2 != nil {
				return nil, err2
			}
			if _, err = params.AddAddress(strings.TrimPrefix(addr.Hex(), "0x")); err != nil {
				return nil, errors.WithStack(err)
			}
		case ArgUint256:
			word := item.Uint256.Bytes32()
			params.AddUint256(word[:])
		case ArgInt64Array:
			params.AddInt64Array(item.Int64s)
		case ArgString:
			params.AddString(item.String)
		case ArgBool:
			params.AddBool(item.Bool)
		}
	}

	return
}
