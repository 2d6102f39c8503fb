package hederalegacy

import (
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
)

func init() {
	MainNetParams.Name = NetworkMainNet
	MainNetParams.MirrorNode = "mainnet-public.mirrornode.hedera.com:443"

	TestNetParams.Name = NetworkTestNet
	TestNetParams.MirrorNode = "testnet.mirrornode.hedera.com:443"

	PreviewNetParams.Name = NetworkPreviewNet
	PreviewNetParams.MirrorNode = "previewnet.mirrornode.hedera.com:443"

	LocalNetParams.Name = NetworkLocal
	LocalNetParams.MirrorNode = "127.0.0.1:5600"
	LocalNetParams.Nodes = map[string]hedera.AccountID{
		"127.0.0.1:50211": {Account: 3},
	}
}

type NetworkParams struct {
	Name       Network
	MirrorNode string
	// Nodes is only set for networks the SDK has no built-in address book for.
	Nodes map[string]hedera.AccountID
}

var MainNetParams = NetworkParams{}
var TestNetParams = NetworkParams{}
var PreviewNetParams = NetworkParams{}
var LocalNetParams = NetworkParams{}

const (
	NetworkMainNet    Network = "mainnet"
	NetworkTestNet    Network = "testnet"
	NetworkPreviewNet Network = "previewnet"
	NetworkLocal      Network = "local"
)

type Network string

func (n Network) Valid() bool {
	return n == NetworkMainNet || n == NetworkTestNet || n == NetworkPreviewNet || n == NetworkLocal
}

func (n Network) Validate() (err error) {
	if !n.Valid() {
		err = errors.Wrapf(ErrInvalidNetwork, "'%s'", n)
	}
	return
}

func (n Network) Params() (params *NetworkParams, err error) {
	if err = n.Validate(); err != nil {
		return
	}

	switch n {
	case NetworkMainNet:
		return &MainNetParams, nil
	case NetworkTestNet:
		return &TestNetParams, nil
	case NetworkPreviewNet:
		return &PreviewNetParams, nil
	case NetworkLocal:
		return &LocalNetParams, nil
	}

	return
}

// SdkClient returns an unauthenticated SDK client bound to the network.
func (n Network) SdkClient() (client *hedera.Client, err error) {
	params, err := n.Params()
	if err != nil {
		return
	}

	switch params.Name {
	case NetworkMainNet:
		client = hedera.ClientForMainnet()
	case NetworkTestNet:
		client = hedera.ClientForTestnet()
	case NetworkPreviewNet:
		client = hedera.ClientForPreviewnet()
	default:
		client = hedera.ClientForNetwork(params.Nodes)
		client.SetMirrorNetwork([]string{params.MirrorNode})
	}

	return
}
