package collection

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/ledgertest"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testContract = "0.0.49101999"

func newTestCollection() (*Collection, *ledgertest.Ledger, *bytes.Buffer) {
	ledger := ledgertest.New()
	out := new(bytes.Buffer)
	c := New(&hl.Contract{
		Ledger:     ledger,
		Out:        hl.NewPrinter(out),
		Store:      hl.NewInMemoryStore(),
		Deployment: hl.Deployment{Name: hl.DeploymentCollection, ContractID: testContract},
	})
	return c, ledger, out
}

func TestOwnerMint(t *testing.T) {
	c, ledger, out := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "mint" && req.Payable == 0 && req.Gas == hl.DefaultMaxGas
	})).Return(&hl.Record{TransactionID: "tx1", Result: ledgertest.Words(22, 2, 11, 12)}, nil)

	serials, err := c.Mint(2)
	require.Nil(t, err)
	assert.Equal(t, []int64{11, 12}, serials)
	assert.Contains(t, out.String(), "You have mint 2 NFTs.\nNFT #11\nNFT #12\n*** tx1\n")
}

func TestBuyerMintPaysPerNft(t *testing.T) {
	c, ledger, _ := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "mint" && req.Payable == hl.HbarFrom(30) && req.Gas == BuyerMintGas
	})).Return(&hl.Record{Result: ledgertest.Words(22, 3, 1, 2, 3)}, nil)

	serials, err := c.BuyerMint(3)
	assert.Nil(t, err)
	assert.Equal(t, []int64{1, 2, 3}, serials)
	ledger.AssertExpectations(t)
}

func TestMintAmountOverflow(t *testing.T) {
	c, ledger, _ := newTestCollection()

	for _, amount := range []uint64{MaxMintAmount + 1, math.MaxUint64} {
		_, err := c.BuyerMint(amount)
		assert.ErrorIs(t, err, hl.ErrInvalidArgument)

		_, err = c.Mint(amount)
		assert.ErrorIs(t, err, hl.ErrInvalidArgument)
	}
	ledger.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestMintShortResult(t *testing.T) {
	c, ledger, _ := newTestCollection()

	ledger.On("Execute", mock.Anything).Return(&hl.Record{Result: ledgertest.Words(22, 2, 11)}, nil)

	_, err := c.Mint(2)
	assert.ErrorIs(t, err, hl.ErrResultOutOfRange)
}

func TestPause(t *testing.T) {
	c, ledger, out := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		items := req.Args.Items()
		return req.Function == "pause" && len(items) == 1 && items[0].Bool
	})).Return(&hl.Record{Result: ledgertest.Words(22)}, nil)

	assert.Nil(t, c.Pause(true))
	assert.Contains(t, out.String(), "Response Code is: 22\n")
}

func TestCost(t *testing.T) {
	c, ledger, out := newTestCollection()

	ledger.On("Call", mock.MatchedBy(func(req hl.CallRequest) bool {
		return req.Function == "cost" && req.Payment == hl.HbarFrom(6)
	})).Return(ledgertest.Words(int64(1_000_000_000)), nil)

	cost, err := c.Cost()
	assert.Nil(t, err)
	assert.Equal(t, hl.HbarFrom(10), cost)
	assert.Equal(t, "Cost is 10 ℏ\n", out.String())
}

func TestSetCost(t *testing.T) {
	c, ledger, _ := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		items := req.Args.Items()
		return req.Function == "setCost" && len(items) == 1 && items[0].Uint256.Uint64() == 1_000_000_000
	})).Return(&hl.Record{}, nil)

	assert.Nil(t, c.SetCost(uint256.NewInt(1_000_000_000)))
	ledger.AssertExpectations(t)
}

func TestWalletOfOwner(t *testing.T) {
	c, ledger, out := newTestCollection()
	ledger.OperatorID = "0.0.2002"

	ledger.On("Call", mock.MatchedBy(func(req hl.CallRequest) bool {
		items := req.Args.Items()
		return req.Function == "walletOfOwner" &&
			req.Gas == BuyerQueryGas &&
			req.Payment == hl.HbarFromTinybars(300_000) &&
			len(items) == 1 && items[0].Address == "0.0.2002"
	})).Return(ledgertest.Words(32, 2, 5, 8), nil)

	serials, err := c.WalletOfOwner()
	require.Nil(t, err)
	require.Len(t, serials, 2)
	assert.Equal(t, "\ni :>>  5\ni :>>  8\n", out.String())
}

func TestReadCost(t *testing.T) {
	c, ledger, out := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "cost" && req.Payable == hl.HbarFrom(1) && req.Gas == BuyerQueryGas
	})).Return(&hl.Record{Result: ledgertest.Words(int64(1_000_000_000))}, nil)

	value, err := c.ReadCost()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1_000_000_000), value.Uint64())
	assert.Contains(t, out.String(), "First return value is: 1000000000\n")
}

func TestFreeMintWaitsForReceipt(t *testing.T) {
	c, ledger, _ := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "mint" && req.WithReceipt
	})).Return(&hl.Record{Receipt: hl.Receipt{Status: "SUCCESS"}, Result: ledgertest.Words(4)}, nil)

	value, err := c.FreeMint()
	assert.Nil(t, err)
	assert.Equal(t, uint64(4), value.Uint64())
}

func TestWriteMint(t *testing.T) {
	c, ledger, out := newTestCollection()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "mint" && req.Payable == hl.HbarFromTinybars(10)
	})).Return(&hl.Record{Result: ledgertest.Words(7, 3, int64(500_000_000))}, nil)

	minted, err := c.WriteMint()
	assert.Nil(t, err)
	assert.Equal(t, uint64(500_000_000), minted.Value.Uint64())
	assert.Contains(t, out.String(), "You have mint #7.\n")
	assert.Contains(t, out.String(), "Owner of #3 received 5 ℏ.\n")
}

func TestWriteMintReadsFullValueWord(t *testing.T) {
	c, ledger, out := newTestCollection()

	large := new(big.Int).Lsh(big.NewInt(1), 64)
	large.Add(large, big.NewInt(5))
	ledger.On("Execute", mock.Anything).Return(&hl.Record{Result: ledgertest.Words(7, 3, large)}, nil)

	minted, err := c.WriteMint()
	require.Nil(t, err)
	assert.Equal(t, large.String(), minted.Value.Dec())
	assert.Contains(t, out.String(), "Owner of #3 received 18446744073709551621 tℏ.\n")
}

func TestInitializeRecordsToken(t *testing.T) {
	c, ledger, _ := newTestCollection()

	address, err := hl.EntityToSolidity("0.0.49102000")
	require.Nil(t, err)
	ledger.On("Execute", mock.Anything).Return(&hl.Record{Result: ledgertest.Words(22, address)}, nil)

	tokenID, err := c.Initialize()
	assert.Nil(t, err)
	assert.Equal(t, "0.0.49102000", tokenID)
	assert.Equal(t, "0.0.49102000", c.Deployment.TokenID)
}
