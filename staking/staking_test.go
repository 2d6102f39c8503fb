package staking

import (
	"bytes"
	"math/big"
	"testing"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/ledgertest"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testContract = "0.0.49102024"

func newTestStaking() (*Staking, *ledgertest.Ledger, *bytes.Buffer, *hl.InMemoryStore) {
	ledger := ledgertest.New()
	out := new(bytes.Buffer)
	store := hl.NewInMemoryStore()
	contract := &hl.Contract{
		Ledger:     ledger,
		Out:        hl.NewPrinter(out),
		Store:      store,
		Deployment: hl.Deployment{Name: hl.DeploymentStaking, ContractID: testContract},
	}
	return New(contract, "302e"), ledger, out, store
}

func executeCall(function string) func(hl.ExecuteRequest) bool {
	return func(req hl.ExecuteRequest) bool {
		return req.ContractID == testContract && req.Function == function
	}
}

func TestInitialize(t *testing.T) {
	s, ledger, out, store := newTestStaking()

	tokenAddress, err := hl.EntityToSolidity("0.0.49102025")
	assert.Nil(t, err)

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		return req.Function == "initialize" && req.Payable == hl.HbarFrom(30)
	})).Return(&hl.Record{TransactionID: "tx", Result: ledgertest.Words(22, tokenAddress)}, nil)

	tokenID, err := s.Initialize()
	assert.Nil(t, err)
	assert.Equal(t, "0.0.49102025", tokenID)
	assert.Contains(t, out.String(), "Response Code is: 22")
	assert.Contains(t, out.String(), "Token Id is: 0.0.49102025")

	deployment, err := store.GetDeployment(hl.DeploymentStaking)
	assert.Nil(t, err)
	assert.Equal(t, "0.0.49102025", deployment.TokenID)
	ledger.AssertExpectations(t)
}

func TestMint(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		items := req.Args.Items()
		return req.Function == "mint" &&
			len(items) == 2 &&
			items[0].Kind == hl.ArgAddress &&
			items[1].Kind == hl.ArgUint256
	})).Return(&hl.Record{TransactionID: "0.0.1001@1.2", Result: ledgertest.Words(22, 1000)}, nil)

	err := s.Mint("0.0.1002", uint256.NewInt(1000))
	assert.Nil(t, err)
	assert.Contains(t, out.String(), "You have mint 1000 tokens to 0.0.1002")
	assert.Contains(t, out.String(), "22, 1000")
	assert.Contains(t, out.String(), "*** 0.0.1001@1.2")
}

func TestStakeSendsSerialsAndPeriod(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Execute", mock.MatchedBy(func(req hl.ExecuteRequest) bool {
		items := req.Args.Items()
		return req.Function == "stake" &&
			req.Payable == hl.HbarFrom(10) &&
			len(items) == 2 &&
			items[0].Kind == hl.ArgInt64Array &&
			items[1].Kind == hl.ArgUint256
	})).Return(&hl.Record{TransactionID: "tx", Result: ledgertest.Words(22, -1)}, nil)

	err := s.Stake([]int64{3, 4}, 1)
	assert.Nil(t, err)
	assert.Contains(t, out.String(), "22, -1")
}

func TestClaimScalesDecimals(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Execute", mock.MatchedBy(executeCall("claim"))).
		Return(&hl.Record{TransactionID: "tx", Result: ledgertest.Words(int64(25_000_000_000))}, nil)

	assert.Nil(t, s.Claim())
	assert.Contains(t, out.String(), "Claim value is 2.5\n")
}

func TestWithdrawPrintsHbar(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Execute", mock.MatchedBy(executeCall("withdraw"))).
		Return(&hl.Record{TransactionID: "tx", Result: ledgertest.Words(int64(3_000_000_000))}, nil)

	assert.Nil(t, s.Withdraw())
	assert.Contains(t, out.String(), "Withdraw value is 30 ℏ")
}

func TestMyStakeDecodesEntries(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	result := ledgertest.Words(
		128, 2,
		7, 1, 1700000000, 1700000100,
		9, 2, 1700000200, 1700000300,
	)
	ledger.On("Execute", mock.MatchedBy(executeCall("myStake"))).
		Return(&hl.Record{TransactionID: "tx", Result: result}, nil)

	entries, err := s.MyStake()
	assert.Nil(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, uint64(7), entries[0].Serial.Uint64())
	assert.Equal(t, uint64(2), entries[1].Period.Uint64())
	assert.Equal(t, int64(1700000300), entries[1].LastClaimedAt.Unix())
	assert.Contains(t, out.String(), "128  2\n")
}

func TestMyStakeTruncated(t *testing.T) {
	_, err := DecodeStakes(ledgertest.Words(128, 1, 7), hl.NewPrinter(new(bytes.Buffer)))
	assert.ErrorIs(t, err, hl.ErrResultOutOfRange)
}

func TestVaultQueries(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Call", mock.MatchedBy(func(req hl.CallRequest) bool {
		return req.Function == "vault" && req.Payment == hl.HbarFrom(10)
	})).Return(ledgertest.Words(5, 6, 7), nil)

	values, err := s.Vault(0)
	assert.Nil(t, err)
	assert.Len(t, values, 3)
	assert.Equal(t, "5\n6\n7\n", out.String())
}

func TestAssociateSignsWithOperatorKey(t *testing.T) {
	s, ledger, out, _ := newTestStaking()

	ledger.On("Associate", ledgertest.DefaultOperator, []string{"0.0.49102025"}, "302e").
		Return(&hl.Receipt{Status: "SUCCESS"}, &hl.Record{}, nil)

	assert.Nil(t, s.Associate([]string{"0.0.49102025"}))
	assert.Contains(t, out.String(), "Token association with Account 0.0.1001: SUCCESS")
	ledger.AssertExpectations(t)
}

func TestNotDeployed(t *testing.T) {
	s, _, _, _ := newTestStaking()
	s.Deployment.ContractID = ""

	err := s.Claim()
	assert.ErrorIs(t, err, hl.ErrContractNotDeployed)
}

func TestScaleDown(t *testing.T) {
	assert.Equal(t, "0", ScaleDown(uint256.NewInt(0), 10))
	assert.Equal(t, "1", ScaleDown(uint256.NewInt(10_000_000_000), 10))
	assert.Equal(t, "0.0000000001", ScaleDown(uint256.NewInt(1), 10))

	large := uint256.MustFromBig(new(big.Int).Exp(big.NewInt(10), big.NewInt(40), nil))
	assert.Equal(t, "1"+string(bytes.Repeat([]byte("0"), 30)), ScaleDown(large, 10))
}
