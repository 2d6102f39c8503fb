package main

import (
	"bytes"
	"os"
	"testing"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*app, *ledgertest.Ledger, *bytes.Buffer) {
	t.Setenv("MY_ACCOUNT_ID", ledgertest.DefaultOperator)
	t.Setenv("MY_PRIVATE_KEY", "operator-key")
	t.Setenv("ALICE_ID", "")
	t.Setenv("ALICE_PVKEY", "")
	t.Setenv("HEDERA_NETWORK", "testnet")

	ledger := ledgertest.New()
	out := new(bytes.Buffer)
	a := newApp()
	a.out = hl.NewPrinter(out)
	a.store = hl.NewInMemoryStore()
	a.newLedger = func(creds hl.Credentials) (hl.Ledger, error) {
		ledger.OperatorID = creds.AccountID
		return ledger, nil
	}
	return a, ledger, out
}

func execute(a *app, args ...string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func TestCollectionCostRunsInSession(t *testing.T) {
	a, ledger, out := newTestApp(t)

	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{Hbars: hl.HbarFrom(100)}, nil)
	ledger.On("Call", mock.MatchedBy(func(req hl.CallRequest) bool {
		return req.ContractID == "0.0.49101999" && req.Function == "cost"
	})).Return(ledgertest.Words(int64(1_000_000_000)), nil)
	ledger.On("Close").Return(nil)

	err := execute(a, "collection", "cost")
	require.Nil(t, err)

	assert.Equal(t,
		"Balance of Operator (accountId 0.0.1001): 100 ℏ\n"+
			"Cost is 10 ℏ\n"+
			"Balance of Operator (accountId 0.0.1001): 100 ℏ\n",
		out.String())
	ledger.AssertExpectations(t)
}

func TestFailingStepReturnsError(t *testing.T) {
	a, ledger, out := newTestApp(t)

	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{}, nil)
	ledger.On("Execute", mock.Anything).Return(nil, hl.ErrRpcFailed)
	ledger.On("Close").Return(nil)

	err := execute(a, "staking", "claim")
	assert.ErrorIs(t, err, hl.ErrRpcFailed)
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Balance of Operator")))
}

func TestMissingProfileCredentials(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := execute(a, "--as", "alice", "collection", "wallet")
	assert.ErrorIs(t, err, hl.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "environment variables ALICE_ID and ALICE_PVKEY must be present")
}

func TestInvalidNetworkFlag(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := execute(a, "--network", "moon", "balance")
	assert.ErrorIs(t, err, hl.ErrInvalidNetwork)
}

func TestInvalidArgument(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := execute(a, "collection", "mint", "many")
	assert.ErrorIs(t, err, hl.ErrInvalidArgument)
}

func TestDeployRecordsContract(t *testing.T) {
	a, ledger, _ := newTestApp(t)

	bytecode := t.TempDir() + "/HLEG.bin"
	require.Nil(t, os.WriteFile(bytecode, []byte("0x6080604052\n"), 0o600))

	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{}, nil)
	ledger.On("Deploy", mock.MatchedBy(func(req hl.DeployRequest) bool {
		return string(req.Bytecode) == "6080604052" && req.Gas == hl.DefaultMaxGas
	})).Return(&hl.Receipt{Status: "SUCCESS", ContractID: "0.0.9009"}, &hl.Record{}, nil)
	ledger.On("Close").Return(nil)

	store := a.store
	require.Nil(t, store.SaveDeployment(hl.Deployment{Name: hl.DeploymentStaking, ContractID: "0.0.8008", TokenID: "0.0.8009"}))

	err := execute(a, "staking", "deploy", "--initialize=false", "--bytecode", bytecode)
	require.Nil(t, err)

	deployment, err := store.GetDeployment(hl.DeploymentStaking)
	require.Nil(t, err)
	assert.Equal(t, "0.0.9009", deployment.ContractID)
	assert.Equal(t, "", deployment.TokenID)

	deployment, err = a.config.Deployment(store, hl.DeploymentStaking)
	require.Nil(t, err)
	assert.Equal(t, "0.0.9009", deployment.ContractID)
	assert.Equal(t, "", deployment.TokenID, "an uninitialized redeploy must not inherit a token")
}

func TestSlotCommand(t *testing.T) {
	a, _, out := newTestApp(t)

	err := execute(a, "slot", "0.0.49054569")
	require.Nil(t, err)
	assert.Equal(t, 4, bytes.Count(out.Bytes(), []byte("\n")))
}

func TestParseSerials(t *testing.T) {
	serials, err := parseSerials([]string{"13,14", "15"})
	assert.Nil(t, err)
	assert.Equal(t, []int64{13, 14, 15}, serials)

	_, err = parseSerials([]string{"0"})
	assert.ErrorIs(t, err, hl.ErrInvalidArgument)

	_, err = parseSerials(nil)
	assert.ErrorIs(t, err, hl.ErrInvalidArgument)
}

func TestParseSerial(t *testing.T) {
	serial, err := parseSerial("2")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), serial)

	_, err = parseSerial("2,3")
	assert.ErrorIs(t, err, hl.ErrInvalidArgument)
}

func TestNftTransferRejectsSerialList(t *testing.T) {
	a, ledger, _ := newTestApp(t)

	err := execute(a, "nft", "transfer", "2,3")
	assert.ErrorIs(t, err, hl.ErrInvalidArgument)
	ledger.AssertNotCalled(t, "TransferNft", mock.Anything)
}

func TestStakingCycleOrder(t *testing.T) {
	steps := StakingCycle(nil, []int64{1}, 30, 0)

	var names []string
	for _, s := range steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"stake", "myStake", "wait 0s", "claim", "myStake", "wait 0s", "unstake", "myStake"}, names)
}
