package hederalegacy_test

import (
	"bytes"
	"testing"
	"time"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/ledgertest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSessionRunsStepsInOrder(t *testing.T) {
	ledger := ledgertest.New()
	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{Hbars: hl.HbarFrom(10)}, nil).Twice()

	out := new(bytes.Buffer)
	session := hl.NewSession(ledger, hl.NewPrinter(out), "Operator")

	var ran []string
	err := session.Run(
		hl.NewStep("first", func() error { ran = append(ran, "first"); return nil }),
		hl.Wait(time.Millisecond),
		hl.NewStep("second", func() error { ran = append(ran, "second"); return nil }),
	)

	assert.Nil(t, err)
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Balance of Operator (accountId 0.0.1001): 10 ℏ\n")))
	ledger.AssertExpectations(t)
}

func TestSessionStopsAtFirstError(t *testing.T) {
	ledger := ledgertest.New()
	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{}, nil).Twice()

	session := hl.NewSession(ledger, hl.NewPrinter(new(bytes.Buffer)), "Operator")

	ranThird := false
	err := session.Run(
		hl.NewStep("deploy", func() error { return nil }),
		hl.NewStep("initialize", func() error { return errors.WithStack(hl.ErrContractNotDeployed) }),
		hl.NewStep("mint", func() error { ranThird = true; return nil }),
	)

	assert.ErrorIs(t, err, hl.ErrContractNotDeployed)
	assert.Contains(t, err.Error(), "initialize")
	assert.False(t, ranThird)
	ledger.AssertExpectations(t)
}

func TestSessionOpeningBalanceFails(t *testing.T) {
	ledger := ledgertest.New()
	ledger.On("Balance", ledgertest.DefaultOperator).Return(nil, hl.ErrRpcFailed).Once()

	session := hl.NewSession(ledger, hl.NewPrinter(new(bytes.Buffer)), "Operator")

	ran := false
	err := session.Run(hl.NewStep("deploy", func() error { ran = true; return nil }))
	assert.ErrorIs(t, err, hl.ErrRpcFailed)
	assert.False(t, ran)
}

func TestSessionClosingBalanceError(t *testing.T) {
	ledger := ledgertest.New()
	ledger.On("Balance", ledgertest.DefaultOperator).Return(&hl.Balance{}, nil).Once()
	ledger.On("Balance", ledgertest.DefaultOperator).Return(nil, hl.ErrRpcFailed).Once()

	session := hl.NewSession(ledger, hl.NewPrinter(new(bytes.Buffer)), "Operator")

	err := session.Run()
	assert.ErrorIs(t, err, hl.ErrRpcFailed)
}
