// Package ledgertest provides a mock Ledger for tests that must not reach a
// network.
package ledgertest

import (
	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/stretchr/testify/mock"
)

const DefaultOperator = "0.0.1001"

type Ledger struct {
	mock.Mock
	OperatorID string
}

var _ hl.Ledger = &Ledger{}

func New() *Ledger {
	return &Ledger{OperatorID: DefaultOperator}
}

func (l *Ledger) Operator() string {
	return l.OperatorID
}

func (l *Ledger) Balance(account string) (*hl.Balance, error) {
	args := l.Called(account)
	return ptr[hl.Balance](args, 0), args.Error(1)
}

func (l *Ledger) Deploy(req hl.DeployRequest) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(req)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) Execute(req hl.ExecuteRequest) (*hl.Record, error) {
	args := l.Called(req)
	return ptr[hl.Record](args, 0), args.Error(1)
}

func (l *Ledger) Call(req hl.CallRequest) (hl.FunctionResult, error) {
	args := l.Called(req)
	result, _ := args.Get(0).(hl.FunctionResult)
	return result, args.Error(1)
}

func (l *Ledger) TransferHbar(from, to string, amount hl.Hbar) (*hl.Record, error) {
	args := l.Called(from, to, amount)
	return ptr[hl.Record](args, 0), args.Error(1)
}

func (l *Ledger) TransferNft(req hl.NftTransferRequest) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(req)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) Associate(account string, tokens []string, signerKey string) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(account, tokens, signerKey)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) Dissociate(account string, tokens []string, signerKey string) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(account, tokens, signerKey)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) TokenInfo(token string) (*hl.TokenInfo, error) {
	args := l.Called(token)
	return ptr[hl.TokenInfo](args, 0), args.Error(1)
}

func (l *Ledger) CreateToken(req hl.TokenCreateRequest) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(req)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) MintNft(token string, metadata [][]byte, supplyKey string) (*hl.Receipt, *hl.Record, error) {
	args := l.Called(token, metadata, supplyKey)
	return ptr[hl.Receipt](args, 0), ptr[hl.Record](args, 1), args.Error(2)
}

func (l *Ledger) CreateAccount(publicKey string, initialBalance hl.Hbar) (*hl.Receipt, error) {
	args := l.Called(publicKey, initialBalance)
	return ptr[hl.Receipt](args, 0), args.Error(1)
}

func (l *Ledger) GenerateKey() (*hl.KeyPair, error) {
	args := l.Called()
	return ptr[hl.KeyPair](args, 0), args.Error(1)
}

func (l *Ledger) Close() error {
	return l.Called().Error(0)
}

func ptr[T any](args mock.Arguments, index int) *T {
	v, _ := args.Get(index).(*T)
	return v
}
