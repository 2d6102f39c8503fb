package hederalegacy

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Ledger is the set of network operations the contract and token commands
// are built from. Client is the SDK backed implementation.
type Ledger interface {
	Operator() string
	Balance(account string) (*Balance, error)
	Deploy(req DeployRequest) (*Receipt, *Record, error)
	Execute(req ExecuteRequest) (*Record, error)
	Call(req CallRequest) (FunctionResult, error)
	TransferHbar(from, to string, amount Hbar) (*Record, error)
	TransferNft(req NftTransferRequest) (*Receipt, *Record, error)
	Associate(account string, tokens []string, signerKey string) (*Receipt, *Record, error)
	Dissociate(account string, tokens []string, signerKey string) (*Receipt, *Record, error)
	TokenInfo(token string) (*TokenInfo, error)
	CreateToken(req TokenCreateRequest) (*Receipt, *Record, error)
	MintNft(token string, metadata [][]byte, supplyKey string) (*Receipt, *Record, error)
	CreateAccount(publicKey string, initialBalance Hbar) (*Receipt, error)
	GenerateKey() (*KeyPair, error)
	Close() error
}

type DeployRequest struct {
	Bytecode    []byte
	Gas         uint64
	Constructor *Args
}

type ExecuteRequest struct {
	ContractID string
	Function   string
	Args       *Args
	Gas        uint64
	Payable    Hbar
	// WithReceipt fetches the receipt before the record.
	WithReceipt bool
}

type CallRequest struct {
	ContractID string
	Function   string
	Args       *Args
	Gas        uint64
	Payment    Hbar
}

type NftTransferRequest struct {
	TokenID   string
	Serial    int64
	From      string
	To        string
	SignerKey string
}

type TokenCreateRequest struct {
	Name        string
	Symbol      string
	Treasury    string
	TreasuryKey string
	SupplyKey   string
	MaxSupply   int64
}

type Balance struct {
	AccountID string            `json:"accountId"`
	Hbars     Hbar              `json:"hbars"`
	Tokens    map[string]uint64 `json:"tokens,omitempty"`
}

// String prints the hbar amount followed by any non-zero token balances,
// ordered by token id.
func (b *Balance) String() string {
	var tokens []string
	for tokenID, amount := range b.Tokens {
		if amount > 0 {
			tokens = append(tokens, fmt.Sprintf("%s: %d", tokenID, amount))
		}
	}
	if len(tokens) == 0 {
		return b.Hbars.String()
	}

	sort.Strings(tokens)
	return fmt.Sprintf("%s, tokens: {%s}", b.Hbars, strings.Join(tokens, ", "))
}

func (b *Balance) Token(tokenID string) uint64 {
	return b.Tokens[tokenID]
}

type Receipt struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	AccountID     string  `json:"accountId,omitempty"`
	ContractID    string  `json:"contractId,omitempty"`
	TokenID       string  `json:"tokenId,omitempty"`
	Serials       []int64 `json:"serials,omitempty"`
}

type Record struct {
	TransactionID      string         `json:"transactionId"`
	TransactionHash    string         `json:"transactionHash"`
	ConsensusTimestamp time.Time      `json:"consensusTimestamp"`
	Memo               string         `json:"memo,omitempty"`
	Fee                Hbar           `json:"fee"`
	Receipt            Receipt        `json:"receipt"`
	Result             FunctionResult `json:"callResult,omitempty"`
	GasUsed            uint64         `json:"gasUsed,omitempty"`
	ErrorMessage       string         `json:"errorMessage,omitempty"`
}

type TokenInfo struct {
	TokenID     string `json:"tokenId"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Type        string `json:"type"`
	SupplyType  string `json:"supplyType"`
	Decimals    uint32 `json:"decimals"`
	TotalSupply uint64 `json:"totalSupply"`
	MaxSupply   int64  `json:"maxSupply"`
	Treasury    string `json:"treasury"`
}

type KeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}
