// Package nft manages the native Hedera Legacy token: accounts, keys,
// creation, minting, association and transfers.
package nft

import (
	"strings"
	"unicode"
	"unicode/utf8"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	TokenName   = "Hedera Legacy"
	TokenSymbol = "HL"
	MaxSupply   = 1111

	QueryGas = 300_000
)

var (
	InitialAccountBalance = hl.HbarFrom(1000)
	PayAmount             = hl.HbarFrom(1.00000001)
)

// Token wraps the nft deployment. Its TokenID doubles as the contract id
// for EVM calls against the token.
type Token struct {
	*hl.Contract
	Treasury  hl.Credentials
	SupplyKey string
}

func New(contract *hl.Contract, treasury hl.Credentials, supplyKey string) *Token {
	return &Token{
		Contract:  contract,
		Treasury:  treasury,
		SupplyKey: supplyKey,
	}
}

func (t *Token) GenerateKey() (key *hl.KeyPair, err error) {
	if key, err = t.Ledger.GenerateKey(); err != nil {
		return
	}
	t.Out.Printf("New key generated.\nPublic Key is %s\nPrivateKey is %s\n", key.PublicKey, key.PrivateKey)
	return
}

// CreateAccount funds a new account controlled by a freshly generated key.
func (t *Token) CreateAccount() (accountID string, err error) {
	key, err := t.GenerateKey()
	if err != nil {
		return
	}

	receipt, err := t.Ledger.CreateAccount(key.PublicKey, InitialAccountBalance)
	if err != nil {
		return
	}

	accountID = receipt.AccountID
	t.Out.Printf("The new account ID is %s\n", accountID)
	return
}

// CreateToken creates the finite supply NFT with the configured treasury and
// records its id on the deployment.
func (t *Token) CreateToken() (tokenID string, err error) {
	if err = t.Treasury.Validate(); err != nil {
		return
	}
	if t.SupplyKey == "" {
		err = hl.ErrMissingCredentials
		return
	}

	receipt, record, err := t.Ledger.CreateToken(hl.TokenCreateRequest{
		Name:        TokenName,
		Symbol:      TokenSymbol,
		Treasury:    t.Treasury.AccountID,
		TreasuryKey: t.Treasury.PrivateKey,
		SupplyKey:   t.SupplyKey,
		MaxSupply:   MaxSupply,
	})
	if err != nil {
		return
	}

	t.Out.Print("Tx Receipt", receipt)
	t.Out.Print("Tx Record", record)
	t.Out.Printf("- Created NFT with Token ID: %s \n\n", receipt.TokenID)

	tokenID = receipt.TokenID
	err = t.SetToken(tokenID)
	return
}

// MintToken mints one NFT carrying metadata, signed with the supply key.
func (t *Token) MintToken(metadata []byte) (serial int64, err error) {
	tokenID, err := t.TokenID()
	if err != nil {
		return
	}

	receipt, record, err := t.Ledger.MintNft(tokenID, [][]byte{metadata}, t.SupplyKey)
	if err != nil {
		return
	}

	t.Out.Print("Tx Receipt", receipt)
	t.Out.Print("Tx Record", record)

	if len(receipt.Serials) == 0 {
		err = hl.ErrMissingReceipt
		return
	}
	serial = receipt.Serials[0]
	t.Out.Printf("- Created NFT %s with serial: %d \n\n", tokenID, serial)
	return
}

func (t *Token) Associate(holder hl.Credentials) error {
	return t.relate(holder, t.Ledger.Associate)
}

func (t *Token) Dissociate(holder hl.Credentials) error {
	return t.relate(holder, t.Ledger.Dissociate)
}

type relateFunc func(account string, tokens []string, signerKey string) (*hl.Receipt, *hl.Record, error)

func (t *Token) relate(holder hl.Credentials, fn relateFunc) error {
	if err := holder.Validate(); err != nil {
		return err
	}
	tokenID, err := t.TokenID()
	if err != nil {
		return err
	}

	receipt, record, err := fn(holder.AccountID, []string{tokenID}, holder.PrivateKey)
	if err != nil {
		return err
	}

	t.Out.Print("Tx Receipt", receipt)
	t.Out.Print("Tx Record", record)
	t.Out.Printf("- NFT association with %s's account: %s\n\n", displayName(holder.Name), receipt.Status)
	return nil
}

// TransferToken moves one serial from the treasury to the holder, printing
// both token balances before and after.
func (t *Token) TransferToken(serial int64, to hl.Credentials) error {
	if err := t.Treasury.Validate(); err != nil {
		return err
	}
	tokenID, err := t.TokenID()
	if err != nil {
		return err
	}

	if err = t.printTokenBalances(tokenID, to); err != nil {
		return err
	}

	receipt, record, err := t.Ledger.TransferNft(hl.NftTransferRequest{
		TokenID:   tokenID,
		Serial:    serial,
		From:      t.Treasury.AccountID,
		To:        to.AccountID,
		SignerKey: t.Treasury.PrivateKey,
	})
	if err != nil {
		return err
	}

	t.Out.Print("Tx Receipt", receipt)
	t.Out.Print("Tx Record", record)
	t.Out.Printf("\n- NFT transfer from Treasury to %s: %s \n\n", displayName(to.Name), receipt.Status)

	return t.printTokenBalances(tokenID, to)
}

func (t *Token) printTokenBalances(tokenID string, to hl.Credentials) error {
	treasury, err := t.Ledger.Balance(t.Treasury.AccountID)
	if err != nil {
		return err
	}
	t.Out.Printf("- Treasury balance: %d NFTs of ID %s\n", treasury.Token(tokenID), tokenID)

	holder, err := t.Ledger.Balance(to.AccountID)
	if err != nil {
		return err
	}
	t.Out.Printf("- %s's balance: %d NFTs of ID %s\n", displayName(to.Name), holder.Token(tokenID), tokenID)
	return nil
}

// TokenURI calls tokenURI on the token's EVM facade.
func (t *Token) TokenURI(serial uint64) (uri string, err error) {
	tokenID, err := t.TokenID()
	if err != nil {
		return
	}

	result, err := t.Ledger.Call(hl.CallRequest{
		ContractID: tokenID,
		Function:   "tokenURI",
		Args:       hl.NewArgs().AddUint64(serial),
		Gas:        QueryGas,
	})
	if err != nil {
		return
	}
	t.Out.Println()

	if uri, err = result.String(0); err != nil {
		return
	}
	t.Out.Printf("return value :>>  %s\n", uri)
	return
}

type Payment struct {
	Value *uint256.Int
	Memo  string
}

// Pay sends a donation with a memo to contractID's pay function.
func (t *Token) Pay(contractID, memo string) (payment Payment, err error) {
	if contractID == "" {
		err = errors.Wrap(hl.ErrContractNotDeployed, "pay")
		return
	}

	record, err := t.Ledger.Execute(hl.ExecuteRequest{
		ContractID:  contractID,
		Function:    "pay",
		Args:        hl.NewArgs().AddString(memo),
		Gas:         QueryGas,
		Payable:     PayAmount,
		WithReceipt: true,
	})
	if err != nil {
		return
	}

	t.Out.Print("receipt", record.Receipt)
	t.Out.Print("txRecord", record)

	if payment.Value, err = record.Result.Uint256(0); err != nil {
		return
	}
	t.Out.Printf("First return value is: %s\n", payment.Value.Dec())

	if payment.Memo, err = record.Result.String(1); err != nil {
		return
	}
	t.Out.Printf("second return value is: %s\n", payment.Memo)
	return
}

func displayName(name string) string {
	if name == "" {
		return "holder"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}
