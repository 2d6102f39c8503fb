// Package collection drives the HederaLegacy NFT collection contract, both
// from the owner's side and from a buyer's.
package collection

import (
	"math"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	InitializePayable = hl.HbarFrom(30)
	CostQueryPayment  = hl.HbarFrom(6)
	// MintPrice is charged per NFT when a buyer mints.
	MintPrice = hl.HbarFrom(10)
)

const (
	BuyerQueryGas = 300_000
	BuyerMintGas  = 3_000_000
)

// MaxMintAmount is the largest amount whose price still fits an Hbar.
var MaxMintAmount = uint64(math.MaxInt64 / int64(MintPrice))

func checkAmount(amount uint64) error {
	if amount > MaxMintAmount {
		return errors.Wrapf(hl.ErrInvalidArgument, "mint amount %d exceeds %d", amount, MaxMintAmount)
	}
	return nil
}

type Collection struct {
	*hl.Contract
}

func New(contract *hl.Contract) *Collection {
	return &Collection{Contract: contract}
}

func (c *Collection) Initialize() (string, error) {
	return c.Contract.Initialize(InitializePayable)
}

// Mint mints amount NFTs as the owner, free of charge.
func (c *Collection) Mint(amount uint64) (serials []int64, err error) {
	if err = checkAmount(amount); err != nil {
		return
	}
	record, err := c.Execute("mint", hl.NewArgs().AddUint64(amount), 0)
	if err != nil {
		return
	}
	return c.printMinted(record, amount)
}

// BuyerMint mints amount NFTs paying the public price.
func (c *Collection) BuyerMint(amount uint64) (serials []int64, err error) {
	if err = checkAmount(amount); err != nil {
		return
	}
	payable := hl.Hbar(int64(MintPrice) * int64(amount))
	record, err := c.ExecuteGas("mint", hl.NewArgs().AddUint64(amount), payable, BuyerMintGas)
	if err != nil {
		return
	}
	return c.printMinted(record, amount)
}

// The minted serials start at word 2 of the result.
func (c *Collection) printMinted(record *hl.Record, amount uint64) (serials []int64, err error) {
	c.Out.Printf("You have mint %d NFTs.\n", amount)
	for i := uint64(0); i < amount; i++ {
		var serial int64
		if serial, err = record.Result.Int64(i + 2); err != nil {
			return
		}
		c.Out.Printf("NFT #%d\n", serial)
		serials = append(serials, serial)
	}

	c.Out.Println("***", record.TransactionID)
	return
}

func (c *Collection) Withdraw() error {
	_, err := c.Execute("withdraw", hl.NewArgs(), 0)
	return err
}

// SetCost sets the mint price in tinybars.
func (c *Collection) SetCost(cost *uint256.Int) error {
	_, err := c.Execute("setCost", hl.NewArgs().AddUint256(cost), 0)
	return err
}

func (c *Collection) Pause(paused bool) error {
	record, err := c.Execute("pause", hl.NewArgs().AddBool(paused), 0)
	if err != nil {
		return err
	}

	responseCode, err := record.Result.Uint256(0)
	if err != nil {
		return err
	}

	c.Out.Printf("Response Code is: %s\n", responseCode.Dec())
	return nil
}

func (c *Collection) Cost() (cost hl.Hbar, err error) {
	result, err := c.Query("cost", hl.NewArgs(), CostQueryPayment)
	if err != nil {
		return
	}

	value, err := result.Uint256(0)
	if err != nil {
		return
	}
	if !value.IsUint64() || value.Uint64() > 1<<63-1 {
		err = hl.ErrResultOutOfRange
		return
	}

	cost = hl.HbarFromTinybars(int64(value.Uint64()))
	c.Out.Printf("Cost is %s\n", cost)
	return
}

// WalletOfOwner lists the serials held by the session account. The result
// carries the count at word 1 and the serials after it.
func (c *Collection) WalletOfOwner() (serials []*uint256.Int, err error) {
	args := hl.NewArgs().AddAddress(c.Ledger.Operator())
	result, err := c.QueryGas("walletOfOwner", args, hl.HbarFromTinybars(300_000), BuyerQueryGas)
	if err != nil {
		return
	}
	c.Out.Println()

	count, err := result.Uint256(1)
	if err != nil {
		return
	}
	if !count.IsUint64() {
		err = hl.ErrResultOutOfRange
		return
	}

	for i := uint64(0); i < count.Uint64(); i++ {
		var serial *uint256.Int
		if serial, err = result.Uint256(i + 2); err != nil {
			return
		}
		c.Out.Printf("i :>>  %s\n", serial.Dec())
		serials = append(serials, serial)
	}

	return
}

// ReadCost reads the price through a transaction rather than a query.
func (c *Collection) ReadCost() (*uint256.Int, error) {
	record, err := c.ExecuteGas("cost", hl.NewArgs(), hl.HbarFrom(1), BuyerQueryGas)
	if err != nil {
		return nil, err
	}
	return c.printFirstReturn(record)
}

// FreeMint calls mint() without arguments or payment and waits for the
// receipt before reading the record.
func (c *Collection) FreeMint() (*uint256.Int, error) {
	contractID, err := c.ContractID()
	if err != nil {
		return nil, err
	}

	record, err := c.Ledger.Execute(hl.ExecuteRequest{
		ContractID:  contractID,
		Function:    "mint",
		Args:        hl.NewArgs(),
		Gas:         BuyerQueryGas,
		WithReceipt: true,
	})
	if err != nil {
		return nil, err
	}

	c.Out.Print("receipt", record.Receipt)
	c.Out.Print("txRecord", record)
	return c.printFirstReturn(record)
}

type Minted struct {
	Serial *uint256.Int
	// Owner is the serial whose holder received the royalty.
	Owner *uint256.Int
	// Value is in tinybars.
	Value *uint256.Int
}

// WriteMint mints a single NFT for a nominal payment and reports the holder
// that received the royalty share.
func (c *Collection) WriteMint() (minted Minted, err error) {
	record, err := c.ExecuteGas("mint", hl.NewArgs(), hl.HbarFromTinybars(10), BuyerMintGas)
	if err != nil {
		return
	}

	if minted.Serial, err = record.Result.Uint256(0); err != nil {
		return
	}
	if minted.Owner, err = record.Result.Uint256(1); err != nil {
		return
	}
	if minted.Value, err = record.Result.Uint256(2); err != nil {
		return
	}

	c.Out.Printf("You have mint #%s.\n", minted.Serial.Dec())
	c.Out.Printf("Owner of #%s received %s.\n", minted.Owner.Dec(), hl.TinybarsString(minted.Value))
	return
}

func (c *Collection) printFirstReturn(record *hl.Record) (*uint256.Int, error) {
	value, err := record.Result.Uint256(0)
	if err != nil {
		return nil, err
	}
	c.Out.Printf("First return value is: %s\n", value.Dec())
	return value, nil
}
