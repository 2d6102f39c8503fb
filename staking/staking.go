// Package staking drives the HLEG contract: a fungible reward token plus
// staking of Hedera Legacy NFTs by serial number.
package staking

import (
	"math/big"
	"strings"
	"time"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/holiman/uint256"
)

var (
	InitializePayable = hl.HbarFrom(30)
	StakePayable      = hl.HbarFrom(10)
	VaultQueryPayment = hl.HbarFrom(10)
)

// TokenDecimals is the number of decimals of the reward token; claim values
// are reported in whole tokens.
const TokenDecimals = 10

type Staking struct {
	*hl.Contract
	// OperatorKey signs the operator's token association.
	OperatorKey string
}

func New(contract *hl.Contract, operatorKey string) *Staking {
	return &Staking{Contract: contract, OperatorKey: operatorKey}
}

func (s *Staking) Initialize() (string, error) {
	return s.Contract.Initialize(InitializePayable)
}

// Mint mints amount base units of the reward token to receiver.
func (s *Staking) Mint(receiver string, amount *uint256.Int) error {
	record, err := s.Execute("mint", hl.NewArgs().AddAddress(receiver).AddUint256(amount), 0)
	if err != nil {
		return err
	}

	s.Out.Printf("You have mint %s tokens to %s\n", amount.Dec(), receiver)
	return s.printResponsePair(record)
}

func (s *Staking) Transfer(receiver string, amount *uint256.Int) error {
	record, err := s.Execute("transfer", hl.NewArgs().AddAddress(receiver).AddUint256(amount), 0)
	if err != nil {
		return err
	}

	s.Out.Printf("Account %s have received %s tokens.\n", receiver, amount.Dec())
	return s.printResponsePair(record)
}

func (s *Staking) BalanceOf(account string) error {
	record, err := s.Execute("balanceOf", hl.NewArgs().AddAddress(account), 0)
	if err != nil {
		return err
	}

	balance, err := record.Result.Uint256(0)
	if err != nil {
		return err
	}

	s.Out.Printf("Token balance of %s: %s\n", account, balance.Dec())
	s.Out.Println("***", record.TransactionID)
	return nil
}

// Associate associates the operator with tokens, signed by the operator key.
func (s *Staking) Associate(tokens []string) error {
	operator := s.Ledger.Operator()

	receipt, record, err := s.Ledger.Associate(operator, tokens, s.OperatorKey)
	if err != nil {
		return err
	}

	s.Out.Print("Tx Receipt", receipt)
	s.Out.Print("Tx Record", record)
	s.Out.Printf("Token association with Account %s: %s\n\n", operator, receipt.Status)
	return nil
}

func (s *Staking) Stake(serials []int64, period uint64) error {
	record, err := s.Execute("stake", hl.NewArgs().AddInt64Array(serials).AddUint64(period), StakePayable)
	if err != nil {
		return err
	}
	return s.printResponsePair(record)
}

func (s *Staking) Unstake(serials []int64) error {
	record, err := s.Execute("unstake", hl.NewArgs().AddInt64Array(serials), StakePayable)
	if err != nil {
		return err
	}
	return s.printClaimValue(record)
}

func (s *Staking) Claim() error {
	record, err := s.Execute("claim", hl.NewArgs(), 0)
	if err != nil {
		return err
	}
	return s.printClaimValue(record)
}

// Withdraw pulls the contract's hbar balance back to the owner and reports
// the amount.
func (s *Staking) Withdraw() error {
	record, err := s.Execute("withdraw", hl.NewArgs(), 0)
	if err != nil {
		return err
	}

	value, err := record.Result.Uint256(0)
	if err != nil {
		return err
	}

	s.Out.Printf("Withdraw value is %s\n", hl.TinybarsString(value))
	s.Out.Println(record.TransactionID)
	return nil
}

type StakeEntry struct {
	Serial        *uint256.Int
	Period        *uint256.Int
	Timestamp     time.Time
	LastClaimedAt time.Time
}

// MyStake lists the operator's stakes. The result is laid out as
// (typeSize, count) followed by count entries of four words each.
func (s *Staking) MyStake() (entries []StakeEntry, err error) {
	record, err := s.Execute("myStake", hl.NewArgs(), 0)
	if err != nil {
		return
	}

	entries, err = DecodeStakes(record.Result, s.Out)
	if err != nil {
		return
	}

	s.Out.Println("***", record.TransactionID)
	return
}

func DecodeStakes(result hl.FunctionResult, out *hl.Printer) (entries []StakeEntry, err error) {
	typeSize, err := result.Uint256(0)
	if err != nil {
		return
	}
	count, err := result.Uint256(1)
	if err != nil {
		return
	}
	out.Printf("%s  %s\n", typeSize.Dec(), count.Dec())

	if !count.IsUint64() {
		err = hl.ErrResultOutOfRange
		return
	}

	for i := uint64(0); i < count.Uint64(); i++ {
		var entry StakeEntry
		var timestamp, lastClaimedAt *uint256.Int

		if entry.Serial, err = result.Uint160(i*4 + 2); err != nil {
			return
		}
		if entry.Period, err = result.Uint256(i*4 + 3); err != nil {
			return
		}
		if timestamp, err = result.Uint256(i*4 + 4); err != nil {
			return
		}
		if lastClaimedAt, err = result.Uint256(i*4 + 5); err != nil {
			return
		}
		entry.Timestamp = time.Unix(int64(timestamp.Uint64()), 0)
		entry.LastClaimedAt = time.Unix(int64(lastClaimedAt.Uint64()), 0)

		out.Printf(
			"{\n\t%s,\n\t%s,\n\t%s,\n\t%s\n}\n",
			entry.Serial.Dec(),
			entry.Period.Dec(),
			entry.Timestamp.Local().Format(time.DateTime),
			entry.LastClaimedAt.Local().Format(time.DateTime))

		entries = append(entries, entry)
	}

	return
}

// Vault reads three words of vault entry index.
func (s *Staking) Vault(index uint64) (values []*uint256.Int, err error) {
	result, err := s.Query("vault", hl.NewArgs().AddUint64(index), VaultQueryPayment)
	if err != nil {
		return
	}

	for i := uint64(0); i < 3; i++ {
		var v *uint256.Int
		if v, err = result.Uint256(i); err != nil {
			return
		}
		s.Out.Println(v.Dec())
		values = append(values, v)
	}

	return
}

func (s *Staking) printResponsePair(record *hl.Record) error {
	first, err := record.Result.Int256(0)
	if err != nil {
		return err
	}
	second, err := record.Result.Int256(1)
	if err != nil {
		return err
	}

	s.Out.Printf("%s, %s\n", first, second)
	s.Out.Println("***", record.TransactionID)
	return nil
}

func (s *Staking) printClaimValue(record *hl.Record) error {
	value, err := record.Result.Uint256(0)
	if err != nil {
		return err
	}

	s.Out.Printf("Claim value is %s\n", ScaleDown(value, TokenDecimals))
	s.Out.Println("***", record.TransactionID)
	return nil
}

// ScaleDown renders v / 10^decimals without trailing zeros.
func ScaleDown(v *uint256.Int, decimals int) string {
	r := new(big.Rat).SetFrac(v.ToBig(), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	s := r.FloatString(decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
