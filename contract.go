package hederalegacy

import (
	"github.com/pkg/errors"
)

// Contract binds a named deployment to the ledger. Deploy and SetToken write
// the new ids back to the store so later runs pick them up.
type Contract struct {
	Ledger     Ledger
	Out        *Printer
	Store      Store
	Deployment Deployment
	Gas        uint64
}

func (c *Contract) ContractID() (string, error) {
	if c.Deployment.ContractID == "" {
		return "", errors.Wrapf(ErrContractNotDeployed, "'%s'", c.Deployment.Name)
	}
	return c.Deployment.ContractID, nil
}

func (c *Contract) TokenID() (string, error) {
	if c.Deployment.TokenID == "" {
		return "", errors.Wrapf(ErrTokenNotSet, "'%s'", c.Deployment.Name)
	}
	return c.Deployment.TokenID, nil
}

func (c *Contract) gas() uint64 {
	if c.Gas == 0 {
		return DefaultMaxGas
	}
	return c.Gas
}

// Deploy uploads bytecode, instantiates the contract with an empty
// constructor and records the new contract id.
func (c *Contract) Deploy(bytecode []byte) (contractID string, err error) {
	receipt, record, err := c.Ledger.Deploy(DeployRequest{
		Bytecode:    bytecode,
		Gas:         c.gas(),
		Constructor: NewArgs(),
	})
	if err != nil {
		return
	}

	c.Out.Print("Tx Receipt", receipt)
	c.Out.Print("Tx Record", record)
	c.Out.Printf("Contract created with ID: %s \n\n", receipt.ContractID)

	c.Deployment.ContractID = receipt.ContractID
	// A fresh contract mints its own token on initialize.
	c.Deployment.TokenID = ""

	err = c.save()
	contractID = receipt.ContractID
	return
}

func (c *Contract) SetToken(tokenID string) error {
	c.Deployment.TokenID = tokenID
	return c.save()
}

func (c *Contract) save() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.SaveDeployment(Deployment{
		Name:       c.Deployment.Name,
		ContractID: c.Deployment.ContractID,
		TokenID:    c.Deployment.TokenID,
	})
}

// Execute runs a state changing function with the contract's gas limit and
// prints its record.
func (c *Contract) Execute(function string, args *Args, payable Hbar) (*Record, error) {
	return c.ExecuteGas(function, args, payable, c.gas())
}

func (c *Contract) ExecuteGas(function string, args *Args, payable Hbar, gas uint64) (record *Record, err error) {
	contractID, err := c.ContractID()
	if err != nil {
		return
	}

	record, err = c.Ledger.Execute(ExecuteRequest{
		ContractID: contractID,
		Function:   function,
		Args:       args,
		Gas:        gas,
		Payable:    payable,
	})
	if err != nil {
		return
	}

	c.Out.Print("txRecord", record)
	return
}

// Query runs a read-only call against the local node.
func (c *Contract) Query(function string, args *Args, payment Hbar) (FunctionResult, error) {
	return c.QueryGas(function, args, payment, c.gas())
}

func (c *Contract) QueryGas(function string, args *Args, payment Hbar, gas uint64) (FunctionResult, error) {
	contractID, err := c.ContractID()
	if err != nil {
		return nil, err
	}

	return c.Ledger.Call(CallRequest{
		ContractID: contractID,
		Function:   function,
		Args:       args,
		Gas:        gas,
		Payment:    payment,
	})
}

// Initialize calls initialize() with payable hbars. The contract creates its
// token and returns (int256 responseCode, address token); the token id is
// recorded on the deployment.
func (c *Contract) Initialize(payable Hbar) (tokenID string, err error) {
	record, err := c.Execute("initialize", NewArgs(), payable)
	if err != nil {
		return
	}

	responseCode, err := record.Result.Int256(0)
	if err != nil {
		return
	}
	tokenAddress, err := record.Result.Address(1)
	if err != nil {
		return
	}

	tokenID = SolidityToEntity(tokenAddress)
	c.Out.Printf("Response Code is: %s\n", responseCode)
	c.Out.Printf("Token Id is: %s\n", tokenID)

	err = c.SetToken(tokenID)
	return
}

func (c *Contract) PrintTokenInfo() error {
	tokenID, err := c.TokenID()
	if err != nil {
		return err
	}

	info, err := c.Ledger.TokenInfo(tokenID)
	if err != nil {
		return err
	}

	c.Out.Print("Token "+tokenID+" Info", info)
	return nil
}

// CryptoTransfer moves hbars from the operator to another account.
func (c *Contract) CryptoTransfer(to string, amount Hbar) error {
	record, err := c.Ledger.TransferHbar(c.Ledger.Operator(), to, amount)
	if err != nil {
		return err
	}

	c.Out.Print("txRecord", record)
	return nil
}
