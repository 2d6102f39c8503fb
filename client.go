package hederalegacy

import (
	"encoding/hex"
	"time"

	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type ClientOptions struct {
	Network    Network
	AccountID  string
	PrivateKey string
	Journal    Journal
}

func (o *ClientOptions) setDefaults() {
	if o.Network == "" {
		o.Network = defaultClientOptions.Network
	}
}

var defaultClientOptions = &ClientOptions{
	Network: NetworkTestNet,
}

var _ Ledger = &Client{}

// Client is the Ledger backed by the Hedera SDK. The operator pays for and
// signs every submission; extra signer keys are added where the operation
// needs another account's authorisation.
type Client struct {
	options    *ClientOptions
	sdk        *hedera.Client
	operatorID hedera.AccountID
	log        *zerolog.Logger
	journal    Journal
}

func NewClient(options *ClientOptions) (client *Client, err error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.setDefaults()

	operatorID, err := hedera.AccountIDFromString(options.AccountID)
	if err != nil {
		err = errors.Wrapf(ErrMissingCredentials, "operator account id '%s': %v", options.AccountID, err)
		return
	}

	operatorKey, err := hedera.PrivateKeyFromString(options.PrivateKey)
	if err != nil {
		err = errors.Wrapf(ErrMissingCredentials, "operator private key: %v", err)
		return
	}

	sdk, err := options.Network.SdkClient()
	if err != nil {
		return
	}
	sdk.SetOperator(operatorID, operatorKey)

	client = &Client{
		options:    options,
		sdk:        sdk,
		operatorID: operatorID,
		log:        Log(),
		journal:    options.Journal,
	}

	client.log.Debug().Msgf("client for %s bound to operator %s", options.Network, operatorID)

	return
}

func (c *Client) Operator() string {
	return c.operatorID.String()
}

func (c *Client) Close() error {
	return errors.WithStack(c.sdk.Close())
}

func (c *Client) Balance(account string) (balance *Balance, err error) {
	accountID, err := parseAccountID(account)
	if err != nil {
		return
	}

	rsp, err := hedera.NewAccountBalanceQuery().
		SetAccountID(accountID).
		Execute(c.sdk)
	if err != nil {
		err = errors.Wrapf(err, "balance query for %s", account)
		return
	}

	balance = &Balance{
		AccountID: accountID.String(),
		Hbars:     HbarFromTinybars(rsp.Hbars.AsTinybar()),
		Tokens:    map[string]uint64{},
	}
	for tokenID, amount := range rsp.Token {
		balance.Tokens[tokenID.String()] = amount
	}

	return
}

func (c *Client) Deploy(req DeployRequest) (receipt *Receipt, record *Record, err error) {
	params, err := req.Constructor.Params()
	if err != nil {
		return
	}

	rsp, err := hedera.NewContractCreateFlow().
		SetGas(int64(req.Gas)).
		SetBytecode(req.Bytecode).
		SetConstructorParameters(params).
		Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "contract create flow")
		return
	}

	receipt, record, err = c.settle("deploy", rsp, true)
	if err != nil {
		return
	}

	if receipt.ContractID == "" {
		err = errors.Wrap(ErrMissingReceipt, "contract id")
	}

	return
}

func (c *Client) Execute(req ExecuteRequest) (record *Record, err error) {
	contractID, err := hedera.ContractIDFromString(req.ContractID)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "contract id '%s': %v", req.ContractID, err)
		return
	}

	params, err := req.Args.Params()
	if err != nil {
		return
	}

	tx := hedera.NewContractExecuteTransaction().
		SetContractID(contractID).
		SetGas(req.Gas).
		SetFunction(req.Function, params)
	if req.Payable != 0 {
		tx.SetPayableAmount(req.Payable.Sdk())
	}

	c.log.Debug().Msgf("execute %s%s on %s", req.Function, req.Args, req.ContractID)

	rsp, err := tx.Execute(c.sdk)
	if err != nil {
		err = errors.Wrapf(err, "execute %s", req.Function)
		return
	}

	receipt, record, err := c.settle(req.Function, rsp, req.WithReceipt)
	if err != nil {
		return
	}
	if receipt != nil {
		record.Receipt = *receipt
	}

	return
}

func (c *Client) Call(req CallRequest) (result FunctionResult, err error) {
	contractID, err := hedera.ContractIDFromString(req.ContractID)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "contract id '%s': %v", req.ContractID, err)
		return
	}

	params, err := req.Args.Params()
	if err != nil {
		return
	}

	query := hedera.NewContractCallQuery().
		SetContractID(contractID).
		SetGas(req.Gas).
		SetFunction(req.Function, params)
	if req.Payment != 0 {
		query.SetQueryPayment(req.Payment.Sdk())
	}

	c.log.Debug().Msgf("call %s%s on %s", req.Function, req.Args, req.ContractID)

	rsp, err := query.Execute(c.sdk)
	if err != nil {
		err = errors.Wrapf(err, "call %s", req.Function)
		return
	}

	return FunctionResult(rsp.ContractCallResult), nil
}

func (c *Client) TransferHbar(from, to string, amount Hbar) (record *Record, err error) {
	fromID, err := parseAccountID(from)
	if err != nil {
		return
	}
	toID, err := parseAccountID(to)
	if err != nil {
		return
	}

	rsp, err := hedera.NewTransferTransaction().
		AddHbarTransfer(fromID, amount.Neg().Sdk()).
		AddHbarTransfer(toID, amount.Sdk()).
		Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "hbar transfer")
		return
	}

	_, record, err = c.settle("transfer-hbar", rsp, false)
	return
}

func (c *Client) TransferNft(req NftTransferRequest) (receipt *Receipt, record *Record, err error) {
	tokenID, err := parseTokenID(req.TokenID)
	if err != nil {
		return
	}
	fromID, err := parseAccountID(req.From)
	if err != nil {
		return
	}
	toID, err := parseAccountID(req.To)
	if err != nil {
		return
	}
	key, err := parsePrivateKey(req.SignerKey)
	if err != nil {
		return
	}

	tx, err := hedera.NewTransferTransaction().
		AddNftTransfer(hedera.NftID{TokenID: tokenID, SerialNumber: req.Serial}, fromID, toID).
		FreezeWith(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "freeze nft transfer")
		return
	}

	rsp, err := tx.Sign(key).Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "nft transfer")
		return
	}

	return c.settle("transfer-nft", rsp, true)
}

func (c *Client) Associate(account string, tokens []string, signerKey string) (*Receipt, *Record, error) {
	accountID, tokenIDs, key, err := parseTokenRelation(account, tokens, signerKey)
	if err != nil {
		return nil, nil, err
	}

	tx, err := hedera.NewTokenAssociateTransaction().
		SetAccountID(accountID).
		SetTokenIDs(tokenIDs...).
		FreezeWith(c.sdk)
	if err != nil {
		return nil, nil, errors.Wrap(err, "freeze token associate")
	}

	rsp, err := tx.Sign(key).Execute(c.sdk)
	if err != nil {
		return nil, nil, errors.Wrap(err, "token associate")
	}

	return c.settle("associate", rsp, true)
}

func (c *Client) Dissociate(account string, tokens []string, signerKey string) (*Receipt, *Record, error) {
	accountID, tokenIDs, key, err := parseTokenRelation(account, tokens, signerKey)
	if err != nil {
		return nil, nil, err
	}

	tx, err := hedera.NewTokenDissociateTransaction().
		SetAccountID(accountID).
		SetTokenIDs(tokenIDs...).
		FreezeWith(c.sdk)
	if err != nil {
		return nil, nil, errors.Wrap(err, "freeze token dissociate")
	}

	rsp, err := tx.Sign(key).Execute(c.sdk)
	if err != nil {
		return nil, nil, errors.Wrap(err, "token dissociate")
	}

	return c.settle("dissociate", rsp, true)
}

func (c *Client) TokenInfo(token string) (info *TokenInfo, err error) {
	tokenID, err := parseTokenID(token)
	if err != nil {
		return
	}

	rsp, err := hedera.NewTokenInfoQuery().
		SetTokenID(tokenID).
		Execute(c.sdk)
	if err != nil {
		err = errors.Wrapf(err, "token info query for %s", token)
		return
	}

	info = &TokenInfo{
		TokenID:     rsp.TokenID.String(),
		Name:        rsp.Name,
		Symbol:      rsp.Symbol,
		Type:        rsp.TokenType.String(),
		SupplyType:  rsp.SupplyType.String(),
		Decimals:    rsp.Decimals,
		TotalSupply: rsp.TotalSupply,
		MaxSupply:   rsp.MaxSupply,
		Treasury:    rsp.Treasury.String(),
	}

	return
}

func (c *Client) CreateToken(req TokenCreateRequest) (receipt *Receipt, record *Record, err error) {
	treasuryID, err := parseAccountID(req.Treasury)
	if err != nil {
		return
	}
	treasuryKey, err := parsePrivateKey(req.TreasuryKey)
	if err != nil {
		return
	}
	supplyKey, err := parsePrivateKey(req.SupplyKey)
	if err != nil {
		return
	}

	tx, err := hedera.NewTokenCreateTransaction().
		SetTokenName(req.Name).
		SetTokenSymbol(req.Symbol).
		SetTokenType(hedera.TokenTypeNonFungibleUnique).
		SetDecimals(0).
		SetInitialSupply(0).
		SetTreasuryAccountID(treasuryID).
		SetSupplyType(hedera.TokenSupplyTypeFinite).
		SetMaxSupply(req.MaxSupply).
		SetSupplyKey(supplyKey.PublicKey()).
		FreezeWith(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "freeze token create")
		return
	}

	rsp, err := tx.Sign(treasuryKey).Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "token create")
		return
	}

	receipt, record, err = c.settle("create-token", rsp, true)
	if err != nil {
		return
	}

	if receipt.TokenID == "" {
		err = errors.Wrap(ErrMissingReceipt, "token id")
	}

	return
}

func (c *Client) MintNft(token string, metadata [][]byte, supplyKey string) (receipt *Receipt, record *Record, err error) {
	tokenID, err := parseTokenID(token)
	if err != nil {
		return
	}
	key, err := parsePrivateKey(supplyKey)
	if err != nil {
		return
	}

	tx, err := hedera.NewTokenMintTransaction().
		SetTokenID(tokenID).
		SetMetadatas(metadata).
		FreezeWith(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "freeze token mint")
		return
	}

	rsp, err := tx.Sign(key).Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "token mint")
		return
	}

	return c.settle("mint-nft", rsp, true)
}

func (c *Client) CreateAccount(publicKey string, initialBalance Hbar) (receipt *Receipt, err error) {
	key, err := hedera.PublicKeyFromString(publicKey)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "public key: %v", err)
		return
	}

	rsp, err := hedera.NewAccountCreateTransaction().
		SetKey(key).
		SetInitialBalance(initialBalance.Sdk()).
		Execute(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "account create")
		return
	}

	sdkReceipt, err := rsp.GetReceipt(c.sdk)
	if err != nil {
		err = errors.Wrap(err, "account create receipt")
		return
	}

	receipt = receiptFrom(rsp.TransactionID, sdkReceipt)
	c.appendJournal("create-account", receipt.TransactionID, receipt.Status)

	if receipt.AccountID == "" {
		err = errors.Wrap(ErrMissingReceipt, "account id")
	}

	return
}

func (c *Client) GenerateKey() (pair *KeyPair, err error) {
	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	return &KeyPair{
		PrivateKey: key.String(),
		PublicKey:  key.PublicKey().String(),
	}, nil
}

// settle waits for the outcome of a submitted transaction: the receipt when
// asked for, then the record, and journals the result.
func (c *Client) settle(op string, rsp hedera.TransactionResponse, withReceipt bool) (receipt *Receipt, record *Record, err error) {
	c.log.Debug().Msgf("submitted %s as %s to node %s", op, rsp.TransactionID, rsp.NodeID)

	if withReceipt {
		sdkReceipt, err2 := rsp.GetReceipt(c.sdk)
		if err2 != nil {
			c.appendJournal(op, rsp.TransactionID.String(), sdkReceipt.Status.String())
			err = errors.Wrapf(err2, "%s receipt", op)
			return
		}
		receipt = receiptFrom(rsp.TransactionID, sdkReceipt)
	}

	sdkRecord, err := rsp.GetRecord(c.sdk)
	if err != nil {
		c.appendJournal(op, rsp.TransactionID.String(), sdkRecord.Receipt.Status.String())
		err = errors.Wrapf(err, "%s record", op)
		return
	}

	record = recordFrom(sdkRecord)
	c.appendJournal(op, record.TransactionID, record.Receipt.Status)

	return
}

func (c *Client) appendJournal(op, transactionID, status string) {
	if c.journal == nil {
		return
	}

	err := c.journal.AppendJournal(JournalEntry{
		Op:            op,
		TransactionID: transactionID,
		Status:        status,
		Payer:         c.operatorID.String(),
		Network:       c.options.Network,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		c.log.Warn().Msgf("unable to journal %s %s: %+v", op, transactionID, err)
	}
}

func receiptFrom(transactionID hedera.TransactionID, r hedera.TransactionReceipt) *Receipt {
	receipt := &Receipt{
		TransactionID: transactionID.String(),
		Status:        r.Status.String(),
		Serials:       r.SerialNumbers,
	}
	if r.AccountID != nil {
		receipt.AccountID = r.AccountID.String()
	}
	if r.ContractID != nil {
		receipt.ContractID = r.ContractID.String()
	}
	if r.TokenID != nil {
		receipt.TokenID = r.TokenID.String()
	}
	return receipt
}

func recordFrom(r hedera.TransactionRecord) *Record {
	record := &Record{
		TransactionID:      r.TransactionID.String(),
		TransactionHash:    hex.EncodeToString(r.TransactionHash),
		ConsensusTimestamp: r.ConsensusTimestamp,
		Memo:               r.TransactionMemo,
		Fee:                HbarFromTinybars(r.TransactionFee.AsTinybar()),
		Receipt:            *receiptFrom(r.TransactionID, r.Receipt),
	}
	if r.CallResult != nil {
		record.Result = FunctionResult(r.CallResult.ContractCallResult)
		record.GasUsed = r.CallResult.GasUsed
		record.ErrorMessage = r.CallResult.ErrorMessage
	}
	return record
}

func parseAccountID(value string) (id hedera.AccountID, err error) {
	id, err = hedera.AccountIDFromString(value)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "account id '%s': %v", value, err)
	}
	return
}

func parseTokenID(value string) (id hedera.TokenID, err error) {
	if value == "" {
		err = errors.WithStack(ErrTokenNotSet)
		return
	}
	id, err = hedera.TokenIDFromString(value)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "token id '%s': %v", value, err)
	}
	return
}

func parsePrivateKey(value string) (key hedera.PrivateKey, err error) {
	if value == "" {
		err = errors.Wrap(ErrMissingCredentials, "signer private key is empty")
		return
	}
	key, err = hedera.PrivateKeyFromString(value)
	if err != nil {
		err = errors.Wrapf(ErrInvalidArgument, "private key: %v", err)
	}
	return
}

func parseTokenRelation(account string, tokens []string, signerKey string) (
	accountID hedera.AccountID,
	tokenIDs []hedera.TokenID,
	key hedera.PrivateKey,
	err error,
) {
	if accountID, err = parseAccountID(account); err != nil {
		return
	}
	if len(tokens) == 0 {
		err = errors.WithStack(ErrTokenNotSet)
		return
	}
	for _, token := range tokens {
		var tokenID hedera.TokenID
		if tokenID, err = parseTokenID(token); err != nil {
			return
		}
		tokenIDs = append(tokenIDs, tokenID)
	}
	key, err = parsePrivateKey(signerKey)
	return
}
