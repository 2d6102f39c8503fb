package hederalegacy

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValidStart = time.Unix(1700000000, 5).UTC()

func testTransactionID() hedera.TransactionID {
	return hedera.TransactionID{
		AccountID:  &hedera.AccountID{Account: 1001},
		ValidStart: &testValidStart,
	}
}

func TestReceiptFrom(t *testing.T) {
	receipt := receiptFrom(testTransactionID(), hedera.TransactionReceipt{
		Status:        hedera.StatusSuccess,
		ContractID:    &hedera.ContractID{Contract: 49102024},
		TokenID:       &hedera.TokenID{Token: 49102025},
		SerialNumbers: []int64{13, 14},
	})

	assert.Equal(t, "0.0.1001@1700000000.000000005", receipt.TransactionID)
	assert.Equal(t, "SUCCESS", receipt.Status)
	assert.Equal(t, "", receipt.AccountID)
	assert.Equal(t, "0.0.49102024", receipt.ContractID)
	assert.Equal(t, "0.0.49102025", receipt.TokenID)
	assert.Equal(t, []int64{13, 14}, receipt.Serials)

	receipt = receiptFrom(testTransactionID(), hedera.TransactionReceipt{
		Status:    hedera.StatusSuccess,
		AccountID: &hedera.AccountID{Account: 2002},
	})
	assert.Equal(t, "0.0.2002", receipt.AccountID)
	assert.Equal(t, "", receipt.ContractID)
	assert.Equal(t, "", receipt.TokenID)
	assert.Nil(t, receipt.Serials)
}

func TestRecordFrom(t *testing.T) {
	consensus := time.Unix(1700000001, 0).UTC()

	record := recordFrom(hedera.TransactionRecord{
		TransactionID:      testTransactionID(),
		TransactionHash:    []byte{0xde, 0xad},
		ConsensusTimestamp: consensus,
		TransactionMemo:    "Donate",
		TransactionFee:     hedera.HbarFromTinybar(12345),
		Receipt:            hedera.TransactionReceipt{Status: hedera.StatusSuccess},
		CallResult: &hedera.ContractFunctionResult{
			ContractCallResult: make([]byte, 64),
			GasUsed:            21000,
			ErrorMessage:       "",
		},
	})

	assert.Equal(t, "0.0.1001@1700000000.000000005", record.TransactionID)
	assert.Equal(t, "dead", record.TransactionHash)
	assert.True(t, record.ConsensusTimestamp.Equal(consensus))
	assert.Equal(t, "Donate", record.Memo)
	assert.Equal(t, HbarFromTinybars(12345), record.Fee)
	assert.Equal(t, "SUCCESS", record.Receipt.Status)
	assert.Equal(t, record.TransactionID, record.Receipt.TransactionID)
	assert.Equal(t, 2, record.Result.Words())
	assert.Equal(t, uint64(21000), record.GasUsed)
}

func TestRecordFromWithoutCallResult(t *testing.T) {
	record := recordFrom(hedera.TransactionRecord{
		TransactionID: testTransactionID(),
		Receipt:       hedera.TransactionReceipt{Status: hedera.StatusInsufficientPayerBalance},
	})

	assert.Nil(t, record.Result)
	assert.Equal(t, uint64(0), record.GasUsed)
	assert.Equal(t, "", record.TransactionHash)
	assert.Equal(t, "INSUFFICIENT_PAYER_BALANCE", record.Receipt.Status)
}

func newJournalClient(journal Journal, logOut *bytes.Buffer) *Client {
	logger := zerolog.New(logOut)
	return &Client{
		options:    &ClientOptions{Network: NetworkLocal},
		operatorID: hedera.AccountID{Account: 1001},
		log:        &logger,
		journal:    journal,
	}
}

func TestClientJournalsSubmissions(t *testing.T) {
	store := NewInMemoryStore()
	c := newJournalClient(store, new(bytes.Buffer))

	c.appendJournal("deploy", "0.0.1001@1700000000.000000005", "SUCCESS")
	c.appendJournal("initialize", "0.0.1001@1700000000.000000006", "CONTRACT_REVERT_EXECUTED")

	entries, err := store.ListJournal(0)
	require.Nil(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "initialize", entries[0].Op)
	assert.Equal(t, "CONTRACT_REVERT_EXECUTED", entries[0].Status)
	assert.Equal(t, "deploy", entries[1].Op)
	assert.Equal(t, "0.0.1001", entries[1].Payer)
	assert.Equal(t, NetworkLocal, entries[1].Network)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

type failingJournal struct{}

func (failingJournal) AppendJournal(JournalEntry) error {
	return fmt.Errorf("disk full")
}

func TestClientJournalFailureOnlyWarns(t *testing.T) {
	logOut := new(bytes.Buffer)
	c := newJournalClient(failingJournal{}, logOut)

	assert.NotPanics(t, func() {
		c.appendJournal("mint", "0.0.1001@1700000000.000000007", "SUCCESS")
	})
	assert.Contains(t, logOut.String(), `"level":"warn"`)
	assert.Contains(t, logOut.String(), "unable to journal mint")
	assert.Contains(t, logOut.String(), "disk full")
}

func TestClientWithoutJournal(t *testing.T) {
	logOut := new(bytes.Buffer)
	c := newJournalClient(nil, logOut)

	assert.NotPanics(t, func() {
		c.appendJournal("mint", "tx", "SUCCESS")
	})
	assert.Equal(t, "", logOut.String())
}
