package hederalegacy

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	testStore(t, NewInMemoryStore())
}

func TestSqliteStore(t *testing.T) {
	defer func() {
		_ = os.Remove("hedera-test.db")
	}()

	db, err := NewSqliteStore("hedera-test.db")
	require.Nil(t, err)
	defer db.Close()

	testStore(t, db)
}

func TestSqliteStoreReopen(t *testing.T) {
	path := t.TempDir() + "/reopen.db"

	db, err := NewSqliteStore(path)
	require.Nil(t, err)
	assert.Nil(t, db.SaveDeployment(Deployment{Name: DeploymentNft, TokenID: "0.0.6006"}))
	assert.Nil(t, db.Close())

	db, err = NewSqliteStore(path)
	require.Nil(t, err)
	defer db.Close()

	deployment, err := db.GetDeployment(DeploymentNft)
	assert.Nil(t, err)
	assert.Equal(t, "0.0.6006", deployment.TokenID)
}

func testStore(t *testing.T, store Store) {
	// Deployments

	_, err := store.GetDeployment(DeploymentStaking)
	assert.ErrorIs(t, err, ErrDeploymentNotFound)

	err = store.SaveDeployment(Deployment{})
	assert.ErrorIs(t, err, ErrInvalidArgument, "expected error saving a deployment without a name")

	err = store.SaveDeployment(Deployment{Name: DeploymentStaking, ContractID: "0.0.100"})
	assert.Nil(t, err)

	err = store.SaveDeployment(Deployment{Name: DeploymentStaking, ContractID: "0.0.100", TokenID: "0.0.101"})
	assert.Nil(t, err)

	deployment, err := store.GetDeployment(DeploymentStaking)
	assert.Nil(t, err)
	assert.Equal(t, "0.0.100", deployment.ContractID)
	assert.Equal(t, "0.0.101", deployment.TokenID)
	assert.False(t, deployment.UpdatedAt.IsZero())

	err = store.SaveDeployment(Deployment{Name: DeploymentStaking, ContractID: "0.0.102"})
	assert.Nil(t, err)

	deployment, err = store.GetDeployment(DeploymentStaking)
	assert.Nil(t, err)
	assert.Equal(t, "0.0.102", deployment.ContractID)
	assert.Equal(t, "", deployment.TokenID, "a redeploy should clear the old token")

	err = store.SaveDeployment(Deployment{Name: DeploymentCollection, ContractID: "0.0.200"})
	assert.Nil(t, err)

	deployments, err := store.ListDeployments()
	assert.Nil(t, err)
	require.Len(t, deployments, 2)
	assert.Equal(t, DeploymentCollection, deployments[0].Name)
	assert.Equal(t, DeploymentStaking, deployments[1].Name)

	// Journal

	entries, err := store.ListJournal(0)
	assert.Nil(t, err)
	assert.Len(t, entries, 0)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, op := range []string{"deploy", "initialize", "mint"} {
		err = store.AppendJournal(JournalEntry{
			Op:            op,
			TransactionID: "0.0.1001@1700000000." + string(rune('0'+i)),
			Status:        "SUCCESS",
			Payer:         "0.0.1001",
			Network:       NetworkTestNet,
			CreatedAt:     created.Add(time.Duration(i) * time.Second),
		})
		assert.Nil(t, err)
	}

	entries, err = store.ListJournal(0)
	assert.Nil(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "mint", entries[0].Op)
	assert.Equal(t, "deploy", entries[2].Op)
	assert.Equal(t, NetworkTestNet, entries[0].Network)
	assert.True(t, entries[2].CreatedAt.Equal(created))

	entries, err = store.ListJournal(2)
	assert.Nil(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "initialize", entries[1].Op)
}
