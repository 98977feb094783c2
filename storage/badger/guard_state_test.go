package badger_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/storage"
	bstorage "github.com/onflow/inheritance-guard/storage/badger"
	"github.com/onflow/inheritance-guard/utils/unittest"
)

func assertSnapshotsEqual(t *testing.T, expected, actual *vault.Snapshot) {
	t.Helper()
	assert.Equal(t, expected.Owner, actual.Owner)
	assert.Equal(t, expected.Window, actual.Window)
	assert.True(t, expected.Deadline.Equal(actual.Deadline),
		"expected deadline %s, got %s", expected.Deadline, actual.Deadline)
	assert.Equal(t, expected.Beneficiaries, actual.Beneficiaries)
	assert.Equal(t, expected.Inherited, actual.Inherited)
	assert.Equal(t, expected.Balance, actual.Balance)
}

func TestGuardStateRoundTrip(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewGuardState(db)

		expected := unittest.SnapshotFixture()
		require.NoError(t, store.Save(expected))

		actual, err := store.Retrieve()
		require.NoError(t, err)
		assertSnapshotsEqual(t, expected, actual)
	})
}

func TestGuardStateStoreRejectsExisting(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewGuardState(db)

		first := unittest.SnapshotFixture()
		require.NoError(t, store.Store(first))

		second := unittest.SnapshotFixture()
		second.Balance = first.Balance + 1
		err := store.Store(second)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)

		actual, err := store.Retrieve()
		require.NoError(t, err)
		assertSnapshotsEqual(t, first, actual)
	})
}

func TestGuardStateSaveReplaces(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewGuardState(db)

		first := unittest.SnapshotFixture()
		require.NoError(t, store.Save(first))

		second := unittest.SnapshotFixture()
		second.Balance = first.Balance + 1
		require.NoError(t, store.Save(second))

		actual, err := store.Retrieve()
		require.NoError(t, err)
		assertSnapshotsEqual(t, second, actual)
	})
}

func TestGuardStateRetrieveMissing(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewGuardState(db)

		_, err := store.Retrieve()
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
