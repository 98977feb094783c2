package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/inheritance-guard/model/vault"
)

// InsertGuardState stores the initial guard snapshot. It errors with
// storage.ErrAlreadyExists if a snapshot is already present.
func InsertGuardState(snapshot *vault.Snapshot) func(*badger.Txn) error {
	return insert(makePrefix(codeGuardState), snapshot)
}

// UpsertGuardState stores the guard snapshot, replacing any previous one.
func UpsertGuardState(snapshot *vault.Snapshot) func(*badger.Txn) error {
	return upsert(makePrefix(codeGuardState), snapshot)
}

// RetrieveGuardState loads the stored guard snapshot.
func RetrieveGuardState(snapshot *vault.Snapshot) func(*badger.Txn) error {
	return retrieve(makePrefix(codeGuardState), snapshot)
}
