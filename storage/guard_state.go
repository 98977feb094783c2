package storage

import (
	"github.com/onflow/inheritance-guard/model/vault"
)

// GuardState persists the durable portion of the guard state. The transient
// reentrancy flag is never written.
type GuardState interface {
	// Store writes the initial snapshot. It returns storage.ErrAlreadyExists
	// if a snapshot is already present.
	Store(snapshot *vault.Snapshot) error

	// Save stores the snapshot, replacing any previous one.
	Save(snapshot *vault.Snapshot) error

	// Retrieve returns the stored snapshot. It returns storage.ErrNotFound if
	// no snapshot has been saved yet.
	Retrieve() (*vault.Snapshot, error)
}
