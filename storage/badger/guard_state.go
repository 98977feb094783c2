package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/storage/badger/operation"
)

// GuardState stores the guard snapshot in a badger database under a single
// key.
type GuardState struct {
	db *badger.DB
}

func NewGuardState(db *badger.DB) *GuardState {
	g := GuardState{
		db: db,
	}
	return &g
}

func (g *GuardState) Store(snapshot *vault.Snapshot) error {
	err := g.db.Update(operation.InsertGuardState(snapshot))
	if err != nil {
		return fmt.Errorf("could not store guard state: %w", err)
	}
	return nil
}

func (g *GuardState) Save(snapshot *vault.Snapshot) error {
	err := g.db.Update(operation.UpsertGuardState(snapshot))
	if err != nil {
		return fmt.Errorf("could not save guard state: %w", err)
	}
	return nil
}

func (g *GuardState) Retrieve() (*vault.Snapshot, error) {
	var snapshot vault.Snapshot
	err := g.db.View(operation.RetrieveGuardState(&snapshot))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve guard state: %w", err)
	}
	return &snapshot, nil
}
