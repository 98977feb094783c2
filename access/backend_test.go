package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/guard"
	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/utils/unittest"
)

// stateRecorder is an in-memory storage.GuardState that counts saves.
type stateRecorder struct {
	saves int
	last  *vault.Snapshot
}

func (s *stateRecorder) Store(snapshot *vault.Snapshot) error {
	return s.Save(snapshot)
}

func (s *stateRecorder) Save(snapshot *vault.Snapshot) error {
	s.saves++
	s.last = snapshot
	return nil
}

func (s *stateRecorder) Retrieve() (*vault.Snapshot, error) {
	return s.last, nil
}

func newBackend(t *testing.T, beneficiaries []vault.Address) (*access.Backend, *stateRecorder, vault.Address) {
	owner := unittest.AddressFixture()
	g, err := guard.New(owner, beneficiaries, 90*24*time.Hour,
		guard.WithLogger(unittest.Logger()))
	require.NoError(t, err)

	recorder := &stateRecorder{}
	backend := access.NewBackend(unittest.Logger(), g, recorder)
	return backend, recorder, owner
}

func TestBackendPersistsAfterMutation(t *testing.T) {
	backend, recorder, _ := newBackend(t, unittest.AddressFixtures(2))

	state, err := backend.Deposit(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), state.Balance)
	assert.Equal(t, 1, recorder.saves)
	assert.Equal(t, uint64(100), recorder.last.Balance)
}

func TestBackendDoesNotPersistFailures(t *testing.T) {
	beneficiaries := unittest.AddressFixtures(2)
	backend, recorder, _ := newBackend(t, beneficiaries)

	_, err := backend.AddBeneficiary(context.Background(), unittest.AddressFixture(), unittest.AddressFixture())
	assert.ErrorIs(t, err, guard.ErrNotOwner)
	assert.Zero(t, recorder.saves)
}

func TestBackendBeneficiaryManagement(t *testing.T) {
	beneficiaries := unittest.AddressFixtures(2)
	backend, _, owner := newBackend(t, beneficiaries)
	ctx := context.Background()

	added := unittest.AddressFixture()
	state, err := backend.AddBeneficiary(ctx, owner, added)
	require.NoError(t, err)
	assert.Len(t, state.Beneficiaries, 3)

	state, err = backend.RemoveBeneficiary(ctx, owner, added)
	require.NoError(t, err)
	assert.Len(t, state.Beneficiaries, 2)
	assert.ElementsMatch(t, beneficiaries, state.Beneficiaries)
}

func TestBackendCreateAsset(t *testing.T) {
	backend, recorder, owner := newBackend(t, unittest.AddressFixtures(1))
	ctx := context.Background()

	first, err := backend.CreateAsset(ctx, owner)
	require.NoError(t, err)
	second, err := backend.CreateAsset(ctx, owner)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "default creator hands out unique references")
	assert.Equal(t, 2, recorder.saves)
}

func TestBackendInteractForwardsPayload(t *testing.T) {
	owner := unittest.AddressFixture()
	g, err := guard.New(owner, unittest.AddressFixtures(1), 90*24*time.Hour,
		guard.WithLogger(unittest.Logger()))
	require.NoError(t, err)

	var gotTarget vault.Address
	var gotPayload []byte
	backend := access.NewBackend(unittest.Logger(), g, &stateRecorder{},
		access.WithInteractionRunner(func(target vault.Address, payload []byte) error {
			gotTarget = target
			gotPayload = payload
			return nil
		}))

	target := unittest.AddressFixture()
	_, err = backend.Interact(context.Background(), owner, target, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, target, gotTarget)
	assert.Equal(t, []byte{1, 2, 3}, gotPayload)
}
