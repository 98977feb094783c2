package access

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/onflow/inheritance-guard/guard"
	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/storage"
)

// InteractionRunner executes an arbitrary contract interaction against a
// target on the owner's behalf. The guard only cares that the call is routed
// through the owner action path; what it does is opaque.
type InteractionRunner func(target vault.Address, payload []byte) error

// Backend implements the API on top of a single guard instance. The guard
// itself is not goroutine-safe; the backend serializes all operations with one
// mutex. Reentrant calls made from inside an external transfer happen on the
// same call stack and never touch this mutex, so the guard's own reentrancy
// flag remains the authority there.
type Backend struct {
	mu    sync.Mutex
	log   zerolog.Logger
	guard *guard.Guard
	state storage.GuardState

	interactions InteractionRunner
	creator      guard.AssetCreator
}

type BackendOption func(*Backend)

func WithInteractionRunner(runner InteractionRunner) BackendOption {
	return func(b *Backend) {
		b.interactions = runner
	}
}

func WithAssetCreator(creator guard.AssetCreator) BackendOption {
	return func(b *Backend) {
		b.creator = creator
	}
}

func NewBackend(log zerolog.Logger, g *guard.Guard, state storage.GuardState, opts ...BackendOption) *Backend {
	var mintSeq uint64
	b := &Backend{
		log:   log.With().Str("component", "access_backend").Logger(),
		guard: g,
		state: state,
		interactions: func(target vault.Address, payload []byte) error {
			log.Info().Str("target", target.String()).Int("payload_size", len(payload)).Msg("contract interaction forwarded")
			return nil
		},
	}
	b.creator = guard.AssetCreatorFunc(func(owner vault.Address) (uint64, error) {
		mintSeq++
		return mintSeq, nil
	})
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) snapshot() *State {
	return &State{
		Owner:         b.guard.Owner(),
		Deadline:      b.guard.Deadline().Unix(),
		Expired:       b.guard.IsExpired(),
		Inherited:     b.guard.Inherited(),
		Balance:       b.guard.Balance(),
		Beneficiaries: b.guard.Beneficiaries(),
	}
}

// persist flushes the guard snapshot after a successful mutation. A mutation
// that cannot be persisted is still applied in memory; the error surfaces to
// the caller so the operator knows the durable copy is behind.
func (b *Backend) persist() error {
	err := b.state.Save(b.guard.Snapshot())
	if err != nil {
		return fmt.Errorf("could not persist guard state: %w", err)
	}
	return nil
}

// mutate runs fn under the backend mutex and persists on success.
func (b *Backend) mutate(fn func() error) (*State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := fn()
	if err != nil {
		return nil, err
	}
	err = b.persist()
	if err != nil {
		return nil, err
	}
	return b.snapshot(), nil
}

func (b *Backend) GetState(_ context.Context) (*State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(), nil
}

func (b *Backend) Deposit(_ context.Context, amount uint64) (*State, error) {
	return b.mutate(func() error {
		return b.guard.Deposit(amount)
	})
}

func (b *Backend) SendAsset(_ context.Context, caller vault.Address, amount uint64, recipient vault.Address) (*State, error) {
	return b.mutate(func() error {
		return b.guard.SendAsset(caller, amount, recipient)
	})
}

func (b *Backend) AddBeneficiary(_ context.Context, caller, beneficiary vault.Address) (*State, error) {
	return b.mutate(func() error {
		return b.guard.AddBeneficiary(caller, beneficiary)
	})
}

func (b *Backend) RemoveBeneficiary(_ context.Context, caller, beneficiary vault.Address) (*State, error) {
	return b.mutate(func() error {
		return b.guard.RemoveBeneficiary(caller, beneficiary)
	})
}

func (b *Backend) Inherit(_ context.Context, caller vault.Address) (*State, error) {
	return b.mutate(func() error {
		return b.guard.Inherit(caller)
	})
}

func (b *Backend) WithdrawInheritedFunds(_ context.Context, caller vault.Address) (*State, error) {
	return b.mutate(func() error {
		return b.guard.WithdrawInheritedFunds(caller)
	})
}

func (b *Backend) Interact(_ context.Context, caller vault.Address, target vault.Address, payload []byte) (*State, error) {
	return b.mutate(func() error {
		return b.guard.Interact(caller, func() error {
			return b.interactions(target, payload)
		})
	})
}

func (b *Backend) CreateAsset(_ context.Context, caller vault.Address) (uint64, error) {
	var ref uint64
	_, err := b.mutate(func() error {
		created, err := b.guard.CreateAsset(caller, b.creator)
		if err != nil {
			return err
		}
		ref = created
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ref, nil
}
