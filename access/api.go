package access

import (
	"context"

	"github.com/onflow/inheritance-guard/model/vault"
)

// State is the externally visible guard state.
type State struct {
	Owner         vault.Address
	Deadline      int64
	Expired       bool
	Inherited     bool
	Balance       uint64
	Beneficiaries []vault.Address
}

// API provides all public access to the inheritance guard. Caller identities
// are supplied by the invoking runtime; implementations only compare them
// against the owner and the beneficiary registry.
type API interface {
	GetState(ctx context.Context) (*State, error)
	Deposit(ctx context.Context, amount uint64) (*State, error)
	SendAsset(ctx context.Context, caller vault.Address, amount uint64, recipient vault.Address) (*State, error)
	AddBeneficiary(ctx context.Context, caller, beneficiary vault.Address) (*State, error)
	RemoveBeneficiary(ctx context.Context, caller, beneficiary vault.Address) (*State, error)
	Inherit(ctx context.Context, caller vault.Address) (*State, error)
	WithdrawInheritedFunds(ctx context.Context, caller vault.Address) (*State, error)
	Interact(ctx context.Context, caller vault.Address, target vault.Address, payload []byte) (*State, error)
	CreateAsset(ctx context.Context, caller vault.Address) (uint64, error)
}
