package guard

import (
	"github.com/onflow/inheritance-guard/model/vault"
)

// TransferCapability moves assets to a recipient outside the vault. The
// implementation may run recipient-controlled code before returning, which can
// call back into the guard; every call site is therefore bracketed by the
// reentrancy guard. A failed transfer must have no observable effect on the
// recipient.
type TransferCapability interface {
	Transfer(amount uint64, recipient vault.Address) error
}

// TransferFunc adapts a function to the TransferCapability interface.
type TransferFunc func(amount uint64, recipient vault.Address) error

func (f TransferFunc) Transfer(amount uint64, recipient vault.Address) error {
	return f(amount, recipient)
}

// Interaction is an arbitrary call into another party's code, executed on the
// owner's behalf. The guard takes no interest in what it does; it only routes
// the call through the owner authorization path so the inactivity deadline is
// reset.
type Interaction func() error

// AssetCreator creates a new asset (for example an NFT mint) on the owner's
// behalf and returns an opaque reference to it.
type AssetCreator interface {
	Create(owner vault.Address) (uint64, error)
}

// AssetCreatorFunc adapts a function to the AssetCreator interface.
type AssetCreatorFunc func(owner vault.Address) (uint64, error)

func (f AssetCreatorFunc) Create(owner vault.Address) (uint64, error) {
	return f(owner)
}
