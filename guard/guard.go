// Package guard implements the inheritance guard: a small state machine that
// custodies vault assets for an owner and hands control to a set of registered
// beneficiaries once the owner has been inactive past a fixed window.
//
// The execution model is single-threaded but re-entrant: any operation that
// calls out to another party's code can be called back into before the outward
// call returns. A Guard is not safe for concurrent use by multiple goroutines;
// callers that need that must serialize access themselves (see engine/rest).
package guard

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/module"
	"github.com/onflow/inheritance-guard/module/metrics"
)

// DefaultInactivityWindow is the inactivity window used when none is
// configured.
const DefaultInactivityWindow = 90 * 24 * time.Hour

// Guard tracks the owner, deadline, beneficiary registry and vault balance,
// and mediates every state mutation.
type Guard struct {
	log      zerolog.Logger
	metrics  module.GuardMetrics
	clock    Clock
	transfer TransferCapability

	owner         vault.Address
	window        time.Duration
	deadline      time.Time
	beneficiaries *registry
	inherited     bool
	balance       uint64

	// dispatching is the reentrancy guard. One boolean slot serves both the
	// "is held" check and the "mark held" mutation; it is never persisted.
	dispatching bool
}

type Option func(*Guard)

func WithLogger(log zerolog.Logger) Option {
	return func(g *Guard) {
		g.log = log
	}
}

func WithMetrics(collector module.GuardMetrics) Option {
	return func(g *Guard) {
		g.metrics = collector
	}
}

func WithClock(clock Clock) Option {
	return func(g *Guard) {
		g.clock = clock
	}
}

func WithTransferCapability(transfer TransferCapability) Option {
	return func(g *Guard) {
		g.transfer = transfer
	}
}

func newGuard(owner vault.Address, window time.Duration, opts []Option) *Guard {
	g := &Guard{
		log:      zerolog.Nop(),
		metrics:  metrics.NewNoopCollector(),
		clock:    SystemClock(),
		transfer: TransferFunc(func(uint64, vault.Address) error { return nil }),
		owner:    owner,
		window:   window,
	}
	if window <= 0 {
		g.window = DefaultInactivityWindow
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New constructs a guard for the given owner. At least one beneficiary is
// required; a configuration with none fails construction with
// ErrInvalidBeneficiaries rather than producing a guard that can never be
// inherited. The deadline starts at now + window.
func New(owner vault.Address, beneficiaries []vault.Address, window time.Duration, opts ...Option) (*Guard, error) {
	g := newGuard(owner, window, opts)

	reg, err := newRegistry(beneficiaries)
	if err != nil {
		return nil, err
	}
	g.beneficiaries = reg
	g.deadline = g.clock.Now().Add(g.window)

	g.metrics.RegistrySize(uint(reg.size()))
	g.log.Info().
		Str("owner", owner.String()).
		Int("beneficiaries", reg.size()).
		Dur("window", g.window).
		Time("deadline", g.deadline).
		Msg("inheritance guard initialized")
	return g, nil
}

// FromSnapshot reconstructs a guard from a previously stored snapshot. The
// non-empty registry invariant applies only while the guard is waiting for
// inheritance: once control has passed, claims consume registrations, and a
// fully distributed vault restores with an empty registry.
func FromSnapshot(snap *vault.Snapshot, opts ...Option) (*Guard, error) {
	g := newGuard(snap.Owner, snap.Window, opts)

	var reg *registry
	var err error
	if snap.Inherited {
		reg, err = restoredRegistry(snap.Beneficiaries)
	} else {
		reg, err = newRegistry(snap.Beneficiaries)
	}
	if err != nil {
		return nil, err
	}
	g.beneficiaries = reg
	g.deadline = snap.Deadline
	g.inherited = snap.Inherited
	g.balance = snap.Balance

	g.metrics.RegistrySize(uint(reg.size()))
	g.metrics.VaultBalance(g.balance)
	g.log.Info().
		Str("owner", g.owner.String()).
		Int("beneficiaries", reg.size()).
		Bool("inherited", g.inherited).
		Time("deadline", g.deadline).
		Msg("inheritance guard restored")
	return g, nil
}

// Snapshot returns the durable guard state.
func (g *Guard) Snapshot() *vault.Snapshot {
	return &vault.Snapshot{
		Owner:         g.owner,
		Window:        g.window,
		Deadline:      g.deadline,
		Beneficiaries: g.beneficiaries.all(),
		Inherited:     g.inherited,
		Balance:       g.balance,
	}
}

func (g *Guard) Owner() vault.Address {
	return g.owner
}

func (g *Guard) Deadline() time.Time {
	return g.deadline
}

// IsExpired returns true once the inactivity deadline has been reached.
func (g *Guard) IsExpired() bool {
	return !g.clock.Now().Before(g.deadline)
}

func (g *Guard) Inherited() bool {
	return g.inherited
}

func (g *Guard) Balance() uint64 {
	return g.balance
}

func (g *Guard) Beneficiaries() []vault.Address {
	return g.beneficiaries.all()
}

// Deposit credits the vault. Anyone may deposit; it is not an owner action and
// does not reset the inactivity deadline. A deposit that would overflow the
// balance is rejected rather than silently wrapping.
func (g *Guard) Deposit(amount uint64) error {
	if amount > math.MaxUint64-g.balance {
		return ErrBalanceOverflow
	}
	g.balance += amount
	g.metrics.VaultBalance(g.balance)
	g.log.Debug().Uint64("amount", amount).Uint64("balance", g.balance).Msg("deposit received")
	return nil
}

// touchActivity unconditionally resets the deadline to now + window. It is
// only reachable through authorized, which every owner-authorized mutation
// runs under, so no operation can forget the reset.
func (g *Guard) touchActivity() {
	g.deadline = g.clock.Now().Add(g.window)
	g.metrics.ActivityReset()
	g.log.Debug().Time("deadline", g.deadline).Msg("inactivity deadline reset")
}

// authorized runs fn as an owner action: the caller must be the current owner,
// and a successful fn resets the inactivity deadline. Failures leave the
// deadline untouched.
func (g *Guard) authorized(caller vault.Address, operation string, fn func() error) error {
	if caller != g.owner {
		g.metrics.OperationFinished(operation, outcomeLabel(ErrNotOwner))
		return ErrNotOwner
	}
	err := fn()
	g.metrics.OperationFinished(operation, outcomeLabel(err))
	if err != nil {
		return err
	}
	g.touchActivity()
	return nil
}

// withDispatchGuard brackets fn with the reentrancy guard. The check and the
// set address the same slot and there is no suspension point between them; fn
// may suspend (it calls external code), which is exactly what the guard
// protects against. The release runs on every exit path.
func (g *Guard) withDispatchGuard(fn func() error) error {
	if g.dispatching {
		g.metrics.ReentrantCallRejected()
		g.log.Warn().Msg("reentrant dispatch rejected")
		return ErrReentrantCall
	}
	g.dispatching = true
	defer func() { g.dispatching = false }()

	start := g.clock.Now()
	err := fn()
	g.metrics.DispatchDuration(g.clock.Now().Sub(start))
	return err
}

// AddBeneficiary registers a new beneficiary. Owner only; once control has
// passed to the beneficiary set the registry is frozen.
func (g *Guard) AddBeneficiary(caller, beneficiary vault.Address) error {
	return g.authorized(caller, "add_beneficiary", func() error {
		if g.inherited {
			return ErrAlreadyInherited
		}
		err := g.beneficiaries.add(beneficiary)
		if err != nil {
			return err
		}
		g.metrics.RegistrySize(uint(g.beneficiaries.size()))
		g.log.Info().Str("beneficiary", beneficiary.String()).Msg("beneficiary added")
		return nil
	})
}

// RemoveBeneficiary removes a registered beneficiary. Owner only. Once
// control has passed, the registered claims belong to the beneficiaries and
// the owner can no longer strip them. Removing the last beneficiary is
// rejected: a guard waiting for inheritance keeps a non-empty registry.
func (g *Guard) RemoveBeneficiary(caller, beneficiary vault.Address) error {
	return g.authorized(caller, "remove_beneficiary", func() error {
		if g.inherited {
			return ErrAlreadyInherited
		}
		if g.beneficiaries.size() == 1 {
			if !g.beneficiaries.contains(beneficiary) {
				return ErrBeneficiaryNotFound
			}
			return ErrInvalidBeneficiaries
		}
		err := g.beneficiaries.remove(beneficiary)
		if err != nil {
			return err
		}
		g.metrics.RegistrySize(uint(g.beneficiaries.size()))
		g.log.Info().Str("beneficiary", beneficiary.String()).Msg("beneficiary removed")
		return nil
	})
}

// Inherit claims control after the owner's inactivity deadline has passed.
// The caller must be a registered beneficiary regardless of registry size;
// expiry of the deadline alone entitles nobody to anything. With a single
// beneficiary, ownership is reassigned to the caller and the deadline restarts
// for the new owner. With two or more, the inherited flag is set and the vault
// becomes claimable by every registered beneficiary.
func (g *Guard) Inherit(caller vault.Address) error {
	err := g.inherit(caller)
	g.metrics.OperationFinished("inherit", outcomeLabel(err))
	return err
}

func (g *Guard) inherit(caller vault.Address) error {
	if g.inherited {
		return ErrAlreadyInherited
	}
	// unreachable given the construction invariant, checked defensively
	if g.beneficiaries.size() == 0 {
		return ErrInvalidBeneficiaries
	}
	if !g.IsExpired() {
		return ErrInactivityPeriodNotLongEnough
	}
	if !g.beneficiaries.contains(caller) {
		return ErrNotBeneficiary
	}

	if g.beneficiaries.size() == 1 {
		previous := g.owner
		g.owner = caller
		g.touchActivity()
		g.metrics.InheritanceClaimed("sole")
		g.log.Info().
			Str("previous_owner", previous.String()).
			Str("owner", caller.String()).
			Msg("ownership inherited by sole beneficiary")
		return nil
	}

	g.inherited = true
	g.metrics.InheritanceClaimed("shared")
	g.log.Info().
		Int("beneficiaries", g.beneficiaries.size()).
		Msg("control passed to beneficiary set")
	return nil
}

// SendAsset dispatches amount to recipient through the external transfer
// capability. Before inheritance it is an owner action and resets the
// inactivity deadline. After inheritance any registered beneficiary may call
// it to claim from their pro-rata share of the current balance; a claim
// consumes the caller's registration, so nobody collects twice.
//
// The transfer may execute recipient code; the whole dispatch runs under the
// reentrancy guard and a nested call fails with ErrReentrantCall before any
// side effect. The balance is only debited after the transfer succeeds, so a
// failed transfer mutates nothing beyond the guard's own release.
func (g *Guard) SendAsset(caller vault.Address, amount uint64, recipient vault.Address) error {
	if g.inherited {
		err := g.claimShare(caller, amount, recipient)
		g.metrics.OperationFinished("send_asset", outcomeLabel(err))
		return err
	}
	return g.authorized(caller, "send_asset", func() error {
		return g.withDispatchGuard(func() error {
			err := g.payOut(amount, recipient)
			if err != nil {
				return err
			}
			g.log.Info().
				Uint64("amount", amount).
				Str("recipient", recipient.String()).
				Msg("asset sent")
			return nil
		})
	})
}

func (g *Guard) claimShare(caller vault.Address, amount uint64, recipient vault.Address) error {
	if !g.beneficiaries.contains(caller) {
		return ErrNotBeneficiary
	}
	share := g.balance / uint64(g.beneficiaries.size())
	if amount > share {
		return ErrInsufficientBalance
	}
	return g.withDispatchGuard(func() error {
		err := g.payOut(amount, recipient)
		if err != nil {
			return err
		}
		// the claim is consumed even if less than the full share was taken
		_ = g.beneficiaries.remove(caller)
		g.metrics.RegistrySize(uint(g.beneficiaries.size()))
		g.log.Info().
			Str("beneficiary", caller.String()).
			Uint64("amount", amount).
			Str("recipient", recipient.String()).
			Msg("inherited share claimed")
		return nil
	})
}

// payOut performs one externally visible transfer and commits the matching
// balance debit. Must run under the dispatch guard.
func (g *Guard) payOut(amount uint64, recipient vault.Address) error {
	if amount > g.balance {
		return ErrInsufficientBalance
	}
	err := g.transfer.Transfer(amount, recipient)
	if err != nil {
		return NewTransferFailedError(err)
	}
	g.balance -= amount
	g.metrics.VaultBalance(g.balance)
	return nil
}

// WithdrawInheritedFunds distributes an equal share of the current balance to
// every registered beneficiary. Callable by any registered beneficiary once
// the inherited flag is set. The integer remainder of the division stays in
// the vault. Distributed registrations are consumed as each share is paid, so
// a transfer failure part way through leaves the already paid members removed
// and the rest still able to claim.
func (g *Guard) WithdrawInheritedFunds(caller vault.Address) error {
	err := g.withdrawInheritedFunds(caller)
	g.metrics.OperationFinished("withdraw_inherited_funds", outcomeLabel(err))
	return err
}

func (g *Guard) withdrawInheritedFunds(caller vault.Address) error {
	if !g.inherited {
		return ErrInactivityPeriodNotLongEnough
	}
	if !g.beneficiaries.contains(caller) {
		return ErrNotBeneficiary
	}
	return g.withDispatchGuard(func() error {
		// the registry is dense, so this visits exactly the real members
		members := g.beneficiaries.all()
		share := g.balance / uint64(len(members))
		for _, member := range members {
			err := g.payOut(share, member)
			if err != nil {
				return err
			}
			_ = g.beneficiaries.remove(member)
		}
		g.metrics.RegistrySize(uint(g.beneficiaries.size()))
		g.log.Info().
			Int("beneficiaries", len(members)).
			Uint64("share", share).
			Uint64("remainder", g.balance).
			Msg("inherited funds distributed")
		return nil
	})
}

// Interact executes an arbitrary call into another party's code on the
// owner's behalf. The call itself is opaque to the guard; routing it through
// the owner action path is what keeps the inactivity deadline honest, and the
// dispatch guard protects against the callee re-entering.
func (g *Guard) Interact(caller vault.Address, interaction Interaction) error {
	return g.authorized(caller, "interact", func() error {
		return g.withDispatchGuard(interaction)
	})
}

// CreateAsset creates a new asset (e.g. an NFT mint) for the owner through the
// external creator and returns its reference. Owner action: resets the
// inactivity deadline on success.
func (g *Guard) CreateAsset(caller vault.Address, creator AssetCreator) (uint64, error) {
	var ref uint64
	err := g.authorized(caller, "create_asset", func() error {
		return g.withDispatchGuard(func() error {
			created, err := creator.Create(g.owner)
			if err != nil {
				return err
			}
			ref = created
			g.log.Info().Uint64("asset", ref).Msg("asset created")
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return ref, nil
}
