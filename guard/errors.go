package guard

import (
	"errors"
	"fmt"
)

var (
	// ErrInactivityPeriodNotLongEnough is returned when inheritance is claimed
	// before the owner's inactivity deadline has passed.
	ErrInactivityPeriodNotLongEnough = errors.New("inactivity period not long enough")

	// ErrNotOwner is returned when a caller invokes an owner-only operation
	// without being the current owner.
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrNotBeneficiary is returned when an operation requires the caller to be
	// a registered beneficiary and it is not. This includes the single
	// beneficiary case: expiry of the deadline never entitles an unregistered
	// caller to anything.
	ErrNotBeneficiary = errors.New("caller is not a registered beneficiary")

	// ErrInvalidBeneficiaries is returned when the beneficiary registry is, or
	// would become, empty. Constructing a guard with no beneficiaries fails
	// with this error, as does removing the last one.
	ErrInvalidBeneficiaries = errors.New("beneficiary registry must not be empty")

	// ErrDuplicateBeneficiary is returned when adding an already registered
	// beneficiary.
	ErrDuplicateBeneficiary = errors.New("beneficiary already registered")

	// ErrBeneficiaryNotFound is returned when removing a beneficiary that is
	// not registered.
	ErrBeneficiaryNotFound = errors.New("beneficiary not registered")

	// ErrAlreadyInherited is returned when inheritance is claimed after control
	// has already passed to the beneficiary set.
	ErrAlreadyInherited = errors.New("control already passed to beneficiaries")

	// ErrReentrantCall is returned when a dispatch operation is entered while
	// another dispatch is still in flight on the same guard.
	ErrReentrantCall = errors.New("reentrant call rejected")

	// ErrInsufficientBalance is returned when a dispatch requests more units
	// than the vault holds.
	ErrInsufficientBalance = errors.New("insufficient vault balance")

	// ErrBalanceOverflow is returned when a deposit would overflow the vault
	// balance.
	ErrBalanceOverflow = errors.New("vault balance overflow")
)

// TransferFailedError indicates that the external asset transfer collaborator
// reported failure. The failing dispatch leaves no state mutated beyond the
// release of the reentrancy guard.
type TransferFailedError struct {
	err error
}

func NewTransferFailedError(err error) TransferFailedError {
	return TransferFailedError{err: err}
}

func (e TransferFailedError) Error() string {
	return fmt.Sprintf("asset transfer failed: %v", e.err)
}

func (e TransferFailedError) Unwrap() error {
	return e.err
}

// IsTransferFailedError returns true if err is or wraps a TransferFailedError.
func IsTransferFailedError(err error) bool {
	var target TransferFailedError
	return errors.As(err, &target)
}
