package guard

import "errors"

// outcomeLabel maps an operation result to a low-cardinality metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInactivityPeriodNotLongEnough):
		return "not_expired"
	case errors.Is(err, ErrNotOwner):
		return "not_owner"
	case errors.Is(err, ErrNotBeneficiary):
		return "not_beneficiary"
	case errors.Is(err, ErrInvalidBeneficiaries):
		return "invalid_beneficiaries"
	case errors.Is(err, ErrDuplicateBeneficiary):
		return "duplicate_beneficiary"
	case errors.Is(err, ErrBeneficiaryNotFound):
		return "beneficiary_not_found"
	case errors.Is(err, ErrAlreadyInherited):
		return "already_inherited"
	case errors.Is(err, ErrReentrantCall):
		return "reentrant"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrBalanceOverflow):
		return "balance_overflow"
	case IsTransferFailedError(err):
		return "transfer_failed"
	default:
		return "error"
	}
}
