package module

import "time"

// GuardMetrics encapsulates the metrics collectors for the inheritance guard.
type GuardMetrics interface {
	// OperationFinished tracks a completed guard operation and its outcome
	// ("ok" or the failure class).
	OperationFinished(operation string, outcome string)

	// ActivityReset tracks a reset of the inactivity deadline.
	ActivityReset()

	// InheritanceClaimed tracks a successful inheritance transfer, labelled by
	// mode ("sole" for an owner reassignment, "shared" for the multi
	// beneficiary handover).
	InheritanceClaimed(mode string)

	// ReentrantCallRejected tracks a dispatch rejected by the reentrancy
	// guard.
	ReentrantCallRejected()

	// DispatchDuration tracks the time spent inside a guarded dispatch,
	// including the external transfer call.
	DispatchDuration(duration time.Duration)

	// RegistrySize records the current number of registered beneficiaries.
	RegistrySize(size uint)

	// VaultBalance records the current vault balance in asset units.
	VaultBalance(balance uint64)
}
