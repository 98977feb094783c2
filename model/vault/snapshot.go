package vault

import "time"

// Snapshot is the durable portion of the guard state. The reentrancy flag is
// deliberately absent: it is transient and must never survive a call, let alone
// a restart.
type Snapshot struct {
	Owner         Address       `cbor:"1,keyasint"`
	Window        time.Duration `cbor:"2,keyasint"`
	Deadline      time.Time     `cbor:"3,keyasint"`
	Beneficiaries []Address     `cbor:"4,keyasint"`
	Inherited     bool          `cbor:"5,keyasint"`
	Balance       uint64        `cbor:"6,keyasint"`
}
