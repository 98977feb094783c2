package unittest

import (
	"crypto/rand"
	"time"

	"github.com/onflow/inheritance-guard/model/vault"
)

// AddressFixture returns a random party address.
func AddressFixture() vault.Address {
	var b [vault.AddressLength]byte
	_, _ = rand.Read(b[:])
	return vault.BytesToAddress(b[:])
}

// AddressFixtures returns n distinct random party addresses.
func AddressFixtures(n int) []vault.Address {
	addresses := make([]vault.Address, 0, n)
	seen := make(map[vault.Address]struct{}, n)
	for len(addresses) < n {
		addr := AddressFixture()
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}
	return addresses
}

// SnapshotFixture returns a valid guard snapshot with the given beneficiaries.
func SnapshotFixture(beneficiaries ...vault.Address) *vault.Snapshot {
	if len(beneficiaries) == 0 {
		beneficiaries = AddressFixtures(2)
	}
	return &vault.Snapshot{
		Owner:         AddressFixture(),
		Window:        90 * 24 * time.Hour,
		Deadline:      time.Unix(1_765_000_000, 0).UTC(),
		Beneficiaries: beneficiaries,
		Inherited:     false,
		Balance:       1_000_000,
	}
}

// FakeClock is a manually advanced clock for deadline tests.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
