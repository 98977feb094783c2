package guard

import (
	"github.com/onflow/inheritance-guard/model/vault"
)

// registry is the ordered set of beneficiary addresses. Entries are unique and
// the backing slice is kept dense: removal compacts with a swap-remove so no
// zero-value placeholder ever persists. Iteration order carries no meaning.
type registry struct {
	members []vault.Address
}

func newRegistry(members []vault.Address) (*registry, error) {
	if len(members) == 0 {
		return nil, ErrInvalidBeneficiaries
	}
	return restoredRegistry(members)
}

// restoredRegistry rebuilds a registry without the non-empty requirement.
// Claims consume registrations after inheritance, so a snapshot taken then
// may legitimately carry an empty set.
func restoredRegistry(members []vault.Address) (*registry, error) {
	r := &registry{members: make([]vault.Address, 0, len(members))}
	for _, member := range members {
		if err := r.add(member); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// indexOf returns the position of the given address, or false if it is not
// registered. The not-found signal is explicit: no valid index doubles as a
// sentinel.
func (r *registry) indexOf(member vault.Address) (int, bool) {
	for i, m := range r.members {
		if m == member {
			return i, true
		}
	}
	return 0, false
}

func (r *registry) contains(member vault.Address) bool {
	_, found := r.indexOf(member)
	return found
}

func (r *registry) size() int {
	return len(r.members)
}

func (r *registry) add(member vault.Address) error {
	if r.contains(member) {
		return ErrDuplicateBeneficiary
	}
	r.members = append(r.members, member)
	return nil
}

// remove deletes the given member with a swap-remove: the located entry is
// overwritten by the last entry and the slice shrinks by one, so the set stays
// gap-free.
func (r *registry) remove(member vault.Address) error {
	i, found := r.indexOf(member)
	if !found {
		return ErrBeneficiaryNotFound
	}
	last := len(r.members) - 1
	r.members[i] = r.members[last]
	r.members = r.members[:last]
	return nil
}

// all returns a copy of the member set.
func (r *registry) all() []vault.Address {
	members := make([]vault.Address, len(r.members))
	copy(members, r.members)
	return members
}
