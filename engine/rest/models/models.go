package models

import (
	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/model/vault"
)

// StateResponse is the JSON representation of the guard state.
type StateResponse struct {
	Owner         string   `json:"owner"`
	Deadline      int64    `json:"deadline"`
	Expired       bool     `json:"expired"`
	Inherited     bool     `json:"inherited"`
	Balance       uint64   `json:"balance"`
	Beneficiaries []string `json:"beneficiaries"`
}

// Build populates the response from the API state.
func (r *StateResponse) Build(state *access.State) {
	r.Owner = state.Owner.Hex()
	r.Deadline = state.Deadline
	r.Expired = state.Expired
	r.Inherited = state.Inherited
	r.Balance = state.Balance
	r.Beneficiaries = make([]string, 0, len(state.Beneficiaries))
	for _, b := range state.Beneficiaries {
		r.Beneficiaries = append(r.Beneficiaries, b.Hex())
	}
}

type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

type SendAssetRequest struct {
	Amount    uint64 `json:"amount"`
	Recipient string `json:"recipient"`
}

type BeneficiaryRequest struct {
	Beneficiary string `json:"beneficiary"`
}

type InteractRequest struct {
	Target  string `json:"target"`
	Payload []byte `json:"payload"`
}

type CreateAssetResponse struct {
	Asset uint64 `json:"asset"`
}

// ParseAddress decodes a hex encoded party address.
func ParseAddress(raw string) (vault.Address, bool) {
	addr := vault.HexToAddress(raw)
	if addr.IsZero() {
		return vault.ZeroAddress, false
	}
	return addr, true
}
