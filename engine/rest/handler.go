package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/engine/rest/models"
	"github.com/onflow/inheritance-guard/guard"
	"github.com/onflow/inheritance-guard/model/vault"
)

// callerHeader carries the caller identity, authenticated by the enclosing
// runtime before the request reaches this engine.
const callerHeader = "X-Caller-Address"

// Handler exposes the guard API over HTTP.
type Handler struct {
	log zerolog.Logger
	api access.API
}

func NewHandler(log zerolog.Logger, api access.API) *Handler {
	return &Handler{
		log: log.With().Str("component", "rest_handler").Logger(),
		api: api,
	}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.api.GetState(r.Context())
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req models.DepositRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.api.Deposit(r.Context(), req.Amount)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) SendAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req models.SendAssetRequest
	if !h.decode(w, r, &req) {
		return
	}
	recipient, ok := models.ParseAddress(req.Recipient)
	if !ok {
		h.errorResponse(w, models.NewBadRequestError(errors.New("invalid recipient address")))
		return
	}
	state, err := h.api.SendAsset(r.Context(), caller, req.Amount, recipient)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) AddBeneficiary(w http.ResponseWriter, r *http.Request) {
	h.editBeneficiary(w, r, h.api.AddBeneficiary)
}

func (h *Handler) RemoveBeneficiary(w http.ResponseWriter, r *http.Request) {
	h.editBeneficiary(w, r, h.api.RemoveBeneficiary)
}

func (h *Handler) editBeneficiary(
	w http.ResponseWriter,
	r *http.Request,
	edit func(ctx context.Context, caller, beneficiary vault.Address) (*access.State, error),
) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req models.BeneficiaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	beneficiary, ok := models.ParseAddress(req.Beneficiary)
	if !ok {
		h.errorResponse(w, models.NewBadRequestError(errors.New("invalid beneficiary address")))
		return
	}
	state, err := edit(r.Context(), caller, beneficiary)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) Inherit(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	state, err := h.api.Inherit(r.Context(), caller)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) WithdrawInheritedFunds(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	state, err := h.api.WithdrawInheritedFunds(r.Context(), caller)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) Interact(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req models.InteractRequest
	if !h.decode(w, r, &req) {
		return
	}
	target, ok := models.ParseAddress(req.Target)
	if !ok {
		h.errorResponse(w, models.NewBadRequestError(errors.New("invalid target address")))
		return
	}
	state, err := h.api.Interact(r.Context(), caller, target, req.Payload)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.stateResponse(w, state)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	asset, err := h.api.CreateAsset(r.Context(), caller)
	if err != nil {
		h.errorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, models.CreateAssetResponse{Asset: asset})
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (vault.Address, bool) {
	raw := r.Header.Get(callerHeader)
	if raw == "" {
		h.errorResponse(w, models.NewBadRequestError(errors.New("missing caller address header")))
		return vault.ZeroAddress, false
	}
	caller, ok := models.ParseAddress(raw)
	if !ok {
		h.errorResponse(w, models.NewBadRequestError(errors.New("invalid caller address")))
		return vault.ZeroAddress, false
	}
	return caller, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(into)
	if err != nil {
		h.errorResponse(w, models.NewBadRequestError(err))
		return false
	}
	return true
}

func (h *Handler) stateResponse(w http.ResponseWriter, state *access.State) {
	var response models.StateResponse
	response.Build(state)
	h.jsonResponse(w, http.StatusOK, response)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.log.Error().Err(err).Msg("could not write response")
	}
}

// errorResponse maps guard errors onto HTTP statuses and writes the error
// body.
func (h *Handler) errorResponse(w http.ResponseWriter, err error) {
	statusErr := statusError(err)
	h.jsonResponse(w, statusErr.Status(), map[string]string{
		"code":    http.StatusText(statusErr.Status()),
		"message": statusErr.UserMessage(),
	})
}

func statusError(err error) models.StatusError {
	var statusErr models.StatusError
	if errors.As(err, &statusErr) {
		return statusErr
	}

	switch {
	case errors.Is(err, guard.ErrNotOwner),
		errors.Is(err, guard.ErrNotBeneficiary):
		return models.NewForbiddenError(err)
	case errors.Is(err, guard.ErrBeneficiaryNotFound):
		return models.NewNotFoundError(err.Error(), err)
	case errors.Is(err, guard.ErrInactivityPeriodNotLongEnough),
		errors.Is(err, guard.ErrAlreadyInherited),
		errors.Is(err, guard.ErrDuplicateBeneficiary),
		errors.Is(err, guard.ErrInvalidBeneficiaries),
		errors.Is(err, guard.ErrInsufficientBalance),
		errors.Is(err, guard.ErrBalanceOverflow),
		errors.Is(err, guard.ErrReentrantCall):
		return models.NewConflictError(err)
	case guard.IsTransferFailedError(err):
		return models.NewRestError(http.StatusBadGateway, err.Error(), err)
	default:
		return models.NewRestError(http.StatusInternalServerError, "internal error", err)
	}
}
