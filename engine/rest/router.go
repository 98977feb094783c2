package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/engine/rest/middleware"
)

type route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// NewRouter builds the v1 API router with the common middleware applied.
func NewRouter(api access.API, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	v1 := router.PathPrefix("/v1").Subrouter()

	v1.Use(middleware.LoggingMiddleware(logger))
	v1.Use(middleware.MetricsMiddleware())

	handler := NewHandler(logger, api)
	for _, r := range apiRoutes(handler) {
		v1.
			Methods(r.Method).
			Path(r.Pattern).
			Name(r.Name).
			Handler(r.HandlerFunc)
	}
	return router
}

func apiRoutes(h *Handler) []route {
	return []route{
		{
			Name:        "getState",
			Method:      http.MethodGet,
			Pattern:     "/vault",
			HandlerFunc: h.GetState,
		},
		{
			Name:        "deposit",
			Method:      http.MethodPost,
			Pattern:     "/vault/deposits",
			HandlerFunc: h.Deposit,
		},
		{
			Name:        "sendAsset",
			Method:      http.MethodPost,
			Pattern:     "/vault/transfers",
			HandlerFunc: h.SendAsset,
		},
		{
			Name:        "addBeneficiary",
			Method:      http.MethodPost,
			Pattern:     "/vault/beneficiaries",
			HandlerFunc: h.AddBeneficiary,
		},
		{
			Name:        "removeBeneficiary",
			Method:      http.MethodDelete,
			Pattern:     "/vault/beneficiaries",
			HandlerFunc: h.RemoveBeneficiary,
		},
		{
			Name:        "inherit",
			Method:      http.MethodPost,
			Pattern:     "/vault/inherit",
			HandlerFunc: h.Inherit,
		},
		{
			Name:        "withdrawInheritedFunds",
			Method:      http.MethodPost,
			Pattern:     "/vault/withdrawals",
			HandlerFunc: h.WithdrawInheritedFunds,
		},
		{
			Name:        "interact",
			Method:      http.MethodPost,
			Pattern:     "/vault/interactions",
			HandlerFunc: h.Interact,
		},
		{
			Name:        "createAsset",
			Method:      http.MethodPost,
			Pattern:     "/vault/assets",
			HandlerFunc: h.CreateAsset,
		},
	}
}
