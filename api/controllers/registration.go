package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/middleware"
	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/registry"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type registerUserRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
}

// RegisterUser creates a walk-in customer with a freshly generated barcode.
func RegisterUser(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload registerUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), strings.TrimSpace(payload.PhoneNumber), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "user registered", user)
	}
}

// UserByBarcode resolves a customer from a scanned barcode and stamps
// the visit. Unknown but well-formed codes register the customer at
// the scanning staff's branch.
func UserByBarcode(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		barcode, err := validators.ParseBarcodeParam(r, "barcode")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetByBarcode(r.Context(), barcode, branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "user found", user)
	}
}

type resolveSessionRequest struct {
	Barcode     string `json:"barcode" validate:"required,len=12,numeric"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
}

// ResolveSession authenticates a kiosk session from barcode + phone.
func ResolveSession(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		var payload resolveSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefix := payload.Barcode[:validators.BarcodePrefixLength]
		user, err := svc.ResolveSession(r.Context(), prefix, strings.TrimSpace(payload.PhoneNumber))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "session resolved", user)
	}
}

func branchIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.BranchIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "branch context missing")
	}
	branchID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid branch id")
	}
	return branchID, nil
}
