package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/printrequests"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type printRequestItem struct {
	PhotoID  uuid.UUID `json:"photo_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type printRequestCreateRequest struct {
	Barcode       string             `json:"barcode" validate:"required,len=12,numeric"`
	PhoneNumber   string             `json:"phone_number" validate:"required,min=7,max=20"`
	BranchID      uuid.UUID          `json:"branch_id" validate:"required"`
	Items         []printRequestItem `json:"items" validate:"required,min=1,dive"`
	PackageID     *uuid.UUID         `json:"package_id,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
}

// PrintRequestCreate stages a purchase for the session, replacing any
// unpaid request the session already had.
func PrintRequestCreate(svc printrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "print request service unavailable"))
			return
		}

		var payload printRequestCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method := enums.PaymentMethodCash
		if raw := strings.TrimSpace(payload.PaymentMethod); raw != "" {
			parsed, err := enums.ParsePaymentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			method = parsed
		}

		items := make([]printrequests.RequestItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, printrequests.RequestItem{
				PhotoID:  item.PhotoID,
				Quantity: item.Quantity,
			})
		}

		request, err := svc.Create(r.Context(), printrequests.CreateInput{
			Barcode:       payload.Barcode,
			PhoneNumber:   strings.TrimSpace(payload.PhoneNumber),
			Items:         items,
			PackageID:     payload.PackageID,
			PaymentMethod: method,
			BranchID:      payload.BranchID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "print request created", request)
	}
}

// PrintRequestGet returns one print request with its photo lines.
func PrintRequestGet(svc printrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "print request service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "print request found", request)
	}
}

// PrintRequestList returns the print requests for a barcode prefix.
func PrintRequestList(svc printrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "print request service unavailable"))
			return
		}

		prefix, err := validators.ParseBarcodePrefixParam(r, "prefix")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListForPrefix(r.Context(), prefix)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "print requests listed", rows)
	}
}

type printRequestPayRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// PrintRequestMarkPaid records payment against a staged request.
func PrintRequestMarkPaid(svc printrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "print request service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload printRequestPayRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.PaymentMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		if err := svc.MarkPaid(r.Context(), id, method); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "print request paid", nil)
	}
}
