package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/orders"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type orderCreateRequest struct {
	Barcode     string     `json:"barcode" validate:"required,len=12,numeric"`
	PhoneNumber string     `json:"phone_number" validate:"required,min=7,max=20"`
	BranchID    uuid.UUID  `json:"branch_id" validate:"required"`
	Origin      string     `json:"origin" validate:"required"`
	SendType    string     `json:"send_type" validate:"required"`
	ShiftID     *uuid.UUID `json:"shift_id,omitempty"`
	ShiftName   *string    `json:"shift_name,omitempty"`
}

// OrderCreate opens an order from the session's current selection.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload orderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		origin, err := enums.ParseOrderOrigin(strings.TrimSpace(payload.Origin))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order origin"))
			return
		}
		sendType, err := enums.ParseOrderSendType(strings.TrimSpace(payload.SendType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid send type"))
			return
		}

		order, err := svc.Create(r.Context(), orders.CreateInput{
			Barcode:     payload.Barcode,
			PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
			BranchID:    payload.BranchID,
			Origin:      origin,
			SendType:    sendType,
			ShiftID:     payload.ShiftID,
			ShiftName:   payload.ShiftName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "order created", order)
	}
}

type orderCompleteRequest struct {
	EmployeeName string `json:"employee_name" validate:"required,min=1"`
	ShiftName    string `json:"shift_name,omitempty"`
}

// OrderComplete closes an order and queues its payroll sync job.
func OrderComplete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderCompleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Complete(r.Context(), orders.CompleteInput{
			OrderID:      id,
			EmployeeName: strings.TrimSpace(payload.EmployeeName),
			ShiftName:    strings.TrimSpace(payload.ShiftName),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order completed", order)
	}
}

// OrderGet returns one order with its items.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order found", order)
	}
}

// OrderList returns recent orders for the caller's branch.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListForBranch(r.Context(), branchID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "orders listed", rows)
	}
}
