package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/selections"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type selectionItemRequest struct {
	PhotoID  uuid.UUID `json:"photo_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type selectionReplaceRequest struct {
	Barcode     string                 `json:"barcode" validate:"required,len=12,numeric"`
	PhoneNumber string                 `json:"phone_number" validate:"required,min=7,max=20"`
	Items       []selectionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SelectionReplace swaps the session's selection for the submitted one.
// Prior selection rows and their clones are dropped first, so the last
// submission wins.
func SelectionReplace(svc selections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "selection service unavailable"))
			return
		}

		var payload selectionReplaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]selections.SelectionItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, selections.SelectionItem{
				PhotoID:  item.PhotoID,
				Quantity: item.Quantity,
			})
		}

		result, err := svc.Replace(r.Context(), selections.ReplaceInput{
			Barcode:     payload.Barcode,
			PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
			Items:       items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "selection saved", result)
	}
}

// SelectionList returns the current selection rows for a session.
func SelectionList(svc selections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "selection service unavailable"))
			return
		}

		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prefix, err := validators.ParseBarcodePrefixParam(r, "prefix")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListForUser(r.Context(), userID, prefix)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "selections listed", rows)
	}
}
