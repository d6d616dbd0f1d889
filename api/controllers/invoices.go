package controllers

import (
	"net/http"
	"strings"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/invoices"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type invoiceConfirmRequest struct {
	Barcode       string `json:"barcode" validate:"required,len=12,numeric"`
	InvoiceMethod string `json:"invoice_method" validate:"required"`
}

// InvoiceConfirm bills every ready-to-print photo for the barcode and
// flips them to printed.
func InvoiceConfirm(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		var payload invoiceConfirmRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseInvoiceMethod(strings.TrimSpace(payload.InvoiceMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice method"))
			return
		}

		invoice, err := svc.ConfirmPrint(r.Context(), invoices.ConfirmInput{
			Barcode:       payload.Barcode,
			InvoiceMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "invoice created", invoice)
	}
}

// InvoiceGet returns one invoice.
func InvoiceGet(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "invoice found", invoice)
	}
}

// InvoiceList returns the invoices for a barcode prefix.
func InvoiceList(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
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

		responses.WriteSuccess(w, "invoices listed", rows)
	}
}

// InvoiceCancel voids an active invoice.
func InvoiceCancel(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Cancel(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "invoice canceled", nil)
	}
}
