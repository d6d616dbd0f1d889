package controllers

import (
	"net/http"
	"strings"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/staff"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// StaffLogin authenticates a staff account and issues an access token.
func StaffLogin(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), staff.LoginRequest{
			Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "login successful", resp)
	}
}

// StaffResetPassword issues a temporary password for the target staff
// account. Branch managers use this for counter staff lockouts.
func StaffResetPassword(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		staffID, err := validators.ParseUUIDParam(r, "staffId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tempPassword, err := svc.ResetPassword(r.Context(), staffID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "password reset", map[string]string{
			"temporary_password": tempPassword,
		})
	}
}
