package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/middleware"
	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/api/validators"
	"github.com/karimelbaz/photodesk-backend/internal/photos"
	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type branchFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

// PhotoUpload accepts a multipart image for a walk-in session and
// stages it as a pending photo.
func PhotoUpload(svc photos.Service, branches branchFinder, cfg config.StorageConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(cfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		staffID, err := staffIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefix, err := validators.ParseBarcodePrefixParam(r, "prefix")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo file is required"))
			return
		}
		defer file.Close()

		branchCode := ""
		if branches != nil {
			branch, err := branches.FindByID(r.Context(), branchID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch"))
				return
			}
			branchCode = branch.Code
		}

		dto, err := svc.Upload(r.Context(), photos.UploadInput{
			BarcodePrefix: prefix,
			Filename:      header.Filename,
			BranchCode:    branchCode,
			BranchID:      branchID,
			StaffID:       staffID,
			Body:          file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "photo uploaded", dto)
	}
}

// PhotoList returns the photos for a barcode prefix, optionally
// filtered by status.
func PhotoList(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		prefix, err := validators.ParseBarcodePrefixParam(r, "prefix")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.PhotoStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParsePhotoStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid photo status"))
				return
			}
			status = &parsed
		}

		rows, err := svc.ListByPrefix(r.Context(), prefix, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "photos listed", rows)
	}
}

type photoTagRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" validate:"required,min=1,dive,required"`
	UserID   uuid.UUID   `json:"user_id" validate:"required"`
}

// PhotoTag assigns staged photos to a registered customer.
func PhotoTag(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		var payload photoTagRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Tag(r.Context(), payload.PhotoIDs, payload.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "photos tagged", nil)
	}
}

// PhotoDelete removes a staged photo and its stored files.
func PhotoDelete(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "photoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "photo deleted", nil)
	}
}

func staffIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.StaffIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "staff context missing")
	}
	staffID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff id")
	}
	return staffID, nil
}
