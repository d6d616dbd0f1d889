package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/api/responses"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type packageLister interface {
	ListActiveForBranch(ctx context.Context, branchID uuid.UUID) ([]models.Package, error)
}

// PackageList returns the active print packages offered by the branch.
func PackageList(repo packageLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package repository unavailable"))
			return
		}

		branchID, err := branchIDFromRequest(r)
		if err != nil {
			// kiosk sessions carry no token; they pass the branch explicitly
			raw := r.URL.Query().Get("branch_id")
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			branchID, err = uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid branch id"))
				return
			}
		}

		rows, err := repo.ListActiveForBranch(r.Context(), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packages"))
			return
		}

		responses.WriteSuccess(w, "packages listed", rows)
	}
}
