package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
)

const (
	BarcodeLength       = 12
	BarcodePrefixLength = 8
)

func allDigits(raw string) bool {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(raw) > 0
}

func ParseBarcodeParam(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	if len(raw) != BarcodeLength || !allDigits(raw) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "barcode must be 12 digits").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

func ParseBarcodePrefixParam(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	if len(raw) != BarcodePrefixLength || !allDigits(raw) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "barcode prefix must be 8 digits").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}
