package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

func PathString(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "path parameter is required").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

func PathInt64(r *http.Request, key string) (int64, error) {
	raw, err := PathString(r, key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
