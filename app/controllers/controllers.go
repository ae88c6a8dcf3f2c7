// Package controllers exposes the portal's services over HTTP. Handlers
// decode JSON, delegate to a service, and reply through the pkg/response
// envelope; all domain decisions live in app/services.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
)

// respondError maps the application error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case apperr.KindNotFound:
		response.Error(w, http.StatusNotFound, err.Error())
	case apperr.KindBusiness, apperr.KindIntegrity:
		response.Error(w, http.StatusConflict, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("unhandled error",
			"path", r.URL.Path, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// uintParam parses a numeric chi URL parameter.
func uintParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
