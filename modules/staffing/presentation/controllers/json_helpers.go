package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/httpapi"
	"github.com/fonction-publique/sigrh/pkg/serrors"
	"github.com/fonction-publique/sigrh/pkg/shared"
)

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// parsePagination reads 1-based page/limit query parameters, clamped to the
// configured maximum page size.
func parsePagination(r *http.Request) (page, limit, offset int) {
	conf := configuration.Use()
	page = 1
	limit = conf.PageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > conf.MaxPageSize {
		limit = conf.MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInvalidBody):
		status = http.StatusBadRequest
	case errors.Is(err, composables.ErrNoActor):
		status = http.StatusUnauthorized
	case errors.Is(err, organisme.ErrNotFound),
		errors.Is(err, poste.ErrNotFound),
		errors.Is(err, fonctionnaire.ErrNotFound),
		errors.Is(err, affectation.ErrNotFound),
		errors.Is(err, affectation.ErrNotValidee):
		status = http.StatusNotFound
	case errors.Is(err, organisme.ErrCodeTaken),
		errors.Is(err, poste.ErrCodeTaken),
		errors.Is(err, fonctionnaire.ErrMatriculeTaken),
		errors.Is(err, poste.ErrOccupied),
		errors.Is(err, affectation.ErrOverAllocated):
		status = http.StatusConflict
	case errors.Is(err, affectation.ErrPosteInactif),
		errors.Is(err, affectation.ErrOrganismeInactif),
		errors.Is(err, affectation.ErrFonctionnaireSuspendu):
		status = http.StatusUnprocessableEntity
	}

	code := "INTERNAL_SERVER_ERROR"
	message := "internal server error"
	var base *serrors.Base
	if errors.As(err, &base) {
		code = base.Code
		message = base.Message
		if code == "AUTHZ_FORBIDDEN" {
			status = http.StatusForbidden
		}
	}

	if status == http.StatusInternalServerError {
		composables.UseLogger(r.Context()).WithError(err).Error("staffing request failed")
	}
	_ = httpapi.WriteError(w, status, code, message, nil)
}

func errorCode(err error) string {
	var base *serrors.Base
	if errors.As(err, &base) {
		return base.Code
	}
	return "INTERNAL_SERVER_ERROR"
}

func respondValidationErrors(w http.ResponseWriter, fields map[string]string) {
	_ = httpapi.WriteJSON(w, http.StatusBadRequest, map[string]any{
		"code":   "VALIDATION_FAILED",
		"errors": fields,
	})
}
