package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fonction-publique/sigrh/modules/audit/domain/entities/auditentry"
	"github.com/fonction-publique/sigrh/modules/audit/services"
	"github.com/fonction-publique/sigrh/pkg/application"
	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/httpapi"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

type entryViewModel struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Operation string `json:"operation"`
	EntityRef string `json:"entity_ref"`
	Before    any    `json:"before,omitempty"`
	After     any    `json:"after,omitempty"`
	CreatedAt string `json:"created_at"`
}

type AuditAPIController struct {
	service  *services.AuditService
	basePath string
}

func NewAuditAPIController(app application.Application) application.Controller {
	return &AuditAPIController{
		service:  app.Service(services.AuditService{}).(*services.AuditService),
		basePath: "/audit/api",
	}
}

func (c *AuditAPIController) Key() string {
	return c.basePath
}

func (c *AuditAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/entries", c.listEntries).Methods(http.MethodGet)
}

func (c *AuditAPIController) listEntries(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	page := 1
	limit := conf.PageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > conf.MaxPageSize {
		limit = conf.MaxPageSize
	}

	params := &auditentry.FindParams{
		Actor:     r.URL.Query().Get("actor"),
		Operation: r.URL.Query().Get("operation"),
		EntityRef: r.URL.Query().Get("entity_ref"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	entries, total, err := c.service.List(r.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
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
		if errors.Is(err, composables.ErrNoActor) {
			status = http.StatusUnauthorized
			code = "UNAUTHORIZED"
			message = "missing identity headers"
		}
		if status == http.StatusInternalServerError {
			composables.UseLogger(r.Context()).WithError(err).Error("audit request failed")
		}
		_ = httpapi.WriteError(w, status, code, message, nil)
		return
	}

	data := make([]entryViewModel, 0, len(entries))
	for _, e := range entries {
		vm := entryViewModel{
			ID:        e.ID().String(),
			Actor:     e.Actor(),
			Operation: e.Operation(),
			EntityRef: e.EntityRef(),
			CreatedAt: e.CreatedAt().Format(time.RFC3339),
		}
		if len(e.Before()) > 0 {
			vm.Before = e.Before()
		}
		if len(e.After()) > 0 {
			vm.After = e.After()
		}
		data = append(data, vm)
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
