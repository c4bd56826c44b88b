package controllers

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/presentation/mappers"
	"github.com/fonction-publique/sigrh/modules/staffing/presentation/viewmodels"
	"github.com/fonction-publique/sigrh/modules/staffing/services"
	"github.com/fonction-publique/sigrh/pkg/application"
	"github.com/fonction-publique/sigrh/pkg/httpapi"
	"github.com/fonction-publique/sigrh/pkg/middleware"
	"github.com/fonction-publique/sigrh/pkg/shared"
)

type StaffingAPIController struct {
	app            application.Application
	organismes     *services.OrganismeService
	postes         *services.PosteService
	fonctionnaires *services.FonctionnaireService
	affectations   *services.AffectationService
	vacancies      *services.VacancyService
	propositions   *services.PropositionService
	basePath       string
}

func NewStaffingAPIController(app application.Application) application.Controller {
	return &StaffingAPIController{
		app:            app,
		organismes:     app.Service(services.OrganismeService{}).(*services.OrganismeService),
		postes:         app.Service(services.PosteService{}).(*services.PosteService),
		fonctionnaires: app.Service(services.FonctionnaireService{}).(*services.FonctionnaireService),
		affectations:   app.Service(services.AffectationService{}).(*services.AffectationService),
		vacancies:      app.Service(services.VacancyService{}).(*services.VacancyService),
		propositions:   app.Service(services.PropositionService{}).(*services.PropositionService),
		basePath:       "/staffing/api",
	}
}

func (c *StaffingAPIController) Key() string {
	return c.basePath
}

func (c *StaffingAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithTransaction())

	router.HandleFunc("/organismes", c.listOrganismes).Methods(http.MethodGet)
	router.HandleFunc("/organismes", c.createOrganisme).Methods(http.MethodPost)
	router.HandleFunc("/organismes/{code}/actif", c.toggleOrganisme).Methods(http.MethodPost)

	router.HandleFunc("/postes", c.listPostes).Methods(http.MethodGet)
	router.HandleFunc("/postes", c.createPoste).Methods(http.MethodPost)
	router.HandleFunc("/postes/{code}/actif", c.togglePoste).Methods(http.MethodPost)
	router.HandleFunc("/postes-vacants", c.listVacants).Methods(http.MethodGet)

	router.HandleFunc("/fonctionnaires", c.listFonctionnaires).Methods(http.MethodGet)
	router.HandleFunc("/fonctionnaires", c.createFonctionnaire).Methods(http.MethodPost)
	router.HandleFunc("/fonctionnaires/{matricule}/propositions", c.listPropositions).Methods(http.MethodGet)

	router.HandleFunc("/affectations", c.listAffectations).Methods(http.MethodGet)
	router.HandleFunc("/affectations", c.proposeAffectation).Methods(http.MethodPost)
	router.HandleFunc("/affectations/{id}/terminer", c.terminateAffectation).Methods(http.MethodPost)
	router.HandleFunc("/comptes-actifs", c.listComptesActifs).Methods(http.MethodGet)
}

func (c *StaffingAPIController) listOrganismes(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &organisme.FindParams{
		Type:   organisme.Type(r.URL.Query().Get("type")),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := r.URL.Query().Get("actif"); v != "" {
		actif := v == "true"
		params.Actif = &actif
	}

	items, total, err := c.organismes.GetPaginated(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.OrganismeToViewModel))
}

func (c *StaffingAPIController) createOrganisme(w http.ResponseWriter, r *http.Request) {
	dto := &organisme.CreateDTO{}
	if err := decodeJSON(r, dto); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	if fields, ok := dto.Ok(r.Context()); !ok {
		respondValidationErrors(w, fields)
		return
	}
	created, err := c.organismes.Create(r.Context(), dto.ToEntity())
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.OrganismeToViewModel(created))
}

func (c *StaffingAPIController) toggleOrganisme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Actif bool `json:"actif"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	code := mux.Vars(r)["code"]
	if err := c.organismes.SetActive(r.Context(), code, body.Actif); err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"code": code, "actif": body.Actif})
}

func (c *StaffingAPIController) listPostes(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &poste.FindParams{
		OrganismeCode: r.URL.Query().Get("organisme"),
		Search:        r.URL.Query().Get("search"),
		Limit:         limit,
		Offset:        offset,
	}
	if v := r.URL.Query().Get("niveau"); v != "" {
		params.Niveau = shared.ParseInt(v)
	}
	if v := r.URL.Query().Get("actif"); v != "" {
		actif := v == "true"
		params.Actif = &actif
	}

	items, total, err := c.postes.GetPaginated(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.PosteToViewModel))
}

func (c *StaffingAPIController) createPoste(w http.ResponseWriter, r *http.Request) {
	dto := &poste.CreateDTO{}
	if err := decodeJSON(r, dto); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	if fields, ok := dto.Ok(r.Context()); !ok {
		respondValidationErrors(w, fields)
		return
	}
	created, err := c.postes.Create(r.Context(), dto.ToEntity())
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.PosteToViewModel(created))
}

func (c *StaffingAPIController) togglePoste(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Actif bool `json:"actif"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	code := mux.Vars(r)["code"]
	if err := c.postes.SetActive(r.Context(), code, body.Actif); err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"code": code, "actif": body.Actif})
}

func (c *StaffingAPIController) listVacants(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &poste.VacantParams{
		OrganismeCode: r.URL.Query().Get("organisme"),
		Search:        r.URL.Query().Get("search"),
		Limit:         limit,
		Offset:        offset,
	}
	if v := r.URL.Query().Get("niveau"); v != "" {
		params.Niveau = shared.ParseInt(v)
	}
	if v := r.URL.Query().Get("salaire_min"); v != "" {
		min, err := decimal.NewFromString(v)
		if err == nil {
			params.SalaireMin = &min
		}
	}

	items, total, err := c.vacancies.GetVacant(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.VacantPosteToViewModel))
}

func (c *StaffingAPIController) listFonctionnaires(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &fonctionnaire.FindParams{
		Statut: fonctionnaire.Statut(r.URL.Query().Get("statut")),
		Grade:  r.URL.Query().Get("grade"),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}

	items, total, err := c.fonctionnaires.GetPaginated(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.FonctionnaireToViewModel))
}

func (c *StaffingAPIController) createFonctionnaire(w http.ResponseWriter, r *http.Request) {
	dto := &fonctionnaire.CreateDTO{}
	if err := decodeJSON(r, dto); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	if fields, ok := dto.Ok(r.Context()); !ok {
		respondValidationErrors(w, fields)
		return
	}
	created, err := c.fonctionnaires.Create(r.Context(), dto.ToEntity())
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.FonctionnaireToViewModel(created))
}

func (c *StaffingAPIController) listPropositions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	matricule := mux.Vars(r)["matricule"]
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit = shared.ParseInt(v)
	}

	ranked, err := c.propositions.Rank(r.Context(), matricule, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	propositionDuration.Observe(time.Since(start).Seconds())

	out := make([]viewmodels.Proposition, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, mappers.PropositionToViewModel(p))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"matricule":    matricule,
		"propositions": out,
	})
}

func (c *StaffingAPIController) listAffectations(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &affectation.FindParams{
		PosteCode: r.URL.Query().Get("poste"),
		Matricule: r.URL.Query().Get("matricule"),
		Statut:    affectation.Statut(r.URL.Query().Get("statut")),
		Limit:     limit,
		Offset:    offset,
	}

	items, total, err := c.affectations.GetPaginated(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.AffectationToViewModel))
}

func (c *StaffingAPIController) proposeAffectation(w http.ResponseWriter, r *http.Request) {
	dto := &affectation.ProposeDTO{}
	if err := decodeJSON(r, dto); err != nil {
		respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
		return
	}
	if fields, ok := dto.Ok(r.Context()); !ok {
		respondValidationErrors(w, fields)
		return
	}

	created, err := c.affectations.Propose(r.Context(), dto)
	if err != nil {
		affectationsRejeteesTotal.WithLabelValues(errorCode(err)).Inc()
		respondError(w, r, err)
		return
	}
	affectationsValideesTotal.Inc()
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.AffectationToViewModel(created))
}

func (c *StaffingAPIController) terminateAffectation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, affectation.ErrNotFound)
		return
	}

	dto := &affectation.TerminateDTO{}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, dto); err != nil {
			respondError(w, r, errors.Wrap(shared.ErrInvalidBody, err.Error()))
			return
		}
	}
	if fields, ok := dto.Ok(r.Context()); !ok {
		respondValidationErrors(w, fields)
		return
	}

	terminated, err := c.affectations.Terminate(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err)
		return
	}
	affectationsTermineesTotal.Inc()
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AffectationToViewModel(terminated))
}

func (c *StaffingAPIController) listComptesActifs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	params := &affectation.ComptesActifsParams{
		OrganismeCode: r.URL.Query().Get("organisme"),
		Search:        r.URL.Query().Get("search"),
		Limit:         limit,
		Offset:        offset,
	}

	items, total, err := c.affectations.GetComptesActifs(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paginated(items, total, page, limit, mappers.CompteActifToViewModel))
}

func paginated[E any, V any](items []E, total int64, page, limit int, toVM func(E) V) viewmodels.PaginatedResponse[V] {
	data := make([]V, 0, len(items))
	for _, item := range items {
		data = append(data, toVM(item))
	}
	return viewmodels.PaginatedResponse[V]{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
