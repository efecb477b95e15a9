package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/wire"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200

	notFoundDetail = "Conteúdo não encontrado"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

// ConteudosHandler serves the /conteudos resource over a catalog.Store
type ConteudosHandler struct {
	store catalog.Store
}

// NewConteudosHandler creates a new handler
func NewConteudosHandler(store catalog.Store) *ConteudosHandler {
	return &ConteudosHandler{store: store}
}

// Routes returns the routes for /conteudos
func (h *ConteudosHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListConteudos)
	r.Post("/", h.CreateConteudo)
	r.Get("/{id}", h.GetConteudo)
	r.Put("/{id}", h.UpdateConteudo)
	r.Delete("/{id}", h.DeleteConteudo)

	return r
}

// ListConteudos handles GET /conteudos?canal=&tipo=&q=&limit=&offset=
func (h *ConteudosHandler) ListConteudos(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	projects, err := h.store.Query(r.Context(), filter)
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}

	render.JSON(w, r, wire.ToAPIList(projects))
}

// CreateConteudo handles POST /conteudos
func (h *ConteudosHandler) CreateConteudo(w http.ResponseWriter, r *http.Request) {
	var in wire.ConteudoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}

	project, err := h.store.Create(r.Context(), in.Draft())
	if err != nil {
		h.storeError(w, r, "create", err)
		return
	}

	slog.Info("Conteudo created", "id", project.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, wire.ToAPI(*project))
}

// GetConteudo handles GET /conteudos/{id}
func (h *ConteudosHandler) GetConteudo(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get", err)
		return
	}

	render.JSON(w, r, wire.ToAPI(*project))
}

// UpdateConteudo handles PUT /conteudos/{id}
func (h *ConteudosHandler) UpdateConteudo(w http.ResponseWriter, r *http.Request) {
	var in wire.ConteudoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}

	project, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), in.Draft())
	if err != nil {
		h.storeError(w, r, "update", err)
		return
	}

	render.JSON(w, r, wire.ToAPI(*project))
}

// DeleteConteudo handles DELETE /conteudos/{id}
func (h *ConteudosHandler) DeleteConteudo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Remove(r.Context(), id); err != nil {
		h.storeError(w, r, "delete", err)
		return
	}

	slog.Info("Conteudo deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ConteudosHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusUnprocessableEntity, ve.Error(), ve.Field)
	case errors.Is(err, catalog.ErrProjectNotFound):
		writeError(w, r, http.StatusNotFound, notFoundDetail, "")
	default:
		slog.Error("Failed to "+op+" conteudo", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error(), "")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail, field string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Detail: detail, Field: field})
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Channel:    catalog.Channel(q.Get("canal")),
		Type:       catalog.ContentType(q.Get("tipo")),
		SearchText: q.Get("q"),
		Limit:      DefaultPageSize,
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxPageSize {
			return catalog.Filter{}, errors.New("limit must be an integer between 1 and " + strconv.Itoa(MaxPageSize))
		}
		filter.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return catalog.Filter{}, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}
