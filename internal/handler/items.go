package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/model"
	"github.com/Amreshcodee/itemhub/internal/serverstore"
)

// ItemHandler handles REST API requests for catalog items.
type ItemHandler struct {
	store  serverstore.ItemStore
	logger *zap.Logger
}

// NewItemHandler creates a new ItemHandler instance.
func NewItemHandler(s serverstore.ItemStore, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		store:  s,
		logger: logger,
	}
}

// RegisterRoutes registers the item routes with the router. The mutate
// middleware wraps create, update and delete; listing stays public.
func (h *ItemHandler) RegisterRoutes(router *mux.Router, mutate func(http.Handler) http.Handler) {
	router.HandleFunc("/api/items/", h.ListItems).Methods(http.MethodGet)
	router.Handle("/api/items/", mutate(http.HandlerFunc(h.CreateItem))).Methods(http.MethodPost)
	router.HandleFunc("/api/items/{id}/", h.GetItem).Methods(http.MethodGet)
	router.Handle("/api/items/{id}/", mutate(http.HandlerFunc(h.UpdateItem))).Methods(http.MethodPut)
	router.Handle("/api/items/{id}/", mutate(http.HandlerFunc(h.DeleteItem))).Methods(http.MethodDelete)
}

// ListItems handles GET /api/items/ requests. The optional search query
// parameter filters by case-insensitive substring over name, description
// and category.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	search := r.URL.Query().Get("search")

	items, err := h.store.List(ctx, search)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, items)
}

// GetItem handles GET /api/items/{id}/ requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	item, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "get item")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, item)
}

// CreateItem handles POST /api/items/ requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input model.Item
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Create(ctx, &input)
	if err != nil {
		h.handleStoreError(w, err, "create item")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/{id}/ requests.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var input model.Item
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Update(ctx, id, &input)
	if err != nil {
		h.handleStoreError(w, err, "update item")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}/ requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(ctx, id); err != nil {
		h.handleStoreError(w, err, "delete item")
		return
	}

	writeJSON(w, h.logger, http.StatusNoContent, nil)
}

// handleStoreError maps store errors to HTTP responses.
func (h *ItemHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, serverstore.ErrNotFound):
		writeError(w, h.logger, http.StatusNotFound, "item not found")
	case errors.Is(err, serverstore.ErrInvalidID):
		writeError(w, h.logger, http.StatusBadRequest, "invalid item ID")
	default:
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
	}
}
