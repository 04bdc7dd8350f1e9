package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/ecoleta/internal/service"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.discovery.ListItems(r.Context())
	if err != nil {
		s.logger.Error("list items failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	item, err := s.discovery.GetItem(r.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found!")
		return
	}
	if err != nil {
		s.logger.Error("get item failed", "item_id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}
