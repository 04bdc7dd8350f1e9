package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vbonduro/ecoleta/internal/domain"
	"github.com/vbonduro/ecoleta/internal/service"
)

const maxPointBodyBytes = 1 << 20

// pointFilter reads the listPoints query. city and uf filter whenever they
// are present; items filters only when non-empty.
func pointFilter(q url.Values) domain.PointFilter {
	var f domain.PointFilter
	if q.Has("city") {
		city := q.Get("city")
		f.City = &city
	}
	if q.Has("uf") {
		uf := q.Get("uf")
		f.Region = &uf
	}
	if raw := q.Get("items"); raw != "" {
		ids := domain.ParseItemIDs(raw)
		f.Items = &ids
	}
	return f
}

func (s *Server) handleListPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.discovery.ListPoints(r.Context(), pointFilter(r.URL.Query()))
	if err != nil {
		s.logger.Error("list points failed", "query", r.URL.RawQuery, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to list points")
		return
	}
	jsonResponse(w, http.StatusOK, points)
}

func (s *Server) handleGetPoint(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	detail, err := s.discovery.GetPoint(r.Context(), id)
	if errors.Is(err, service.ErrPointNotFound) {
		jsonError(w, http.StatusNotFound, "Point not found!")
		return
	}
	if err != nil {
		s.logger.Error("get point failed", "point_id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to get point")
		return
	}
	jsonResponse(w, http.StatusOK, detail)
}

func (s *Server) handleCreatePoint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPointBodyBytes)

	var req service.PointRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg, err := s.writer.Register(r.Context(), req)
	var missing *service.MissingFieldError
	if errors.As(err, &missing) {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", missing.Field))
		return
	}
	if err != nil {
		s.logger.Error("create point failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create point")
		return
	}
	jsonResponse(w, http.StatusCreated, reg)
}
