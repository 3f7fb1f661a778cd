package handlers

import (
	"log"
	"net/http"
	"strconv"

	"hex-coverage-planner/internal/api/dto"
	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/hexgrid"
	"hex-coverage-planner/internal/ports"
)

// CellHandler exposes read-only coverage map endpoints.
type CellHandler struct {
	Cells   ports.CellSource
	HexSize float64
}

func (h *CellHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	cells, err := h.Cells.ListCells(r.Context())
	if err != nil {
		log.Printf("list cells failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCellsResponse{Cells: make([]dto.CellResponse, 0, len(cells))}
	for _, c := range cells {
		res.Cells = append(res.Cells, cellResponse(c))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Locate returns the cell whose hex contains the point (x, y).
func (h *CellHandler) Locate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	p := domain.Position{X: x, Y: y}
	if errX != nil || errY != nil || !p.Finite() {
		writeError(w, r, http.StatusBadRequest, "x and y must be finite numbers")
		return
	}

	cells, err := h.Cells.ListCells(r.Context())
	if err != nil {
		log.Printf("locate cell failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// The map can be reseeded at any time, so the index is built per request.
	index, err := hexgrid.NewIndex(cells, h.HexSize)
	if err != nil {
		writeServiceError(w, r, "locate cell", err)
		return
	}

	c, ok := index.Locate(p)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no cell at point")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocateResponse{Cell: cellResponse(c)})
}

func cellResponse(c domain.Cell) dto.CellResponse {
	return dto.CellResponse{
		CellID:   int(c.ID),
		X:        c.Position.X,
		Y:        c.Position.Y,
		Priority: c.Priority,
	}
}
