package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/cell"
)

// CellHandler serves the guild (cell) endpoints.
type CellHandler struct {
	service cell.Service
}

// NewCellHandler creates a new CellHandler
func NewCellHandler(service cell.Service) *CellHandler {
	return &CellHandler{service: service}
}

// CreateCellRequest names the cell to found.
type CreateCellRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,min=3,max=50"`
}

// HandleCreate founds a new cell with the player as owner.
// @Summary Create cell
// @Tags cells
// @Accept json
// @Produce json
// @Param request body CreateCellRequest true "Creation payload"
// @Success 201 {object} domain.CellView
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cell/create [post]
func (h *CellHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create cell"); err != nil {
		return
	}

	view, err := h.service.Create(r.Context(), req.PlayerID, req.Name)
	if err != nil {
		respondServiceError(w, r, "Create cell", err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

// JoinCellRequest carries an invite code.
type JoinCellRequest struct {
	PlayerID   int64  `json:"player_id" validate:"required,gt=0"`
	InviteCode string `json:"invite_code" validate:"required,max=16"`
}

// HandleJoin joins a cell by invite code.
// @Summary Join cell
// @Tags cells
// @Accept json
// @Produce json
// @Param request body JoinCellRequest true "Join payload"
// @Success 200 {object} domain.CellView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cell/join [post]
func (h *CellHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinCellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join cell"); err != nil {
		return
	}

	view, err := h.service.Join(r.Context(), req.PlayerID, req.InviteCode)
	if err != nil {
		respondServiceError(w, r, "Join cell", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// LeaveCellRequest identifies the leaving player.
type LeaveCellRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

// HandleLeave leaves the player's current cell.
// @Summary Leave cell
// @Tags cells
// @Accept json
// @Produce json
// @Param request body LeaveCellRequest true "Leave payload"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cell/leave [post]
func (h *CellHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	var req LeaveCellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Leave cell"); err != nil {
		return
	}

	if err := h.service.Leave(r.Context(), req.PlayerID); err != nil {
		respondServiceError(w, r, "Leave cell", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "left"})
}

// HandleView returns the player's cell with derived profit values.
// @Summary View cell
// @Tags cells
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {object} domain.CellView
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cell [get]
func (h *CellHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerIDParam(r, w)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "View cell", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HireInformantRequest names the informant to hire.
type HireInformantRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=50"`
}

// HandleHireInformant hires an informant for the player's cell.
// @Summary Hire informant
// @Description Deducts the hire cost from the player and adds an informant, raising the cell's profit multiplier.
// @Tags cells
// @Accept json
// @Produce json
// @Param request body HireInformantRequest true "Hire payload"
// @Success 200 {object} domain.CellView
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cell/informant [post]
func (h *CellHandler) HandleHireInformant(w http.ResponseWriter, r *http.Request) {
	var req HireInformantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Hire informant"); err != nil {
		return
	}

	view, err := h.service.HireInformant(r.Context(), req.PlayerID, req.Name)
	if err != nil {
		respondServiceError(w, r, "Hire informant", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
