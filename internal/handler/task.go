package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/task"
)

// TaskHandler serves both task namespaces.
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// HandleListDaily lists the daily tasks with completion flags.
// @Summary List daily tasks
// @Tags tasks
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} task.TaskView
// @Router /api/v1/tasks/daily [get]
func (h *TaskHandler) HandleListDaily(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerIDParam(r, w)
	if !ok {
		return
	}

	tasks, err := h.service.ListDaily(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "List daily tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// HandleListSpecial lists the one-time special tasks.
// @Summary List special tasks
// @Tags tasks
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} task.TaskView
// @Router /api/v1/tasks/special [get]
func (h *TaskHandler) HandleListSpecial(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPlayerIDParam(r, w)
	if !ok {
		return
	}

	tasks, err := h.service.ListSpecial(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "List special tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// ClaimTaskRequest identifies a task claim. Code carries the secret for
// video-code tasks and is ignored otherwise.
type ClaimTaskRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	TaskID   string `json:"task_id" validate:"required,max=64"`
	Code     string `json:"code" validate:"max=64"`
}

// HandleClaimDaily claims a daily task reward.
// @Summary Claim daily task
// @Description Grants the task reward once per day when its requirement is met.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ClaimTaskRequest true "Claim payload"
// @Success 200 {object} task.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks/daily/claim [post]
func (h *TaskHandler) HandleClaimDaily(w http.ResponseWriter, r *http.Request) {
	var req ClaimTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim daily task"); err != nil {
		return
	}

	result, err := h.service.ClaimDaily(r.Context(), req.PlayerID, req.TaskID, req.Code)
	if err != nil {
		respondServiceError(w, r, "Claim daily task", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// PurchaseTaskRequest identifies a star-gated special task purchase.
type PurchaseTaskRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	TaskID   string `json:"task_id" validate:"required,max=64"`
}

// HandlePurchaseSpecial purchases access to a star-gated special task.
// @Summary Purchase special task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body PurchaseTaskRequest true "Purchase payload"
// @Success 200 {object} task.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks/special/purchase [post]
func (h *TaskHandler) HandlePurchaseSpecial(w http.ResponseWriter, r *http.Request) {
	var req PurchaseTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Purchase special task"); err != nil {
		return
	}

	result, err := h.service.PurchaseSpecial(r.Context(), req.PlayerID, req.TaskID)
	if err != nil {
		respondServiceError(w, r, "Purchase special task", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleClaimSpecial claims a one-time special task reward.
// @Summary Claim special task
// @Description Grants the reward at most once. Star-gated tasks must be purchased first.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ClaimTaskRequest true "Claim payload"
// @Success 200 {object} task.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks/special/claim [post]
func (h *TaskHandler) HandleClaimSpecial(w http.ResponseWriter, r *http.Request) {
	var req ClaimTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim special task"); err != nil {
		return
	}

	result, err := h.service.ClaimSpecial(r.Context(), req.PlayerID, req.TaskID, req.Code)
	if err != nil {
		respondServiceError(w, r, "Claim special task", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
