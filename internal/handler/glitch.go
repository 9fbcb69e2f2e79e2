package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/glitch"
)

// HandleGetPendingGlitches lists discovered codes not yet shown to the player.
// @Summary Pending glitch discoveries
// @Tags glitch
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} glitch.DiscoveryView
// @Router /api/v1/glitch/pending [get]
func HandleGetPendingGlitches(glitchService glitch.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		pending, err := glitchService.PendingDiscoveries(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "Pending glitches", err)
			return
		}

		respondJSON(w, http.StatusOK, pending)
	}
}

// MarkGlitchShownRequest lists the discovery notifications the client rendered.
type MarkGlitchShownRequest struct {
	PlayerID int64    `json:"player_id" validate:"required,gt=0"`
	Codes    []string `json:"codes" validate:"required,min=1,dive,max=32"`
}

// HandleMarkGlitchShown records that discovery notifications were rendered.
// @Summary Mark glitch discoveries shown
// @Description Persists the shown flag server-side so notifications survive device changes.
// @Tags glitch
// @Accept json
// @Produce json
// @Param request body MarkGlitchShownRequest true "Shown payload"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/glitch/shown [post]
func HandleMarkGlitchShown(glitchService glitch.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkGlitchShownRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mark glitch shown"); err != nil {
			return
		}

		if err := glitchService.MarkShown(r.Context(), req.PlayerID, req.Codes); err != nil {
			respondServiceError(w, r, "Mark glitch shown", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "recorded"})
	}
}

// SubmitGlitchCodeRequest carries a glitch code submission.
type SubmitGlitchCodeRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Code     string `json:"code" validate:"required,max=32"`
}

// HandleSubmitGlitchCode claims a discovered glitch code.
// @Summary Submit glitch code
// @Description Claims a discovered code and grants its reward. Unknown and already-claimed codes are rejected identically.
// @Tags glitch
// @Accept json
// @Produce json
// @Param request body SubmitGlitchCodeRequest true "Code payload"
// @Success 200 {object} glitch.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/glitch/submit [post]
func HandleSubmitGlitchCode(glitchService glitch.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitGlitchCodeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit glitch code"); err != nil {
			return
		}

		result, err := glitchService.SubmitCode(r.Context(), req.PlayerID, req.Code)
		if err != nil {
			respondServiceError(w, r, "Submit glitch code", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
