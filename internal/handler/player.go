package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/player"
)

// LoginRequest represents the login/registration request from the Mini App.
type LoginRequest struct {
	PlayerID   int64  `json:"player_id" validate:"required,gt=0"`
	Username   string `json:"username" validate:"max=100"`
	Locale     string `json:"locale" validate:"max=16"`
	ReferrerID int64  `json:"referrer_id" validate:"gte=0"`
}

// HandleLogin handles player login with get-or-create semantics.
// @Summary Log a player in
// @Description Loads the player state, creating the account on first contact. A referral bonus is credited to the referrer exactly once, at account creation.
// @Tags player
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} player.StateView
// @Success 201 {object} player.StateView
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/player/login [post]
func HandleLogin(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		state, err := playerService.Login(r.Context(), player.LoginInput{
			PlayerID:   req.PlayerID,
			Username:   req.Username,
			Locale:     req.Locale,
			ReferrerID: req.ReferrerID,
		})
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		log := logger.FromContext(r.Context())
		if state.Created {
			log.Info("Player created", "player_id", req.PlayerID, "referrer_id", req.ReferrerID)
			respondJSON(w, http.StatusCreated, state)
			return
		}
		log.Debug("Player logged in", "player_id", req.PlayerID)
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleGetState returns the settled player state.
// @Summary Get player state
// @Description Returns the authoritative player document after settling passive income, energy regeneration and suspicion decay up to now.
// @Tags player
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {object} player.StateView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/player/state [get]
func HandleGetState(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		state, err := playerService.GetState(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "Get state", err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// SyncStateRequest represents a full-document state submission.
type SyncStateRequest struct {
	PlayerID      int64          `json:"player_id" validate:"required,gt=0"`
	Balance       float64        `json:"balance" validate:"gte=0"`
	ProfitPerHour int            `json:"profit_per_hour" validate:"gte=0"`
	DailyTaps     int            `json:"daily_taps" validate:"gte=0"`
	Upgrades      map[string]int `json:"upgrades"`
}

// HandleSyncState reconciles a client-submitted state document.
// @Summary Sync player state
// @Description Verifies a client-submitted document against a server-side recomputation and persists it when it passes. Documents diverging beyond tolerance are rejected.
// @Tags player
// @Accept json
// @Produce json
// @Param request body SyncStateRequest true "Full state document"
// @Success 200 {object} player.StateView
// @Failure 409 {object} ErrorResponse "Concurrent session saved first"
// @Failure 422 {object} ErrorResponse "Document failed verification"
// @Router /api/v1/player/sync [post]
func HandleSyncState(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SyncStateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sync state"); err != nil {
			return
		}

		state, err := playerService.SyncState(r.Context(), req.PlayerID, player.SyncRequest{
			Balance:       req.Balance,
			ProfitPerHour: req.ProfitPerHour,
			DailyTaps:     req.DailyTaps,
			Upgrades:      req.Upgrades,
		})
		if err != nil {
			respondServiceError(w, r, "Sync state", err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}
