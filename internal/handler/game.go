package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/economy"
)

// TapRequest represents a batch of taps performed in the client.
type TapRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	Count    int   `json:"count" validate:"required,gt=0"`
}

// HandleTap applies a batch of taps.
// @Summary Tap
// @Description Applies up to the energy-limited number of taps and credits the coin yield.
// @Tags game
// @Accept json
// @Produce json
// @Param request body TapRequest true "Tap batch"
// @Success 200 {object} economy.TapResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/tap [post]
func HandleTap(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TapRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Tap"); err != nil {
			return
		}

		result, err := economyService.Tap(r.Context(), req.PlayerID, req.Count)
		if err != nil {
			respondServiceError(w, r, "Tap", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// MetaTapRequest represents taps on a decorative screen element.
type MetaTapRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	Count    int   `json:"count" validate:"required,gt=0"`
}

// HandleMetaTap records taps outside the main tap target.
// @Summary Meta tap
// @Description Records taps on decorative elements. Grants nothing directly but may trigger hidden events.
// @Tags game
// @Accept json
// @Produce json
// @Param request body MetaTapRequest true "Meta tap batch"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/meta-tap [post]
func HandleMetaTap(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MetaTapRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Meta tap"); err != nil {
			return
		}

		if err := economyService.MetaTap(r.Context(), req.PlayerID, req.Count); err != nil {
			respondServiceError(w, r, "Meta tap", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "recorded"})
	}
}

// HandleListUpgrades returns the upgrade catalog with per-player prices.
// @Summary List upgrades
// @Description Returns every upgrade with the player's owned level, current price and profit values.
// @Tags game
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} economy.UpgradeView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/game/upgrades [get]
func HandleListUpgrades(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		upgrades, err := economyService.ListUpgrades(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "List upgrades", err)
			return
		}

		respondJSON(w, http.StatusOK, upgrades)
	}
}

// BuyUpgradeRequest represents an upgrade purchase.
type BuyUpgradeRequest struct {
	PlayerID  int64  `json:"player_id" validate:"required,gt=0"`
	UpgradeID string `json:"upgrade_id" validate:"required,max=64"`
}

// HandleBuyUpgrade purchases one level of an upgrade.
// @Summary Buy upgrade
// @Description Deducts the level-derived price, raises the owned level by one and applies the suspicion modifier.
// @Tags game
// @Accept json
// @Produce json
// @Param request body BuyUpgradeRequest true "Purchase payload"
// @Success 200 {object} economy.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/upgrades/buy [post]
func HandleBuyUpgrade(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyUpgradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy upgrade"); err != nil {
			return
		}

		result, err := economyService.BuyUpgrade(r.Context(), req.PlayerID, req.UpgradeID)
		if err != nil {
			respondServiceError(w, r, "Buy upgrade", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
