package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/boost"
)

// HandleListBoosts lists the boost catalog with per-player prices.
// @Summary List boosts
// @Tags boosts
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} boost.BoostView
// @Router /api/v1/boosts [get]
func HandleListBoosts(boostService boost.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		boosts, err := boostService.List(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "List boosts", err)
			return
		}

		respondJSON(w, http.StatusOK, boosts)
	}
}

// BuyBoostRequest identifies the boost to purchase.
type BuyBoostRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	BoostID  string `json:"boost_id" validate:"required,max=64"`
}

// HandleBuyBoost purchases a boost.
// @Summary Buy boost
// @Description Deducts the boost cost. Consumables apply immediately; permanent boosts raise their level.
// @Tags boosts
// @Accept json
// @Produce json
// @Param request body BuyBoostRequest true "Purchase payload"
// @Success 200 {object} boost.BuyResult
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Daily purchase limit reached"
// @Router /api/v1/boosts/buy [post]
func HandleBuyBoost(boostService boost.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyBoostRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy boost"); err != nil {
			return
		}

		result, err := boostService.Buy(r.Context(), req.PlayerID, req.BoostID)
		if err != nil {
			respondServiceError(w, r, "Buy boost", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
