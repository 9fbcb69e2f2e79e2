package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/lootbox"
)

// HandleListLootboxes lists the purchasable lootboxes.
// @Summary List lootboxes
// @Tags lootboxes
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} lootbox.BoxView
// @Router /api/v1/lootboxes [get]
func HandleListLootboxes(lootboxService lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		boxes, err := lootboxService.List(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "List lootboxes", err)
			return
		}

		respondJSON(w, http.StatusOK, boxes)
	}
}

// OpenLootboxRequest identifies the lootbox to open.
type OpenLootboxRequest struct {
	PlayerID  int64  `json:"player_id" validate:"required,gt=0"`
	LootboxID string `json:"lootbox_id" validate:"required,max=64"`
}

// HandleOpenLootbox opens a lootbox and applies the drawn reward.
// @Summary Open lootbox
// @Description Deducts the box cost in its currency and draws one reward from the pool.
// @Tags lootboxes
// @Accept json
// @Produce json
// @Param request body OpenLootboxRequest true "Open payload"
// @Success 200 {object} lootbox.OpenResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/lootboxes/open [post]
func HandleOpenLootbox(lootboxService lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenLootboxRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open lootbox"); err != nil {
			return
		}

		result, err := lootboxService.Open(r.Context(), req.PlayerID, req.LootboxID)
		if err != nil {
			respondServiceError(w, r, "Open lootbox", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
