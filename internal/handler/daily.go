package handler

import (
	"net/http"

	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/domain"
)

// DailyEventResponse is today's event without the secret cipher word.
type DailyEventResponse struct {
	Day          string   `json:"day"`
	ComboIDs     []string `json:"combo_ids"`
	ComboReward  int      `json:"combo_reward"`
	CipherReward int      `json:"cipher_reward"`
	ComboActive  bool     `json:"combo_active"`
}

func newDailyEventResponse(e *domain.DailyEvent) DailyEventResponse {
	return DailyEventResponse{
		Day:          e.Day,
		ComboIDs:     e.ComboIDs,
		ComboReward:  e.ComboReward,
		CipherReward: e.CipherReward,
		ComboActive:  e.ComboActive(),
	}
}

// HandleGetDailyEvent serves today's combo and cipher event.
// @Summary Get daily event
// @Description Returns today's combo upgrade ids and reward amounts. The cipher word itself is never exposed.
// @Tags daily
// @Produce json
// @Success 200 {object} DailyEventResponse
// @Router /api/v1/daily/event [get]
func HandleGetDailyEvent(dailyService daily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := dailyService.CurrentEvent(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get daily event", err)
			return
		}

		respondJSON(w, http.StatusOK, newDailyEventResponse(event))
	}
}

// ClaimComboRequest identifies the player claiming today's combo.
type ClaimComboRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

// HandleClaimCombo claims today's upgrade combo reward.
// @Summary Claim daily combo
// @Description Grants the combo reward if the player bought all three combo upgrades today and has not claimed yet.
// @Tags daily
// @Accept json
// @Produce json
// @Param request body ClaimComboRequest true "Claim payload"
// @Success 200 {object} daily.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/daily/combo/claim [post]
func HandleClaimCombo(dailyService daily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimComboRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim combo"); err != nil {
			return
		}

		result, err := dailyService.ClaimCombo(r.Context(), req.PlayerID)
		if err != nil {
			respondServiceError(w, r, "Claim combo", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// ClaimCipherRequest carries the Morse word decoded by the player.
type ClaimCipherRequest struct {
	PlayerID int64  `json:"player_id" validate:"required,gt=0"`
	Word     string `json:"word" validate:"required,max=32"`
}

// HandleClaimCipher claims today's cipher reward.
// @Summary Claim daily cipher
// @Description Grants the cipher reward if the submitted word matches today's cipher word, once per day.
// @Tags daily
// @Accept json
// @Produce json
// @Param request body ClaimCipherRequest true "Claim payload"
// @Success 200 {object} daily.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/daily/cipher/claim [post]
func HandleClaimCipher(dailyService daily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimCipherRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim cipher"); err != nil {
			return
		}

		result, err := dailyService.ClaimCipher(r.Context(), req.PlayerID, req.Word)
		if err != nil {
			respondServiceError(w, r, "Claim cipher", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
