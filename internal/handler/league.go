package handler

import (
	"net/http"
	"strconv"

	"github.com/kovertlabs/deepcover/internal/league"
)

// HandleGetPlayerLeague returns the player's current league.
// @Summary Get player league
// @Tags leagues
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {object} league.LeagueView
// @Router /api/v1/league [get]
func HandleGetPlayerLeague(leagueService league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		view, err := leagueService.PlayerLeague(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "Get league", err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// HandleListLeagues lists all league tiers with the player's marked.
// @Summary List leagues
// @Tags leagues
// @Produce json
// @Param player_id query int true "Telegram user id"
// @Success 200 {array} league.LeagueView
// @Router /api/v1/leagues [get]
func HandleListLeagues(leagueService league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerIDParam(r, w)
		if !ok {
			return
		}

		views, err := leagueService.ListForPlayer(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "List leagues", err)
			return
		}

		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetLeaderboard serves the balance leaderboard.
// @Summary Get leaderboard
// @Description Returns the highest-balance players annotated with their league. Limit defaults to 100 and caps at 500.
// @Tags leagues
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} domain.LeaderboardEntry
// @Router /api/v1/leaderboard [get]
func HandleGetLeaderboard(leagueService league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))

		entries, err := leagueService.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, entries)
	}
}
