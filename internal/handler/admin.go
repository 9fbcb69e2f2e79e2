package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/gameconfig"
	"github.com/kovertlabs/deepcover/internal/logger"
)

// ReloadFunc re-reads the game definition files, syncs them to the database
// and swaps the in-memory snapshot. Assembled at bootstrap.
type ReloadFunc func(ctx context.Context) (*gameconfig.SyncResult, error)

// AdminHandler serves operator-only endpoints. Requests must carry an
// admin_id that belongs to the configured admin list; the API key alone is
// not enough.
type AdminHandler struct {
	reload  ReloadFunc
	daily   daily.Service
	isAdmin func(int64) bool
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(reload ReloadFunc, dailyService daily.Service, isAdmin func(int64) bool) *AdminHandler {
	return &AdminHandler{
		reload:  reload,
		daily:   dailyService,
		isAdmin: isAdmin,
	}
}

// requireAdmin validates the admin_id query parameter. Returns false with the
// response already written when access is denied.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	raw, ok := GetQueryParam(r, w, "admin_id")
	if !ok {
		return false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !h.isAdmin(id) {
		logger.FromContext(r.Context()).Warn("Admin access denied", "admin_id", raw, "path", r.URL.Path)
		respondError(w, http.StatusForbidden, ErrMsgAdminRequired)
		return false
	}
	return true
}

// ReloadConfigResponse reports the outcome of a config reload.
type ReloadConfigResponse struct {
	Updated bool  `json:"updated"`
	Version int64 `json:"version"`
}

// HandleReloadConfig re-reads the game definition files and activates them.
// @Summary Reload game config
// @Description Loads the definition files, validates them, stores a new version when the content changed and swaps the active snapshot.
// @Tags admin
// @Produce json
// @Param admin_id query int true "Admin Telegram user id"
// @Success 200 {object} ReloadConfigResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/config/reload [post]
func (h *AdminHandler) HandleReloadConfig(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	result, err := h.reload(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Config reload failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgReloadConfigFailed)
		return
	}

	logger.FromContext(r.Context()).Info("Config reloaded",
		"updated", result.Updated,
		"version", result.Version)
	respondJSON(w, http.StatusOK, ReloadConfigResponse{
		Updated: result.Updated,
		Version: result.Version,
	})
}

// HandleRotateDailyEvent forces a new daily event for today.
// @Summary Rotate daily event
// @Description Regenerates today's combo and cipher event immediately instead of waiting for the midnight rotation.
// @Tags admin
// @Produce json
// @Param admin_id query int true "Admin Telegram user id"
// @Success 200 {object} DailyEventResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/daily/rotate [post]
func (h *AdminHandler) HandleRotateDailyEvent(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	event, err := h.daily.Rotate(r.Context(), time.Now().UTC())
	if err != nil {
		logger.FromContext(r.Context()).Error("Daily event rotation failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRotateEventFailed)
		return
	}

	logger.FromContext(r.Context()).Info("Daily event rotated", "day", event.Day)
	respondJSON(w, http.StatusOK, newDailyEventResponse(event))
}
