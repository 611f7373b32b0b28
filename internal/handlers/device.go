package handlers

import (
	"errors"
	"net/http"

	"climate_station/internal/models"
	"climate_station/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	msgSettingsUpdated = "Settings updated successfully"
	msgMissingFields   = "Missing one or more required fields"
	msgNotEnoughData   = "Not enough data to summarize"

	errGetStatus       = "failed to load status"
	errGetSummary      = "failed to load summary"
	errGetSettings     = "failed to load settings"
	errUpdateSettings  = "failed to update settings"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current status
// @Description  Latest mode, sensor reading and fan state. sensor/fan are null until logged.
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.StatusSnapshot
// @Failure      500  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	snap, err := h.services.Status.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Sensor summary
// @Description  Time-weighted averages plus min/max over the whole sensor history.
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.SummaryStats
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	stats, err := h.services.Summary.Summarize(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughData) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNotEnoughData})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSummary, "summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Current thresholds
// @Description  Returns {} when no thresholds were ever stored.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Settings
// @Failure      500  {object}  map[string]string
// @Router       /settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.services.Settings.Current(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "settings_get_failed", err)
		return
	}
	if st == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Update thresholds
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   models.SettingsPayload  true  "Thresholds"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /settings [post]
func (h *Handler) postSettings(c *gin.Context) {
	var req models.SettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	st, err := h.services.Settings.Update(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrMissingSettings):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	case errors.Is(err, service.ErrInvalidSettings):
		if h.log != nil {
			h.log.Infow("settings_rejected", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateSettings, "settings_update_failed", err)
		return
	}

	if h.log != nil {
		h.log.Infow("settings_updated",
			"operator_id", c.GetInt(ctxOperatorID),
			"temp_high_threshold", st.TempHighThreshold,
			"temp_low_threshold", st.TempLowThreshold,
			"light_threshold", st.LightThreshold,
		)
	}
	c.JSON(http.StatusCreated, gin.H{"message": msgSettingsUpdated})
}
