package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
)

// SettingsHandler serves the singleton farm settings.
type SettingsHandler struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
}

// NewSettingsHandler constructs the HTTP handler adapter.
func NewSettingsHandler(repo repository.SettingsRepository, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{repo: repo, logger: logger}
}

// Get returns the stored settings, falling back to defaults when none exist.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.repo.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed getting settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update shallow-merges the given fields over the stored settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid settings payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	settings, err := h.repo.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		h.logger.Error("failed updating settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
