package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/service/herd"
)

// CowHandler adapts the herd service to HTTP.
type CowHandler struct {
	svc    *herd.Service
	logger *zap.Logger
}

// NewCowHandler constructs the HTTP handler adapter.
func NewCowHandler(svc *herd.Service, logger *zap.Logger) *CowHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CowHandler{svc: svc, logger: logger}
}

// List returns every cow enriched with derived metrics.
func (h *CowHandler) List(c *gin.Context) {
	cows, err := h.svc.ListCows(c.Request.Context())
	if err != nil {
		h.fail(c, "failed listing cows", err)
		return
	}
	c.JSON(http.StatusOK, cows)
}

// Get returns one enriched cow.
func (h *CowHandler) Get(c *gin.Context) {
	cow, err := h.svc.GetCow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed getting cow", err)
		return
	}
	c.JSON(http.StatusOK, cow)
}

// Create stores a new cow record. Field validation is deliberately absent;
// the store accepts what it is given.
func (h *CowHandler) Create(c *gin.Context) {
	var cow models.CowRecord
	if err := c.ShouldBindJSON(&cow); err != nil {
		h.logger.Warn("invalid cow payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	created, err := h.svc.CreateCow(c.Request.Context(), cow)
	if err != nil {
		h.fail(c, "failed creating cow", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update shallow-merges the given fields over the stored record.
func (h *CowHandler) Update(c *gin.Context) {
	var patch models.CowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid cow patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	updated, err := h.svc.UpdateCow(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "failed updating cow", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the cow and its yield history.
func (h *CowHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.DeleteCow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed deleting cow", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cow deleted successfully", "cow": deleted})
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation moves the cow to new coordinates.
func (h *CowHandler) UpdateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid location payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	updated, err := h.svc.UpdateLocation(c.Request.Context(), c.Param("id"), req.Lat, req.Lng)
	if err != nil {
		h.fail(c, "failed updating location", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListYield returns the yield history for a cow.
func (h *CowHandler) ListYield(c *gin.Context) {
	entries, err := h.svc.ListYield(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed listing yield", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AppendYield records a yield entry for a cow.
func (h *CowHandler) AppendYield(c *gin.Context) {
	var entry models.YieldEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		h.logger.Warn("invalid yield payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	created, err := h.svc.RecordYield(c.Request.Context(), c.Param("id"), entry)
	if err != nil {
		h.fail(c, "failed recording yield", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// FeedRequirements returns the daily feed plan for a cow.
func (h *CowHandler) FeedRequirements(c *gin.Context) {
	feed, err := h.svc.FeedRequirements(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed computing feed requirements", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// HealthDetail returns the per-cow health report.
func (h *CowHandler) HealthDetail(c *gin.Context) {
	report, err := h.svc.HealthDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed computing health detail", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *CowHandler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cow not found"})
		return
	}
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
