package handlers

import (
	"net/http"

	"fleetdesk/services/selection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SelectionHandler exposes the plan catalog and selection lifecycle.
type SelectionHandler struct {
	Svc selection.SelectionService
}

func NewSelectionHandler(svc selection.SelectionService) *SelectionHandler {
	return &SelectionHandler{Svc: svc}
}

// CreateSelection registers a driver's plan choice.
func (h *SelectionHandler) CreateSelection(c *gin.Context) {
	logger := getLogger(c)

	var req selection.CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	// A driver calling on their own behalf is bound to their token identity.
	if driverID, ok := c.Get("driverID"); ok {
		req.DriverID = driverID.(string)
	}

	sel, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("selection created", zap.String("selectionId", sel.ID))
	c.JSON(http.StatusCreated, sel)
}

// GetSelection returns one selection document.
func (h *SelectionHandler) GetSelection(c *gin.Context) {
	id := c.Param("id")

	sel, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if sel == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection not found"})
		return
	}
	c.JSON(http.StatusOK, sel)
}

// ListDriverSelections returns the authenticated driver's selection history.
func (h *SelectionHandler) ListDriverSelections(c *gin.Context) {
	driverID, ok := c.Get("driverID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing driver identity"})
		return
	}

	sels, err := h.Svc.ListForDriver(c.Request.Context(), driverID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selections": sels})
}

// DeleteSelection removes a selection entirely.
func (h *SelectionHandler) DeleteSelection(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	logger.Info("selection deleted", zap.String("selectionId", id))
	c.JSON(http.StatusOK, gin.H{"message": "selection deleted"})
}

// ListPlans returns the active rental plan catalog.
func (h *SelectionHandler) ListPlans(c *gin.Context) {
	plans, err := h.Svc.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
