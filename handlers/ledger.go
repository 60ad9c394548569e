package handlers

import (
	"net/http"
	"time"

	"fleetdesk/models"
	"fleetdesk/services/ledger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LedgerHandler exposes the rent accrual and payment ledger over HTTP.
type LedgerHandler struct {
	Svc ledger.LedgerService
}

func NewLedgerHandler(svc ledger.LedgerService) *LedgerHandler {
	return &LedgerHandler{Svc: svc}
}

// GetObligations returns the due breakdown for a selection. An optional
// asOf query parameter (RFC 3339) evaluates the ledger at a past instant.
func (h *LedgerHandler) GetObligations(c *gin.Context) {
	id := c.Param("id")

	var asOf time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asOf, expected RFC 3339 timestamp"})
			return
		}
		asOf = parsed
	}

	view, err := h.Svc.GetObligations(c.Request.Context(), id, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DriverConfirmPayment records a driver's self-pay confirmation.
func (h *LedgerHandler) DriverConfirmPayment(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req ledger.DriverPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Svc.ConfirmDriverPayment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("driver payment confirmed", zap.String("selectionId", id))
	c.JSON(http.StatusOK, snap)
}

// AdminRecordPayment records an admin payment and/or charge edit.
func (h *LedgerHandler) AdminRecordPayment(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req ledger.AdminPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Svc.RecordAdminPayment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("admin payment recorded", zap.String("selectionId", id))
	c.JSON(http.StatusOK, snap)
}

// SetStatus drives the selection status state machine.
func (h *LedgerHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status models.SelectionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// AssignVehicle links a vehicle to a selection and starts the rent clock.
func (h *LedgerHandler) AssignVehicle(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req struct {
		VehicleID string `json:"vehicleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.VehicleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleId must not be empty"})
		return
	}

	snap, err := h.Svc.AssignVehicle(c.Request.Context(), id, req.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("vehicle assigned",
		zap.String("selectionId", id),
		zap.String("vehicleId", req.VehicleID))
	c.JSON(http.StatusOK, snap)
}
