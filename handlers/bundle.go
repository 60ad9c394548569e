package handlers

import (
	"net/http"

	driverRepo "fleetdesk/database/repository/driver"
	"fleetdesk/services/ledger"
	"fleetdesk/services/selection"
	"fleetdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	DriverRepo driverRepo.DriverRepository

	// Ledger endpoints.
	GetObligationsHandler       gin.HandlerFunc
	DriverConfirmPaymentHandler gin.HandlerFunc
	AdminRecordPaymentHandler   gin.HandlerFunc
	SetStatusHandler            gin.HandlerFunc
	AssignVehicleHandler        gin.HandlerFunc

	// Selection endpoints.
	CreateSelectionHandler      gin.HandlerFunc
	GetSelectionHandler         gin.HandlerFunc
	ListDriverSelectionsHandler gin.HandlerFunc
	DeleteSelectionHandler      gin.HandlerFunc
	ListPlansHandler            gin.HandlerFunc

	// Gateway webhook endpoint.
	GatewayWebhookHandler gin.HandlerFunc

	// Driver auth endpoints.
	RegisterDriverHandler   gin.HandlerFunc
	LoginDriverHandler      gin.HandlerFunc
	UpdateFCMTokenHandler   gin.HandlerFunc
	GetDriverProfileHandler gin.HandlerFunc
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err), selection.IsRequest(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case ledger.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case ledger.IsConflict(err), selection.IsDuplicate(err):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal server error", "")
	}
}
