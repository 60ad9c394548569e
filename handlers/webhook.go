package handlers

import (
	"context"
	"net/http"
	"time"

	"fleetdesk/services/ledger"
	"fleetdesk/services/tasks"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// WebhookHandler receives payment gateway callbacks. The gateway is
// acknowledged before the ledger is touched; processing happens on the task
// queue so a slow or failing write never causes the gateway to disable the
// endpoint.
type WebhookHandler struct {
	Svc        ledger.LedgerService
	TaskClient *asynq.Client
}

func NewWebhookHandler(svc ledger.LedgerService, client *asynq.Client) *WebhookHandler {
	return &WebhookHandler{Svc: svc, TaskClient: client}
}

// GatewayPayment handles a gateway payment notification.
func (h *WebhookHandler) GatewayPayment(c *gin.Context) {
	logger := getLogger(c)

	var req ledger.GatewayPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}
	if req.TransactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionId must not be empty"})
		return
	}

	// Acknowledge first; duplicate deliveries are deduplicated downstream.
	c.JSON(http.StatusOK, gin.H{"status": "received"})

	task, opts, err := tasks.NewGatewayPaymentTask(req)
	if err != nil {
		logger.Error("failed to build gateway payment task",
			zap.String("transactionId", req.TransactionID), zap.Error(err))
		return
	}
	if h.TaskClient != nil {
		if _, err := h.TaskClient.Enqueue(task, opts...); err == nil {
			return
		} else {
			logger.Warn("enqueue failed, processing inline",
				zap.String("transactionId", req.TransactionID), zap.Error(err))
		}
	} else {
		logger.Warn("no task client configured, processing inline",
			zap.String("transactionId", req.TransactionID))
	}

	// Queue unavailable: process on a detached context so the credit is not
	// lost with the request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.Svc.RecordGatewayPayment(ctx, req); err != nil {
			logger.Error("inline gateway payment processing failed",
				zap.String("transactionId", req.TransactionID), zap.Error(err))
		}
	}()
}
