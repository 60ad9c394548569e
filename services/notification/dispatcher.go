package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"fleetdesk/config"
	driverRepo "fleetdesk/database/repository/driver"
	"fleetdesk/models"
	"fleetdesk/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultDispatcher is the production implementation: every ledger event is
// broadcast on the dashboard channel, and payment events additionally push to
// the driver's device when a token is on file.
type DefaultDispatcher struct {
	Drivers driverRepo.DriverRepository
	Redis   *redis.Client
	Logger  *zap.Logger
}

func NewDefaultDispatcher(drivers driverRepo.DriverRepository, redisClient *redis.Client, logger *zap.Logger) (*DefaultDispatcher, error) {
	if drivers == nil || redisClient == nil {
		return nil, fmt.Errorf("dispatcher initialization error: driver repository or redis client is nil")
	}
	return &DefaultDispatcher{Drivers: drivers, Redis: redisClient, Logger: logger}, nil
}

// Dispatch delivers one ledger event. Partial delivery failures are reported
// but callers are expected to log and move on; the ledger write already
// stands.
func (d *DefaultDispatcher) Dispatch(ctx context.Context, event models.LedgerEvent) error {
	var firstErr error

	if err := d.broadcast(ctx, event); err != nil {
		d.logger().Warn("dashboard broadcast failed",
			zap.String("eventType", event.EventType),
			zap.Error(err))
		firstErr = err
	}

	if event.DriverID != "" {
		if err := d.pushToDriver(ctx, event); err != nil {
			d.logger().Warn("driver push failed",
				zap.String("driverId", event.DriverID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// broadcast publishes the event on the dashboard channel.
func (d *DefaultDispatcher) broadcast(ctx context.Context, event models.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}
	channel := config.AppConfig.LedgerEventChannel
	if channel == "" {
		channel = "ledger.events"
	}
	if err := d.Redis.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish ledger event: %w", err)
	}
	return nil
}

// pushToDriver looks up the driver's FCM token and sends a push.
func (d *DefaultDispatcher) pushToDriver(ctx context.Context, event models.LedgerEvent) error {
	drv, err := d.Drivers.GetByID(event.DriverID)
	if err != nil {
		return fmt.Errorf("could not find driver %s: %w", event.DriverID, err)
	}
	if drv == nil || drv.FCMToken == "" {
		// No push target; nothing to deliver.
		return nil
	}
	if utils.FCMClient == nil {
		return nil
	}

	title, body := describeEvent(event)
	msg := &messaging.Message{
		Token: drv.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"eventType":   event.EventType,
			"selectionId": event.SelectionID,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

func describeEvent(event models.LedgerEvent) (title, body string) {
	switch event.EventType {
	case models.EventDriverPayment, models.EventGatewayPayment:
		return "Payment received", fmt.Sprintf("We received your payment of %.2f. Thank you!", event.Amount)
	case models.EventAdminPayment:
		return "Payment recorded", fmt.Sprintf("A payment of %.2f was recorded on your rental account.", event.Amount)
	case models.EventChargeApplied:
		return "Account updated", "A charge or credit was applied to your rental account."
	case models.EventStatusChanged:
		return "Rental status updated", "Your rental plan status has changed."
	default:
		return "Rental account update", "There is an update on your rental account."
	}
}

func (d *DefaultDispatcher) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.L()
}
