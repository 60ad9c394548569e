package models

import "time"

// Ledger event types emitted to the notification dispatcher.
const (
	EventDriverPayment  = "driver_payment"
	EventAdminPayment   = "admin_payment"
	EventGatewayPayment = "gateway_payment"
	EventChargeApplied  = "charge_applied"
	EventStatusChanged  = "status_changed"
)

// LedgerEvent is what the ledger hands to the dispatcher after any
// ledger-affecting mutation. Delivery is the dispatcher's problem; a failed
// dispatch never rolls back the ledger write.
type LedgerEvent struct {
	EventType      string      `json:"eventType"`
	SelectionID    string      `json:"selectionId"`
	DriverID       string      `json:"driverId,omitempty"`
	Amount         float64     `json:"amount"`
	ObligationType PaymentType `json:"obligationType,omitempty"`
	OccurredAt     time.Time   `json:"occurredAt"`
}
