package ledger

import (
	"context"
	"time"

	"fleetdesk/models"
)

// DriverPaymentRequest is a driver's self-pay confirmation. Confirmations
// are always additive; a selection already marked completed still accepts
// further confirmations.
type DriverPaymentRequest struct {
	Mode       models.PaymentMode `json:"paymentMode"`
	PaidAmount *float64           `json:"paidAmount,omitempty"`
	Type       models.PaymentType `json:"paymentType,omitempty"`
}

// AdminPaymentRequest is an admin-recorded payment and/or charge edit.
type AdminPaymentRequest struct {
	Amount           *float64             `json:"adminPaidAmount,omitempty"`
	Type             models.PaymentType   `json:"adminPaymentType,omitempty"`
	Mode             models.PaymentMode   `json:"paymentMode,omitempty"`
	ExtraAmount      *float64             `json:"extraAmount,omitempty"`
	ExtraReason      string               `json:"extraReason,omitempty"`
	AdjustmentAmount *float64             `json:"adjustmentAmount,omitempty"`
	AdjustmentReason string               `json:"adjustmentReason,omitempty"`
	PaymentStatus    models.PaymentStatus `json:"paymentStatus,omitempty"`
}

// GatewayPaymentRequest is the normalized form of a gateway webhook payload.
// Either SelectionID or DriverMobile must resolve to a selection.
type GatewayPaymentRequest struct {
	TransactionID string             `json:"transactionId"`
	SelectionID   string             `json:"selectionId,omitempty"`
	DriverMobile  string             `json:"driverMobile,omitempty"`
	Amount        float64            `json:"amount"`
	Status        string             `json:"status"`
	Type          models.PaymentType `json:"paymentType,omitempty"`
	DepositAmount *float64           `json:"depositAmount,omitempty"`
	RentAmount    *float64           `json:"rentAmount,omitempty"`
}

// Gateway webhook statuses the ledger understands. Only captured mutates.
const (
	GatewayStatusCaptured  = "captured"
	GatewayStatusFailed    = "failed"
	GatewayStatusCancelled = "cancelled"
)

// AccrualSummary reports the calculator's view at a point in time.
type AccrualSummary struct {
	Days       int     `json:"days"`
	RentPerDay float64 `json:"rentPerDay"`
	TotalRent  float64 `json:"totalRent"`
}

// ObligationView is the read-side breakdown returned by GetObligations.
type ObligationView struct {
	SelectionID string         `json:"selectionId"`
	AsOf        time.Time      `json:"asOf"`
	Accrual     AccrualSummary `json:"accrual"`
	Dues        Dues           `json:"dues"`
}

// Snapshot is the updated ledger state returned after a mutation.
type Snapshot struct {
	Selection *models.PlanSelection `json:"selection"`
	Accrual   AccrualSummary        `json:"accrual"`
	Dues      Dues                  `json:"dues"`
}

// LedgerService is the rent accrual and payment ledger over plan selections.
type LedgerService interface {
	// GetObligations returns the due breakdown and accrual summary as of the
	// given time (zero means now). Pure read, identical inputs give identical
	// results.
	GetObligations(ctx context.Context, selectionID string, asOf time.Time) (*ObligationView, error)

	// ConfirmDriverPayment records a driver self-pay confirmation.
	ConfirmDriverPayment(ctx context.Context, selectionID string, req DriverPaymentRequest) (*Snapshot, error)

	// RecordAdminPayment records an admin cash/online payment and applies any
	// extra or adjustment charge edits in the same atomic update.
	RecordAdminPayment(ctx context.Context, selectionID string, req AdminPaymentRequest) (*Snapshot, error)

	// RecordGatewayPayment credits a captured gateway payment, deduplicated
	// by gateway transaction id. Safe to call concurrently and repeatedly for
	// the same transaction.
	RecordGatewayPayment(ctx context.Context, req GatewayPaymentRequest) error

	// SetStatus drives the status state machine (active/inactive/completed).
	SetStatus(ctx context.Context, selectionID string, status models.SelectionStatus) (*Snapshot, error)

	// AssignVehicle links a vehicle and implicitly activates the selection.
	AssignVehicle(ctx context.Context, selectionID, vehicleID string) (*Snapshot, error)
}
