package selectionRepo

import (
	"errors"
	"time"

	"fleetdesk/models"
)

// ErrStatusConflict is returned when a guarded status transition matched the
// selection id but not its expected current status: another writer moved the
// document first.
var ErrStatusConflict = errors.New("selection status changed concurrently")

// LedgerUpdate is one atomic mutation of a selection's financial state. All
// increments and pushes are applied in a single storage-level update so
// concurrent recorders never lose increments. Zero-valued fields are left
// untouched.
type LedgerUpdate struct {
	DepositPaidInc         float64
	RentPaidInc            float64
	AccidentalCoverPaidInc float64
	ExtraAmountPaidInc     float64
	PaidAmountInc          float64
	AdminPaidAmountInc     float64

	// Variable obligation charges, each paired with a reasoned history entry.
	ExtraCharge      *models.AmountChange
	AdjustmentCredit *models.AmountChange

	DriverEvent *models.PaymentEvent
	AdminEvent  *models.PaymentEvent

	SetPaymentStatus models.PaymentStatus
	SetPaymentMode   models.PaymentMode
	SetPaymentDate   *time.Time
}

// StatusUpdate describes a state-machine transition's field effects.
type StatusUpdate struct {
	Status              models.SelectionStatus
	SetRentStartDate    *time.Time
	ClearRentStartDate  bool
	SetRentPausedDate   *time.Time
	ClearRentPausedDate bool
	SetVehicleID        string
}

// SelectionRepository defines data access for plan selections and the
// gateway-transaction dedup set. Lookup methods return (nil, nil) when no
// document matches.
type SelectionRepository interface {
	Create(sel *models.PlanSelection) error
	GetByID(id string) (*models.PlanSelection, error)
	GetActiveByDriver(driverID string) (*models.PlanSelection, error)
	GetActiveByMobile(mobile string) (*models.PlanSelection, error)
	GetAllByDriver(driverID string) ([]models.PlanSelection, error)
	Delete(id string) error

	// ApplyLedgerUpdate applies the update atomically and returns the
	// post-update document, or (nil, nil) if the id does not exist.
	ApplyLedgerUpdate(id string, upd LedgerUpdate) (*models.PlanSelection, error)

	// TransitionStatus applies a status transition guarded by the expected
	// current statuses. Returns ErrStatusConflict when the document exists but
	// is no longer in any of the expected states.
	TransitionStatus(id string, from []models.SelectionStatus, upd StatusUpdate) (*models.PlanSelection, error)

	// MarkGatewayTransaction durably records a gateway transaction id before
	// the ledger is credited. Returns false when the id was already recorded,
	// which makes a retried webhook a no-op.
	MarkGatewayTransaction(transactionID, selectionID string, amount float64) (bool, error)
}
