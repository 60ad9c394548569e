package ledger

import (
	"context"
	"time"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"
	"fleetdesk/services/notification"

	"go.uber.org/zap"
)

// DefaultLedgerService is the production implementation of LedgerService.
type DefaultLedgerService struct {
	Repo       selectionRepo.SelectionRepository
	Dispatcher notification.Dispatcher
	Policy     ClockPolicy
	Logger     *zap.Logger

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

// NewDefaultLedgerService wires a ledger service with the reset-on-pause
// clock policy.
func NewDefaultLedgerService(repo selectionRepo.SelectionRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *DefaultLedgerService {
	return &DefaultLedgerService{
		Repo:       repo,
		Dispatcher: dispatcher,
		Policy:     ClockPolicyResetOnPause,
		Logger:     logger,
	}
}

func (s *DefaultLedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultLedgerService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// load fetches a selection or reports NotFoundError.
func (s *DefaultLedgerService) load(selectionID string) (*models.PlanSelection, error) {
	if selectionID == "" {
		return nil, NewValidationError("selectionId", "must not be empty")
	}
	sel, err := s.Repo.GetByID(selectionID)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		return nil, NewNotFoundError("plan selection", selectionID)
	}
	return sel, nil
}

func (s *DefaultLedgerService) snapshot(sel *models.PlanSelection, asOf time.Time) *Snapshot {
	return &Snapshot{
		Selection: sel,
		Accrual: AccrualSummary{
			Days:       ElapsedDays(sel, asOf),
			RentPerDay: sel.RentPerDay,
			TotalRent:  RentAccrued(sel, asOf),
		},
		Dues: ComputeDues(sel, asOf),
	}
}

// emit hands a ledger event to the dispatcher off the request path. Delivery
// failures are logged and swallowed; the ledger write already happened and
// stands.
func (s *DefaultLedgerService) emit(eventType string, sel *models.PlanSelection, amount float64, obligation models.PaymentType) {
	if s.Dispatcher == nil {
		return
	}
	event := models.LedgerEvent{
		EventType:      eventType,
		SelectionID:    sel.ID,
		DriverID:       sel.DriverID,
		Amount:         amount,
		ObligationType: obligation,
		OccurredAt:     s.now(),
	}
	go func() {
		if err := s.Dispatcher.Dispatch(context.Background(), event); err != nil {
			s.logger().Warn("ledger event dispatch failed",
				zap.String("eventType", event.EventType),
				zap.String("selectionId", event.SelectionID),
				zap.Error(err))
		}
	}()
}

// GetObligations returns the current due breakdown. Recomputed on every call
// since the accrual clock follows the wall clock.
func (s *DefaultLedgerService) GetObligations(ctx context.Context, selectionID string, asOf time.Time) (*ObligationView, error) {
	sel, err := s.load(selectionID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	return &ObligationView{
		SelectionID: sel.ID,
		AsOf:        asOf,
		Accrual: AccrualSummary{
			Days:       ElapsedDays(sel, asOf),
			RentPerDay: sel.RentPerDay,
			TotalRent:  RentAccrued(sel, asOf),
		},
		Dues: ComputeDues(sel, asOf),
	}, nil
}

// SetStatus drives the status state machine. Completed is terminal; payment
// totals are never touched here, only the accrual clock.
func (s *DefaultLedgerService) SetStatus(ctx context.Context, selectionID string, status models.SelectionStatus) (*Snapshot, error) {
	switch status {
	case models.SelectionActive, models.SelectionInactive, models.SelectionCompleted:
	default:
		return nil, NewValidationError("status", "must be one of active, inactive, completed")
	}

	sel, err := s.load(selectionID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	if sel.Status == models.SelectionCompleted {
		return nil, NewConflictError("completed selection cannot change status")
	}
	if sel.Status == status {
		return s.snapshot(sel, now), nil
	}

	var upd selectionRepo.StatusUpdate
	switch status {
	case models.SelectionActive:
		upd = planActivation(sel, now)
	case models.SelectionInactive:
		upd = planDeactivation(sel, now, s.Policy)
	case models.SelectionCompleted:
		upd = selectionRepo.StatusUpdate{Status: models.SelectionCompleted}
	}

	updated, err := s.Repo.TransitionStatus(selectionID, []models.SelectionStatus{sel.Status}, upd)
	if err == selectionRepo.ErrStatusConflict {
		return nil, NewConflictError("selection status changed concurrently, retry")
	}
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NewNotFoundError("plan selection", selectionID)
	}

	s.emit(models.EventStatusChanged, updated, 0, "")
	return s.snapshot(updated, now), nil
}

// AssignVehicle links a vehicle to the selection and activates it, stamping
// the rent start date if this is the first activation.
func (s *DefaultLedgerService) AssignVehicle(ctx context.Context, selectionID, vehicleID string) (*Snapshot, error) {
	if vehicleID == "" {
		return nil, NewValidationError("vehicleId", "must not be empty")
	}
	sel, err := s.load(selectionID)
	if err != nil {
		return nil, err
	}
	if sel.Status == models.SelectionCompleted {
		return nil, NewConflictError("completed selection cannot take a vehicle")
	}
	now := s.now()

	upd := planActivation(sel, now)
	upd.SetVehicleID = vehicleID

	updated, err := s.Repo.TransitionStatus(selectionID, []models.SelectionStatus{sel.Status}, upd)
	if err == selectionRepo.ErrStatusConflict {
		return nil, NewConflictError("selection status changed concurrently, retry")
	}
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NewNotFoundError("plan selection", selectionID)
	}

	s.emit(models.EventStatusChanged, updated, 0, "")
	return s.snapshot(updated, now), nil
}
