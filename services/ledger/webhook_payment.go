package ledger

import (
	"context"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordGatewayPayment credits a gateway payment against a selection. The
// gateway delivers at least once, so the transaction id is durably recorded
// before the ledger is credited; a redelivery finds the id already present
// and becomes a no-op. Only captured payments mutate the ledger.
func (s *DefaultLedgerService) RecordGatewayPayment(ctx context.Context, req GatewayPaymentRequest) error {
	if req.TransactionID == "" {
		return NewValidationError("transactionId", "must not be empty")
	}
	if req.Status != GatewayStatusCaptured {
		s.logger().Info("ignoring non-captured gateway payment",
			zap.String("transactionId", req.TransactionID),
			zap.String("status", req.Status))
		return nil
	}
	if req.Amount <= 0 {
		return NewValidationError("amount", "must be a positive number")
	}

	sel, err := s.resolveSelection(req)
	if err != nil {
		return err
	}
	now := s.now()

	fresh, err := s.Repo.MarkGatewayTransaction(req.TransactionID, sel.ID, req.Amount)
	if err != nil {
		return err
	}
	if !fresh {
		s.logger().Info("duplicate gateway transaction ignored",
			zap.String("transactionId", req.TransactionID),
			zap.String("selectionId", sel.ID))
		return nil
	}

	var alloc Allocation
	if req.DepositAmount != nil || req.RentAmount != nil {
		// The client's explicit split may not reconcile with the captured
		// amount; rescale rather than trust or reject it.
		var dep, rent float64
		if req.DepositAmount != nil {
			dep = *req.DepositAmount
		}
		if req.RentAmount != nil {
			rent = *req.RentAmount
		}
		alloc.Deposit, alloc.Rent = RescaleSplit(req.Amount, dep, rent)
	} else {
		alloc = Allocate(req.Amount, req.Type, ComputeDues(sel, now))
	}

	event := models.PaymentEvent{
		ID:                     uuid.New().String(),
		Amount:                 req.Amount,
		Mode:                   models.PaymentModeOnline,
		Type:                   req.Type,
		Channel:                models.ChannelGateway,
		GatewayTransactionID:   req.TransactionID,
		DepositPortion:         alloc.Deposit,
		RentPortion:            alloc.Rent,
		AccidentalCoverPortion: alloc.AccidentalCover,
		ExtraPortion:           alloc.Extra,
		Date:                   now,
	}
	upd := selectionRepo.LedgerUpdate{
		DepositPaidInc:         alloc.Deposit,
		RentPaidInc:            alloc.Rent,
		AccidentalCoverPaidInc: alloc.AccidentalCover,
		ExtraAmountPaidInc:     alloc.Extra,
		PaidAmountInc:          req.Amount,
		DriverEvent:            &event,
		SetPaymentStatus:       models.PaymentStatusCompleted,
		SetPaymentMode:         models.PaymentModeOnline,
		SetPaymentDate:         &now,
	}

	updated, err := s.Repo.ApplyLedgerUpdate(sel.ID, upd)
	if err != nil {
		return err
	}
	if updated == nil {
		return NewNotFoundError("plan selection", sel.ID)
	}

	s.logger().Info("gateway payment credited",
		zap.String("transactionId", req.TransactionID),
		zap.String("selectionId", sel.ID),
		zap.Float64("amount", req.Amount))
	s.emit(models.EventGatewayPayment, updated, req.Amount, req.Type)
	return nil
}

// resolveSelection finds the paying selection by id, falling back to the
// denormalized driver mobile for selections made before registration.
func (s *DefaultLedgerService) resolveSelection(req GatewayPaymentRequest) (*models.PlanSelection, error) {
	if req.SelectionID != "" {
		return s.load(req.SelectionID)
	}
	if req.DriverMobile == "" {
		return nil, NewValidationError("selectionId", "either selectionId or driverMobile is required")
	}
	sel, err := s.Repo.GetActiveByMobile(req.DriverMobile)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		return nil, NewNotFoundError("plan selection for mobile", req.DriverMobile)
	}
	return sel, nil
}
