package ledger

import (
	"context"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmDriverPayment records a driver's self-pay confirmation. Repeat
// confirmations on the same selection are valid and accumulate; a completed
// payment status never blocks another confirmation.
func (s *DefaultLedgerService) ConfirmDriverPayment(ctx context.Context, selectionID string, req DriverPaymentRequest) (*Snapshot, error) {
	if req.Mode != models.PaymentModeCash && req.Mode != models.PaymentModeOnline {
		return nil, NewValidationError("paymentMode", "must be cash or online")
	}
	if req.PaidAmount != nil && *req.PaidAmount <= 0 {
		return nil, NewValidationError("paidAmount", "must be a positive number")
	}
	switch req.Type {
	case "", models.PaymentTypeRent, models.PaymentTypeSecurity:
	default:
		return nil, NewValidationError("paymentType", "must be rent or security")
	}

	sel, err := s.load(selectionID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	upd := selectionRepo.LedgerUpdate{
		SetPaymentStatus: models.PaymentStatusCompleted,
		SetPaymentMode:   req.Mode,
		SetPaymentDate:   &now,
	}

	var amount float64
	if req.PaidAmount != nil {
		amount = *req.PaidAmount
		alloc := Allocate(amount, req.Type, ComputeDues(sel, now))
		event := models.PaymentEvent{
			ID:                     uuid.New().String(),
			Amount:                 amount,
			Mode:                   req.Mode,
			Type:                   req.Type,
			Channel:                models.ChannelDriver,
			DepositPortion:         alloc.Deposit,
			RentPortion:            alloc.Rent,
			AccidentalCoverPortion: alloc.AccidentalCover,
			ExtraPortion:           alloc.Extra,
			Date:                   now,
		}
		upd.DepositPaidInc = alloc.Deposit
		upd.RentPaidInc = alloc.Rent
		upd.AccidentalCoverPaidInc = alloc.AccidentalCover
		upd.ExtraAmountPaidInc = alloc.Extra
		upd.PaidAmountInc = amount
		upd.DriverEvent = &event
	}

	updated, err := s.Repo.ApplyLedgerUpdate(selectionID, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NewNotFoundError("plan selection", selectionID)
	}

	s.logger().Info("driver payment confirmed",
		zap.String("selectionId", selectionID),
		zap.Float64("amount", amount),
		zap.String("mode", string(req.Mode)))
	s.emit(models.EventDriverPayment, updated, amount, req.Type)
	return s.snapshot(updated, now), nil
}
