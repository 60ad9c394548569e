package ledger

import (
	"context"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordAdminPayment records an admin payment and/or charge edits. Charges
// are applied before the allocation runs, so a payment submitted together
// with a new extra amount can cover it. Everything lands in one atomic
// update.
func (s *DefaultLedgerService) RecordAdminPayment(ctx context.Context, selectionID string, req AdminPaymentRequest) (*Snapshot, error) {
	if err := validateAdminRequest(req); err != nil {
		return nil, err
	}

	sel, err := s.load(selectionID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var upd selectionRepo.LedgerUpdate

	// Work on a copy so charge edits are visible to the dues the allocator
	// sees, without mutating the loaded document.
	work := *sel
	if req.ExtraAmount != nil {
		work.ExtraAmount += *req.ExtraAmount
		upd.ExtraCharge = &models.AmountChange{Amount: *req.ExtraAmount, Reason: req.ExtraReason, Date: now}
	}
	if req.AdjustmentAmount != nil {
		work.AdjustmentAmount += *req.AdjustmentAmount
		upd.AdjustmentCredit = &models.AmountChange{Amount: *req.AdjustmentAmount, Reason: req.AdjustmentReason, Date: now}
	}

	var amount float64
	if req.Amount != nil {
		amount = *req.Amount
		declared := req.Type
		if declared == "" {
			declared = models.PaymentTypeTotal
		}
		alloc := Allocate(amount, declared, ComputeDues(&work, now))
		event := models.PaymentEvent{
			ID:                     uuid.New().String(),
			Amount:                 amount,
			Mode:                   adminMode(req.Mode),
			Type:                   declared,
			Channel:                models.ChannelAdmin,
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
		upd.AdminPaidAmountInc = amount
		upd.AdminEvent = &event
	}

	if req.PaymentStatus != "" {
		upd.SetPaymentStatus = req.PaymentStatus
	}
	if req.Mode != "" {
		upd.SetPaymentMode = req.Mode
	} else if sel.PaymentMode == "" && req.Amount != nil {
		upd.SetPaymentMode = models.PaymentModeCash
	}
	// An earlier channel's payment date is never overwritten.
	if sel.PaymentDate == nil && req.Amount != nil {
		upd.SetPaymentDate = &now
	}

	updated, err := s.Repo.ApplyLedgerUpdate(selectionID, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NewNotFoundError("plan selection", selectionID)
	}

	s.logger().Info("admin payment recorded",
		zap.String("selectionId", selectionID),
		zap.Float64("amount", amount),
		zap.String("type", string(req.Type)))
	if amount > 0 {
		s.emit(models.EventAdminPayment, updated, amount, req.Type)
	} else {
		s.emit(models.EventChargeApplied, updated, chargeTotal(req), "")
	}
	return s.snapshot(updated, now), nil
}

func validateAdminRequest(req AdminPaymentRequest) error {
	switch req.Type {
	case "", models.PaymentTypeSecurity, models.PaymentTypeRent, models.PaymentTypeTotal:
	default:
		return NewValidationError("adminPaymentType", "must be security, rent or total")
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return NewValidationError("adminPaidAmount", "must be a positive number")
	}
	if req.ExtraAmount != nil && *req.ExtraAmount <= 0 {
		return NewValidationError("extraAmount", "must be a positive number")
	}
	if req.AdjustmentAmount != nil && *req.AdjustmentAmount <= 0 {
		return NewValidationError("adjustmentAmount", "must be a positive number")
	}
	switch req.PaymentStatus {
	case "", models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
	default:
		return NewValidationError("paymentStatus", "must be pending, completed or failed")
	}
	switch req.Mode {
	case "", models.PaymentModeCash, models.PaymentModeOnline:
	default:
		return NewValidationError("paymentMode", "must be cash or online")
	}
	if req.Amount == nil && req.ExtraAmount == nil && req.AdjustmentAmount == nil && req.PaymentStatus == "" {
		return NewValidationError("", "request carries no payment, charge or status change")
	}
	return nil
}

func adminMode(mode models.PaymentMode) models.PaymentMode {
	if mode == "" {
		return models.PaymentModeCash
	}
	return mode
}

func chargeTotal(req AdminPaymentRequest) float64 {
	var total float64
	if req.ExtraAmount != nil {
		total += *req.ExtraAmount
	}
	if req.AdjustmentAmount != nil {
		total += *req.AdjustmentAmount
	}
	return total
}
