package ledger

import (
	"math"

	"fleetdesk/models"
)

// Allocation is how one incoming payment splits across the four obligations.
// The portions always sum exactly to the paid amount.
type Allocation struct {
	Deposit         float64
	Rent            float64
	AccidentalCover float64
	Extra           float64
}

func (a Allocation) Total() float64 {
	return a.Deposit + a.Rent + a.AccidentalCover + a.Extra
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Allocate splits an incoming amount across obligations. An explicitly
// declared obligation takes the whole amount, over-payment included. An
// unspecified or "total" payment runs the fixed waterfall
// deposit → rent → accidental cover → extra; whatever survives all four dues
// lands on extra as over-payment, so the portions always reconcile with the
// amount paid.
func Allocate(amount float64, declared models.PaymentType, dues Dues) Allocation {
	switch declared {
	case models.PaymentTypeSecurity:
		return Allocation{Deposit: amount}
	case models.PaymentTypeRent:
		return Allocation{Rent: amount}
	}

	var a Allocation
	remaining := amount
	a.Deposit = math.Min(remaining, dues.Deposit)
	remaining -= a.Deposit
	a.Rent = math.Min(remaining, dues.Rent)
	remaining -= a.Rent
	a.AccidentalCover = math.Min(remaining, dues.AccidentalCover)
	remaining -= a.AccidentalCover
	a.Extra = remaining
	return a
}

// RescaleSplit reconciles a client-supplied deposit/rent split whose sum does
// not match the captured amount. Both components are scaled proportionally to
// two decimals, with the rent side absorbing the rounding remainder so the
// result sums exactly to amount. A degenerate zero split puts everything on
// rent.
func RescaleSplit(amount, depositPart, rentPart float64) (deposit, rent float64) {
	sum := depositPart + rentPart
	if sum == 0 {
		return 0, amount
	}
	deposit = round2(amount * depositPart / sum)
	rent = round2(amount - deposit)
	return deposit, rent
}
