package ledger

import (
	"time"

	"fleetdesk/models"
)

// WeeklyAccidentalCover is the fixed per-slab accidental cover charged on
// weekly plans. Daily plans carry no cover.
const WeeklyAccidentalCover = 105.0

// Dues is the per-obligation outstanding breakdown at a point in time. Each
// component is floored at zero independently, so an over-payment on one
// obligation never offsets another.
type Dues struct {
	Deposit         float64 `json:"depositDue"`
	Rent            float64 `json:"rentDue"`
	AccidentalCover float64 `json:"accidentalCoverDue"`
	Extra           float64 `json:"extraAmountDue"`
	TotalPayable    float64 `json:"totalPayable"`
}

func accidentalCoverTotal(sel *models.PlanSelection) float64 {
	if sel.PlanType == models.PlanTypeWeekly {
		return WeeklyAccidentalCover
	}
	return 0
}

// ComputeDues returns the four outstanding obligations and their sum as of
// the given time. The adjustment amount credits rent only.
func ComputeDues(sel *models.PlanSelection, asOf time.Time) Dues {
	d := Dues{
		Deposit:         sel.SecurityDeposit - sel.DepositPaid,
		Rent:            RentAccrued(sel, asOf) - sel.RentPaid - sel.AdjustmentAmount,
		AccidentalCover: accidentalCoverTotal(sel) - sel.AccidentalCoverPaid,
		Extra:           sel.ExtraAmount - sel.ExtraAmountPaid,
	}
	if d.Deposit < 0 {
		d.Deposit = 0
	}
	if d.Rent < 0 {
		d.Rent = 0
	}
	if d.AccidentalCover < 0 {
		d.AccidentalCover = 0
	}
	if d.Extra < 0 {
		d.Extra = 0
	}
	d.TotalPayable = round2(d.Deposit + d.Rent + d.AccidentalCover + d.Extra)
	return d
}
