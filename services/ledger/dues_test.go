package ledger

import (
	"testing"

	"fleetdesk/models"
)

func TestComputeDuesBreakdown(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	sel.PlanType = models.PlanTypeWeekly
	sel.DepositPaid = 2000
	sel.RentPaid = 400
	sel.ExtraAmount = 300
	sel.ExtraAmountPaid = 100

	d := ComputeDues(sel, day(2)) // 3 days accrued, rent 1500

	if d.Deposit != 3000 {
		t.Errorf("deposit due: got %v, want 3000", d.Deposit)
	}
	if d.Rent != 1100 {
		t.Errorf("rent due: got %v, want 1100", d.Rent)
	}
	if d.AccidentalCover != WeeklyAccidentalCover {
		t.Errorf("cover due: got %v, want %v", d.AccidentalCover, WeeklyAccidentalCover)
	}
	if d.Extra != 200 {
		t.Errorf("extra due: got %v, want 200", d.Extra)
	}
	if d.TotalPayable != 3000+1100+105+200 {
		t.Errorf("total payable: got %v", d.TotalPayable)
	}
}

func TestComputeDuesNoCoverOnDailyPlans(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	sel.PlanType = models.PlanTypeDaily

	if d := ComputeDues(sel, day(0)); d.AccidentalCover != 0 {
		t.Errorf("cover due on daily plan: got %v, want 0", d.AccidentalCover)
	}
}

func TestComputeDuesFloorsNegativesIndependently(t *testing.T) {
	// Deposit over-paid by 1000; that surplus must not bleed into rent.
	sel := activeSelection("sel-1", 5000, 500, day(0))
	sel.DepositPaid = 6000

	d := ComputeDues(sel, day(0))
	if d.Deposit != 0 {
		t.Errorf("deposit due: got %v, want 0", d.Deposit)
	}
	if d.Rent != 500 {
		t.Errorf("rent due: got %v, want 500", d.Rent)
	}
	if d.TotalPayable != 500 {
		t.Errorf("total payable: got %v, want 500", d.TotalPayable)
	}
}

func TestAdjustmentCreditsRentOnly(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	sel.AdjustmentAmount = 2000 // exceeds the 500 accrued so far

	d := ComputeDues(sel, day(0))
	if d.Rent != 0 {
		t.Errorf("rent due: got %v, want 0", d.Rent)
	}
	if d.Deposit != 5000 {
		t.Errorf("deposit due untouched by adjustment: got %v, want 5000", d.Deposit)
	}
}
