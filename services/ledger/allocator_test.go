package ledger

import (
	"math"
	"testing"

	"fleetdesk/models"
)

func TestAllocateWaterfallOrder(t *testing.T) {
	dues := Dues{Deposit: 5000, Rent: 1500, AccidentalCover: 105, Extra: 300}

	tests := []struct {
		name   string
		amount float64
		want   Allocation
	}{
		{"covers deposit only partially", 3000, Allocation{Deposit: 3000}},
		{"spills into rent", 6000, Allocation{Deposit: 5000, Rent: 1000}},
		{"spills into cover", 6550, Allocation{Deposit: 5000, Rent: 1500, AccidentalCover: 50}},
		{"spills into extra", 6700, Allocation{Deposit: 5000, Rent: 1500, AccidentalCover: 105, Extra: 95}},
		{"overpayment lands on extra", 7500, Allocation{Deposit: 5000, Rent: 1500, AccidentalCover: 105, Extra: 895}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.amount, models.PaymentTypeTotal, dues)
			if got != tt.want {
				t.Errorf("Allocate(%v): got %+v, want %+v", tt.amount, got, tt.want)
			}
			if got.Total() != tt.amount {
				t.Errorf("Allocate(%v): portions sum to %v", tt.amount, got.Total())
			}
		})
	}
}

func TestAllocateUnspecifiedRunsWaterfall(t *testing.T) {
	dues := Dues{Deposit: 100, Rent: 200}
	got := Allocate(250, "", dues)
	want := Allocation{Deposit: 100, Rent: 150}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAllocateExplicitObligation(t *testing.T) {
	dues := Dues{Deposit: 100, Rent: 200}

	// Explicit security takes everything, over-payment included.
	if got := Allocate(500, models.PaymentTypeSecurity, dues); got != (Allocation{Deposit: 500}) {
		t.Errorf("security: got %+v", got)
	}
	if got := Allocate(50, models.PaymentTypeRent, dues); got != (Allocation{Rent: 50}) {
		t.Errorf("rent: got %+v", got)
	}
}

func TestAllocatePortionsAlwaysSumToAmount(t *testing.T) {
	dues := Dues{Deposit: 333.33, Rent: 666.67, AccidentalCover: 105, Extra: 12.5}
	for _, amount := range []float64{0.01, 99.99, 333.33, 1000, 1117.5, 5000} {
		got := Allocate(amount, models.PaymentTypeTotal, dues)
		if math.Abs(got.Total()-amount) > 1e-9 {
			t.Errorf("amount %v: portions sum to %v", amount, got.Total())
		}
	}
}

func TestRescaleSplitReconcilesMismatchedClientSplit(t *testing.T) {
	// Client claims 300 deposit + 800 rent against a 1000 capture.
	dep, rent := RescaleSplit(1000, 300, 800)
	if dep != 272.73 {
		t.Errorf("deposit: got %v, want 272.73", dep)
	}
	if rent != 727.27 {
		t.Errorf("rent: got %v, want 727.27", rent)
	}
	if math.Abs(dep+rent-1000) > 1e-9 {
		t.Errorf("split sums to %v, want 1000", dep+rent)
	}
}

func TestRescaleSplitMatchingSplitUnchanged(t *testing.T) {
	dep, rent := RescaleSplit(1000, 300, 700)
	if dep != 300 || rent != 700 {
		t.Errorf("got %v/%v, want 300/700", dep, rent)
	}
}

func TestRescaleSplitZeroSplitGoesToRent(t *testing.T) {
	dep, rent := RescaleSplit(1000, 0, 0)
	if dep != 0 || rent != 1000 {
		t.Errorf("got %v/%v, want 0/1000", dep, rent)
	}
}
