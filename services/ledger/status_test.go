package ledger

import (
	"testing"

	"fleetdesk/models"
)

func pendingSelection(id string) *models.PlanSelection {
	return &models.PlanSelection{
		ID:              id,
		DriverID:        "drv-1",
		PlanType:        models.PlanTypeDaily,
		SecurityDeposit: 5000,
		RentPerDay:      500,
		SelectedDate:    day(0),
		Status:          models.SelectionInactive,
		PaymentStatus:   models.PaymentStatusPending,
		CreatedAt:       day(0),
	}
}

func TestActivationStampsRentStart(t *testing.T) {
	repo := newFakeRepo(pendingSelection("sel-1"))
	svc := newTestService(repo, day(1))

	snap, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionActive)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got := snap.Selection
	if got.Status != models.SelectionActive {
		t.Errorf("status: got %q, want active", got.Status)
	}
	if got.RentStartDate == nil || !got.RentStartDate.Equal(day(1)) {
		t.Errorf("rentStartDate: got %v, want %v", got.RentStartDate, day(1))
	}
	if got.RentPausedDate != nil {
		t.Errorf("rentPausedDate not cleared: %v", got.RentPausedDate)
	}
}

func TestPauseClearsClockAndResumeRestartsIt(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	repo := newFakeRepo(sel)

	// Pause on day 4.
	svc := newTestService(repo, day(4))
	snap, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionInactive)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if snap.Selection.RentStartDate != nil {
		t.Errorf("rentStartDate survived pause: %v", snap.Selection.RentStartDate)
	}
	if snap.Selection.RentPausedDate == nil || !snap.Selection.RentPausedDate.Equal(day(4)) {
		t.Errorf("rentPausedDate: got %v, want %v", snap.Selection.RentPausedDate, day(4))
	}

	// Resume on day 10: the elapsed-day count restarts from the new stamp,
	// not the original day-0 start.
	svc = newTestService(repo, day(10))
	snap, err = svc.SetStatus(t.Context(), "sel-1", models.SelectionActive)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if snap.Selection.RentStartDate == nil || !snap.Selection.RentStartDate.Equal(day(10)) {
		t.Errorf("rentStartDate after resume: got %v, want %v", snap.Selection.RentStartDate, day(10))
	}
	if snap.Accrual.Days != 1 {
		t.Errorf("elapsed days after resume: got %d, want 1", snap.Accrual.Days)
	}
}

func TestResumePolicyKeepsOriginalStart(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	repo := newFakeRepo(sel)

	svc := newTestService(repo, day(4))
	svc.Policy = ClockPolicyResumeOnReactivate
	if _, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	svc = newTestService(repo, day(10))
	svc.Policy = ClockPolicyResumeOnReactivate
	snap, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionActive)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if snap.Selection.RentStartDate == nil || !snap.Selection.RentStartDate.Equal(day(0)) {
		t.Errorf("rentStartDate under resume policy: got %v, want %v", snap.Selection.RentStartDate, day(0))
	}
	if snap.Accrual.Days != 11 {
		t.Errorf("elapsed days under resume policy: got %d, want 11", snap.Accrual.Days)
	}
}

func TestStatusTransitionsNeverTouchTotals(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	sel.DepositPaid = 2000
	sel.RentPaid = 700
	sel.PaidAmount = 2700
	repo := newFakeRepo(sel)
	svc := newTestService(repo, day(4))

	if _, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, _ := repo.GetByID("sel-1")
	if got.DepositPaid != 2000 || got.RentPaid != 700 || got.PaidAmount != 2700 {
		t.Errorf("payment totals changed by transition: %+v", got)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	sel := activeSelection("sel-1", 5000, 500, day(0))
	repo := newFakeRepo(sel)
	svc := newTestService(repo, day(1))

	if _, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.SetStatus(t.Context(), "sel-1", models.SelectionActive); !IsConflict(err) {
		t.Errorf("reactivating completed selection: got %v, want conflict error", err)
	}
	if _, err := svc.AssignVehicle(t.Context(), "sel-1", "veh-9"); !IsConflict(err) {
		t.Errorf("assigning vehicle to completed selection: got %v, want conflict error", err)
	}
}

func TestAssignVehicleActivatesAndStampsStart(t *testing.T) {
	repo := newFakeRepo(pendingSelection("sel-1"))
	svc := newTestService(repo, day(2))

	snap, err := svc.AssignVehicle(t.Context(), "sel-1", "veh-7")
	if err != nil {
		t.Fatalf("AssignVehicle: %v", err)
	}
	got := snap.Selection
	if got.VehicleID != "veh-7" {
		t.Errorf("vehicleId: got %q, want veh-7", got.VehicleID)
	}
	if got.Status != models.SelectionActive {
		t.Errorf("status: got %q, want active", got.Status)
	}
	if got.RentStartDate == nil || !got.RentStartDate.Equal(day(2)) {
		t.Errorf("rentStartDate: got %v, want %v", got.RentStartDate, day(2))
	}

	// Re-assigning later must not restart the clock.
	svc = newTestService(repo, day(5))
	snap, err = svc.AssignVehicle(t.Context(), "sel-1", "veh-8")
	if err != nil {
		t.Fatalf("AssignVehicle: %v", err)
	}
	if !snap.Selection.RentStartDate.Equal(day(2)) {
		t.Errorf("rentStartDate moved on re-assignment: got %v", snap.Selection.RentStartDate)
	}
}

func TestSetStatusRejectsUnknownState(t *testing.T) {
	repo := newFakeRepo(pendingSelection("sel-1"))
	svc := newTestService(repo, day(0))

	if _, err := svc.SetStatus(t.Context(), "sel-1", "archived"); !IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
	if _, err := svc.SetStatus(t.Context(), "missing", models.SelectionActive); !IsNotFound(err) {
		t.Errorf("got %v, want not-found error", err)
	}
}
