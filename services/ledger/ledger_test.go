package ledger

import (
	"sync"
	"time"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"
)

// fakeSelectionRepo mirrors the MongoDB repository's update semantics in
// memory so service behavior can be exercised without a database.
type fakeSelectionRepo struct {
	mu         sync.Mutex
	selections map[string]*models.PlanSelection
	txns       map[string]bool
}

func newFakeRepo(selections ...*models.PlanSelection) *fakeSelectionRepo {
	r := &fakeSelectionRepo{
		selections: make(map[string]*models.PlanSelection),
		txns:       make(map[string]bool),
	}
	for _, s := range selections {
		cp := *s
		r.selections[s.ID] = &cp
	}
	return r
}

func (r *fakeSelectionRepo) Create(sel *models.PlanSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sel
	r.selections[sel.ID] = &cp
	return nil
}

func (r *fakeSelectionRepo) GetByID(id string) (*models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sel, ok := r.selections[id]
	if !ok {
		return nil, nil
	}
	cp := *sel
	return &cp, nil
}

func (r *fakeSelectionRepo) GetActiveByDriver(driverID string) (*models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sel := range r.selections {
		if sel.DriverID == driverID && sel.Status != models.SelectionCompleted {
			cp := *sel
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSelectionRepo) GetActiveByMobile(mobile string) (*models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sel := range r.selections {
		if sel.DriverMobile == mobile && sel.Status != models.SelectionCompleted {
			cp := *sel
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSelectionRepo) GetAllByDriver(driverID string) ([]models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PlanSelection
	for _, sel := range r.selections {
		if sel.DriverID == driverID {
			out = append(out, *sel)
		}
	}
	return out, nil
}

func (r *fakeSelectionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selections, id)
	return nil
}

func (r *fakeSelectionRepo) ApplyLedgerUpdate(id string, upd selectionRepo.LedgerUpdate) (*models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sel, ok := r.selections[id]
	if !ok {
		return nil, nil
	}
	sel.DepositPaid += upd.DepositPaidInc
	sel.RentPaid += upd.RentPaidInc
	sel.AccidentalCoverPaid += upd.AccidentalCoverPaidInc
	sel.ExtraAmountPaid += upd.ExtraAmountPaidInc
	sel.PaidAmount += upd.PaidAmountInc
	sel.AdminPaidAmount += upd.AdminPaidAmountInc
	if upd.ExtraCharge != nil {
		sel.ExtraAmount += upd.ExtraCharge.Amount
		sel.ExtraHistory = append(sel.ExtraHistory, *upd.ExtraCharge)
	}
	if upd.AdjustmentCredit != nil {
		sel.AdjustmentAmount += upd.AdjustmentCredit.Amount
		sel.AdjustmentHistory = append(sel.AdjustmentHistory, *upd.AdjustmentCredit)
	}
	if upd.DriverEvent != nil {
		sel.DriverPayments = append(sel.DriverPayments, *upd.DriverEvent)
	}
	if upd.AdminEvent != nil {
		sel.AdminPayments = append(sel.AdminPayments, *upd.AdminEvent)
	}
	if upd.SetPaymentStatus != "" {
		sel.PaymentStatus = upd.SetPaymentStatus
	}
	if upd.SetPaymentMode != "" {
		sel.PaymentMode = upd.SetPaymentMode
	}
	if upd.SetPaymentDate != nil {
		d := *upd.SetPaymentDate
		sel.PaymentDate = &d
	}
	sel.UpdatedAt = time.Now()
	cp := *sel
	return &cp, nil
}

func (r *fakeSelectionRepo) TransitionStatus(id string, from []models.SelectionStatus, upd selectionRepo.StatusUpdate) (*models.PlanSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sel, ok := r.selections[id]
	if !ok {
		return nil, nil
	}
	if len(from) > 0 {
		matched := false
		for _, st := range from {
			if sel.Status == st {
				matched = true
				break
			}
		}
		if !matched {
			return nil, selectionRepo.ErrStatusConflict
		}
	}
	sel.Status = upd.Status
	if upd.SetRentStartDate != nil {
		d := *upd.SetRentStartDate
		sel.RentStartDate = &d
	}
	if upd.ClearRentStartDate {
		sel.RentStartDate = nil
	}
	if upd.SetRentPausedDate != nil {
		d := *upd.SetRentPausedDate
		sel.RentPausedDate = &d
	}
	if upd.ClearRentPausedDate {
		sel.RentPausedDate = nil
	}
	if upd.SetVehicleID != "" {
		sel.VehicleID = upd.SetVehicleID
	}
	sel.UpdatedAt = time.Now()
	cp := *sel
	return &cp, nil
}

func (r *fakeSelectionRepo) MarkGatewayTransaction(transactionID, selectionID string, amount float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txns[transactionID] {
		return false, nil
	}
	r.txns[transactionID] = true
	return true, nil
}

// day returns local midnight n days after a fixed base date.
func day(n int) time.Time {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	return base.AddDate(0, 0, n)
}

func newTestService(repo *fakeSelectionRepo, now time.Time) *DefaultLedgerService {
	svc := NewDefaultLedgerService(repo, nil, nil)
	svc.Now = func() time.Time { return now }
	return svc
}

func ptr(v float64) *float64 { return &v }

func activeSelection(id string, deposit, rentPerDay float64, start time.Time) *models.PlanSelection {
	s := start
	return &models.PlanSelection{
		ID:              id,
		DriverID:        "drv-1",
		DriverUsername:  "asif",
		DriverMobile:    "9900112233",
		PlanID:          "plan-1",
		PlanName:        "Weekly Standard",
		PlanType:        models.PlanTypeDaily,
		SecurityDeposit: deposit,
		RentPerDay:      rentPerDay,
		VehicleID:       "veh-1",
		SelectedDate:    start,
		RentStartDate:   &s,
		Status:          models.SelectionActive,
		PaymentStatus:   models.PaymentStatusPending,
		CreatedAt:       start,
	}
}
