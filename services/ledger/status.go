package ledger

import (
	"time"

	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"
)

// ClockPolicy names what happens to the accrual clock across a pause/resume
// cycle. The back office has always cleared the start stamp on deactivation,
// so every reactivation bills as a fresh rental period; the resume policy is
// the togglable alternative that keeps the original start.
type ClockPolicy string

const (
	ClockPolicyResetOnPause       ClockPolicy = "reset_on_pause"
	ClockPolicyResumeOnReactivate ClockPolicy = "resume_on_reactivate"
)

// planActivation computes the field effects of moving a selection to active.
// An activation without a surviving start stamp starts the accrual clock at
// now; the paused stamp is always cleared. Whether a stamp survived a pause
// is decided by the clock policy at deactivation time.
func planActivation(sel *models.PlanSelection, now time.Time) selectionRepo.StatusUpdate {
	upd := selectionRepo.StatusUpdate{
		Status:              models.SelectionActive,
		ClearRentPausedDate: true,
	}
	if sel.RentStartDate == nil {
		upd.SetRentStartDate = &now
	}
	return upd
}

// planDeactivation computes the field effects of pausing a selection. Under
// the reset policy the start stamp is cleared, so the elapsed-day clock
// restarts from zero on the next activation.
func planDeactivation(sel *models.PlanSelection, now time.Time, policy ClockPolicy) selectionRepo.StatusUpdate {
	upd := selectionRepo.StatusUpdate{
		Status:            models.SelectionInactive,
		SetRentPausedDate: &now,
	}
	if policy != ClockPolicyResumeOnReactivate {
		upd.ClearRentStartDate = true
	}
	return upd
}
