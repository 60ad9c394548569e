package ledger

import (
	"time"

	"fleetdesk/models"
)

// midnight normalizes a timestamp to local midnight so partial days count as
// whole billable days.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// effectiveStart resolves when accrual began for a selection. When the start
// stamp is missing but the selection is active with a vehicle assigned, the
// selection date (or creation date) stands in for it. Returns false when no
// accrual has started at all.
func effectiveStart(sel *models.PlanSelection) (time.Time, bool) {
	if sel.RentStartDate != nil {
		return *sel.RentStartDate, true
	}
	if sel.Status == models.SelectionActive && sel.VehicleID != "" {
		if !sel.SelectedDate.IsZero() {
			return sel.SelectedDate, true
		}
		return sel.CreatedAt, true
	}
	return time.Time{}, false
}

// effectiveEnd resolves the end of the billable window: the paused stamp for
// an inactive selection, otherwise asOf.
func effectiveEnd(sel *models.PlanSelection, asOf time.Time) time.Time {
	if sel.Status == models.SelectionInactive && sel.RentPausedDate != nil {
		return *sel.RentPausedDate
	}
	return asOf
}

// ElapsedDays returns the inclusive count of billable days as of the given
// time. The count is clamped to a minimum of 1 once accrual has started, so
// the first day always bills in full. Zero means accrual has not started.
func ElapsedDays(sel *models.PlanSelection, asOf time.Time) int {
	start, ok := effectiveStart(sel)
	if !ok {
		return 0
	}
	end := effectiveEnd(sel, asOf)
	days := int(midnight(end).Sub(midnight(start)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// RentAccrued returns the total rent obligation accrued as of the given time.
// Pure and recomputed on every read; never cached.
func RentAccrued(sel *models.PlanSelection, asOf time.Time) float64 {
	return float64(ElapsedDays(sel, asOf)) * sel.RentPerDay
}
