package selection

import (
	"context"
	"fmt"
	"time"

	planRepo "fleetdesk/database/repository/plan"
	selectionRepo "fleetdesk/database/repository/selection"
	"fleetdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSelectionRequest captures a driver's plan choice. DriverID may be
// empty when the selection is made before registration completes; the mobile
// number then serves as the lookup key.
type CreateSelectionRequest struct {
	DriverID       string `json:"driverId,omitempty"`
	DriverUsername string `json:"driverUsername"`
	DriverMobile   string `json:"driverMobile"`
	PlanID         string `json:"planId"`
	SlabLabel      string `json:"slabLabel,omitempty"`
}

// SelectionService manages the plan catalog side of selections: creation with
// slab-term snapshotting, lookups and deletion. Ledger mutations live in the
// ledger service.
type SelectionService interface {
	Create(ctx context.Context, req CreateSelectionRequest) (*models.PlanSelection, error)
	GetByID(ctx context.Context, id string) (*models.PlanSelection, error)
	ListForDriver(ctx context.Context, driverID string) ([]models.PlanSelection, error)
	Delete(ctx context.Context, id string) error
	ListPlans(ctx context.Context) ([]models.RentalPlan, error)
}

// DefaultSelectionService is the production implementation.
type DefaultSelectionService struct {
	Selections selectionRepo.SelectionRepository
	Plans      planRepo.PlanRepository
	Logger     *zap.Logger
}

// Create validates the request, enforces one open selection per driver and
// snapshots the chosen slab's terms onto the new selection. The snapshot is
// what keeps RentPerDay immutable for the life of the selection.
func (s *DefaultSelectionService) Create(ctx context.Context, req CreateSelectionRequest) (*models.PlanSelection, error) {
	if req.DriverMobile == "" {
		return nil, &RequestError{Field: "driverMobile", Message: "must not be empty"}
	}
	if req.PlanID == "" {
		return nil, &RequestError{Field: "planId", Message: "must not be empty"}
	}

	// One open selection per driver, enforced at query time.
	existing, err := s.findOpen(req)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateSelectionError{SelectionID: existing.ID}
	}

	plan, err := s.Plans.GetByID(req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, &RequestError{Field: "planId", Message: "plan not found or inactive"}
	}
	slab, err := pickSlab(plan, req.SlabLabel)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sel := &models.PlanSelection{
		ID:              uuid.New().String(),
		DriverID:        req.DriverID,
		DriverUsername:  req.DriverUsername,
		DriverMobile:    req.DriverMobile,
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		PlanType:        plan.Type,
		SecurityDeposit: slab.SecurityDeposit,
		RentPerDay:      slab.RentPerDay,
		SelectedDate:    now,
		Status:          models.SelectionActive,
		PaymentStatus:   models.PaymentStatusPending,
	}
	if err := s.Selections.Create(sel); err != nil {
		return nil, fmt.Errorf("failed to persist plan selection: %w", err)
	}

	s.logger().Info("plan selected",
		zap.String("selectionId", sel.ID),
		zap.String("planId", plan.ID),
		zap.String("slab", slab.Label),
		zap.String("mobile", req.DriverMobile))
	return sel, nil
}

func (s *DefaultSelectionService) findOpen(req CreateSelectionRequest) (*models.PlanSelection, error) {
	if req.DriverID != "" {
		return s.Selections.GetActiveByDriver(req.DriverID)
	}
	return s.Selections.GetActiveByMobile(req.DriverMobile)
}

func pickSlab(plan *models.RentalPlan, label string) (*models.RentSlab, error) {
	if len(plan.Slabs) == 0 {
		return nil, &RequestError{Field: "planId", Message: "plan has no rent slabs"}
	}
	if label == "" {
		return &plan.Slabs[0], nil
	}
	for i := range plan.Slabs {
		if plan.Slabs[i].Label == label {
			return &plan.Slabs[i], nil
		}
	}
	return nil, &RequestError{Field: "slabLabel", Message: "no such slab on plan"}
}

// GetByID retrieves one selection; (nil, nil) when absent.
func (s *DefaultSelectionService) GetByID(ctx context.Context, id string) (*models.PlanSelection, error) {
	return s.Selections.GetByID(id)
}

// ListForDriver retrieves a driver's selection history.
func (s *DefaultSelectionService) ListForDriver(ctx context.Context, driverID string) ([]models.PlanSelection, error) {
	return s.Selections.GetAllByDriver(driverID)
}

// Delete removes a selection entirely. Admin/driver explicit action only.
func (s *DefaultSelectionService) Delete(ctx context.Context, id string) error {
	return s.Selections.Delete(id)
}

// ListPlans returns the catalog drivers choose from.
func (s *DefaultSelectionService) ListPlans(ctx context.Context) ([]models.RentalPlan, error) {
	return s.Plans.GetAllActive()
}

func (s *DefaultSelectionService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
