package planRepo

import "fleetdesk/models"

// PlanRepository defines methods for rental plan catalog access.
type PlanRepository interface {
	// GetByID retrieves a plan by its unique ID; (nil, nil) when absent.
	GetByID(id string) (*models.RentalPlan, error)
	// GetAllActive retrieves all plans currently offered.
	GetAllActive() ([]models.RentalPlan, error)
	// Create inserts a new plan record.
	Create(plan *models.RentalPlan) error
}
