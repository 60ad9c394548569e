package driverRepo

import "fleetdesk/models"

// DriverRepository defines methods for driver data access. Lookup methods
// return (nil, nil) when no document matches.
type DriverRepository interface {
	// GetByID retrieves a driver by its unique ID.
	GetByID(id string) (*models.Driver, error)
	// GetByMobile retrieves a driver by mobile number.
	GetByMobile(mobile string) (*models.Driver, error)
	// Create inserts a new driver record.
	Create(driver *models.Driver) error
	// UpdateFCMToken replaces the driver's push token.
	UpdateFCMToken(id, token string) error
}
