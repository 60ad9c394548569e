package models

import "time"

// RentSlab is one selectable rent tier within a plan. The slab's values are
// copied onto the PlanSelection at selection time; the slab itself may be
// edited afterwards without affecting existing selections.
type RentSlab struct {
	Label           string  `bson:"label" json:"label"`
	RentPerDay      float64 `bson:"rentPerDay" json:"rentPerDay"`
	SecurityDeposit float64 `bson:"securityDeposit" json:"securityDeposit"`
}

// RentalPlan is a catalog entry drivers choose from.
type RentalPlan struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Type      PlanType   `bson:"type" json:"type"`
	Slabs     []RentSlab `bson:"slabs" json:"slabs"`
	Active    bool       `bson:"active" json:"active"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
