package models

import "time"

// Plan cadence. Weekly plans carry the fixed accidental cover; daily plans do not.
type PlanType string

const (
	PlanTypeWeekly PlanType = "weekly"
	PlanTypeDaily  PlanType = "daily"
)

// SelectionStatus is the lifecycle state of a plan selection.
// Completed is terminal and only ever set by explicit admin action.
type SelectionStatus string

const (
	SelectionActive    SelectionStatus = "active"
	SelectionInactive  SelectionStatus = "inactive"
	SelectionCompleted SelectionStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

// PaymentType is the obligation a payer declares a payment against.
// Empty means unspecified and is treated like PaymentTypeTotal.
type PaymentType string

const (
	PaymentTypeSecurity PaymentType = "security"
	PaymentTypeRent     PaymentType = "rent"
	PaymentTypeTotal    PaymentType = "total"
)

// PaymentChannel records which entry point appended a payment event.
type PaymentChannel string

const (
	ChannelDriver  PaymentChannel = "driver"
	ChannelAdmin   PaymentChannel = "admin"
	ChannelGateway PaymentChannel = "gateway"
)

// AmountChange is one append-only history entry for a variable obligation
// (extra amount or adjustment credit).
type AmountChange struct {
	Amount float64   `bson:"amount" json:"amount"`
	Reason string    `bson:"reason" json:"reason"`
	Date   time.Time `bson:"date" json:"date"`
}

// PaymentEvent is one immutable entry in a selection's payment history.
// The four portion fields always sum to Amount.
type PaymentEvent struct {
	ID                     string         `bson:"id" json:"id"`
	Amount                 float64        `bson:"amount" json:"amount"`
	Mode                   PaymentMode    `bson:"mode" json:"mode"`
	Type                   PaymentType    `bson:"type,omitempty" json:"type,omitempty"`
	Channel                PaymentChannel `bson:"channel" json:"channel"`
	GatewayTransactionID   string         `bson:"gatewayTransactionId,omitempty" json:"gatewayTransactionId,omitempty"`
	DepositPortion         float64        `bson:"depositPortion" json:"depositPortion"`
	RentPortion            float64        `bson:"rentPortion" json:"rentPortion"`
	AccidentalCoverPortion float64        `bson:"accidentalCoverPortion" json:"accidentalCoverPortion"`
	ExtraPortion           float64        `bson:"extraPortion" json:"extraPortion"`
	Date                   time.Time      `bson:"date" json:"date"`
}

// PlanSelection is the persisted record of one driver's chosen rental plan
// and its running financial state. Plan terms (RentPerDay, SecurityDeposit)
// are snapshotted from the plan slab at selection time and never recomputed,
// even if the underlying plan changes later.
type PlanSelection struct {
	ID string `bson:"id" json:"id"`

	// DriverID may be empty when the selection precedes full registration;
	// DriverMobile is the denormalized lookup fallback for that case.
	DriverID       string `bson:"driverId,omitempty" json:"driverId,omitempty"`
	DriverUsername string `bson:"driverUsername" json:"driverUsername"`
	DriverMobile   string `bson:"driverMobile" json:"driverMobile"`

	PlanID          string   `bson:"planId" json:"planId"`
	PlanName        string   `bson:"planName" json:"planName"`
	PlanType        PlanType `bson:"planType" json:"planType"`
	SecurityDeposit float64  `bson:"securityDeposit" json:"securityDeposit"`
	RentPerDay      float64  `bson:"rentPerDay" json:"rentPerDay"`

	VehicleID string `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`

	SelectedDate   time.Time  `bson:"selectedDate" json:"selectedDate"`
	RentStartDate  *time.Time `bson:"rentStartDate,omitempty" json:"rentStartDate,omitempty"`
	RentPausedDate *time.Time `bson:"rentPausedDate,omitempty" json:"rentPausedDate,omitempty"`

	Status SelectionStatus `bson:"status" json:"status"`

	// Cumulative ledger totals. Mutated only through atomic increments in the
	// selection repository, never by whole-document rewrites.
	DepositPaid         float64 `bson:"depositPaid" json:"depositPaid"`
	RentPaid            float64 `bson:"rentPaid" json:"rentPaid"`
	ExtraAmountPaid     float64 `bson:"extraAmountPaid" json:"extraAmountPaid"`
	AccidentalCoverPaid float64 `bson:"accidentalCoverPaid" json:"accidentalCoverPaid"`
	PaidAmount          float64 `bson:"paidAmount" json:"paidAmount"`
	AdminPaidAmount     float64 `bson:"adminPaidAmount" json:"adminPaidAmount"`

	// Variable obligations with append-only reasoned histories.
	ExtraAmount        float64        `bson:"extraAmount" json:"extraAmount"`
	ExtraHistory       []AmountChange `bson:"extraHistory,omitempty" json:"extraHistory,omitempty"`
	AdjustmentAmount   float64        `bson:"adjustmentAmount" json:"adjustmentAmount"`
	AdjustmentHistory  []AmountChange `bson:"adjustmentHistory,omitempty" json:"adjustmentHistory,omitempty"`

	DriverPayments []PaymentEvent `bson:"driverPayments,omitempty" json:"driverPayments,omitempty"`
	AdminPayments  []PaymentEvent `bson:"adminPayments,omitempty" json:"adminPayments,omitempty"`

	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDate   *time.Time    `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentMode   PaymentMode   `bson:"paymentMode,omitempty" json:"paymentMode,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
