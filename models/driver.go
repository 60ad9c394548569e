package models

import "time"

// Driver is the minimal account record the ledger surfaces need: identity for
// selection lookup, a password hash for login, and an FCM token for pushes.
type Driver struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Mobile       string    `bson:"mobile" json:"mobile"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
