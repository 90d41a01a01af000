package models

import "time"

// Account is a credential record held by the built-in auth provider. It is
// separate from UserProfile: the provider owns identity, the dashboard owns
// the profile document.
type Account struct {
	UID                 string     `gorm:"primaryKey;size:128" bson:"_id" json:"uid"`
	Email               string     `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash        string     `gorm:"not null" bson:"password_hash" json:"-"`
	DisplayName         string     `bson:"display_name" json:"display_name"`
	PhotoURL            string     `bson:"photo_url" json:"photo_url"`
	FailedLoginAttempts int        `gorm:"default:0" bson:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `bson:"locked_until,omitempty" json:"-"`
	LastLoginAt         *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt           time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at" json:"updated_at"`
}
