package models

import (
	"time"

	"finboard/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all per-user sub-documents
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.EnsureID()
	return nil
}

// EnsureID assigns a UUIDv7 when the record has no id yet. Stores that do not
// run gorm hooks call it directly before inserting.
func (b *Base) EnsureID() {
	if b.ID == "" {
		b.ID = uuid.New()
	}
}
