package models

// AuditLog records user mutations of profile and goal documents.
type AuditLog struct {
	Base         `bson:",inline"`
	UserID       string `gorm:"not null;index" bson:"user_id" json:"user_id"`
	Action       string `gorm:"not null" bson:"action" json:"action"`
	ResourceType string `gorm:"not null" bson:"resource_type" json:"resource_type"`
	ResourceID   string `bson:"resource_id" json:"resource_id"`
	IPAddress    string `bson:"ip_address" json:"ip_address"`
	Changes      string `bson:"changes,omitempty" json:"changes,omitempty"`
}
