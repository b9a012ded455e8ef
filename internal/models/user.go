package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the guest identity created for each interview session.
// There is no authentication; one user row per started interview.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
