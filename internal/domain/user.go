package domain

import (
	"time"
)

// User identities are minted by an external identity provider; this service
// only references them, so the primary key is the provider's opaque string.
type User struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserName  *string   `gorm:"type:varchar(100)" json:"user_name,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "users" }
