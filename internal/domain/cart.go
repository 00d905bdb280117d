package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is unique per (user, image); re-adding the same image overwrites
// the stored link and refreshes UpdatedAt instead of duplicating the row.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(50);not null;index:idx_cart_user;uniqueIndex:idx_cart_user_image" json:"user_id"`
	ImageID   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_user_image" json:"image_id"`
	Link      *string   `gorm:"type:varchar(500)" json:"link,omitempty"`
	UpdatedAt time.Time `gorm:"column:update_at;not null;index" json:"update_at"`
}

func (CartItem) TableName() string { return "cart" }
