package models

import "time"

// CartSlot holds one session's serialized cart. Payload is opaque to the database.
type CartSlot struct {
	SlotKey   string     `gorm:"column:slot_key;primaryKey"`
	Payload   string     `gorm:"column:payload;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (CartSlot) TableName() string {
	return "cart_slots"
}

// Expired reports whether the slot outlived its TTL at the given instant.
func (c CartSlot) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
