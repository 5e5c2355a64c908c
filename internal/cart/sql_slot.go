package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront/internal/repo"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSlots stores carts in the cart_slots table (postgres or sqlite).
type SQLSlots struct {
	repo.Base
	ttl time.Duration
	now func() time.Time
}

// NewSQLSlots builds the factory; ttl of zero keeps slots until cleared.
func NewSQLSlots(db *gorm.DB, ttl time.Duration) *SQLSlots {
	return &SQLSlots{Base: repo.NewBase(db), ttl: ttl, now: time.Now}
}

func (s *SQLSlots) Slot(sessionID string) Slot {
	return &sqlSlot{owner: s, key: sessionID}
}

type sqlSlot struct {
	owner *SQLSlots
	key   string
}

func (s *sqlSlot) Load(ctx context.Context) (string, bool, error) {
	var record models.CartSlot
	err := s.owner.DB(ctx).Where("slot_key = ?", s.key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if record.Expired(s.owner.now()) {
		return "", false, nil
	}
	return record.Payload, true, nil
}

func (s *sqlSlot) Save(ctx context.Context, payload string) error {
	now := s.owner.now().UTC()
	record := models.CartSlot{
		SlotKey:   s.key,
		Payload:   payload,
		UpdatedAt: now,
	}
	if s.owner.ttl > 0 {
		expires := now.Add(s.owner.ttl)
		record.ExpiresAt = &expires
	}
	return s.owner.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&record).Error
}

func (s *sqlSlot) Clear(ctx context.Context) error {
	return s.owner.DB(ctx).Where("slot_key = ?", s.key).Delete(&models.CartSlot{}).Error
}
