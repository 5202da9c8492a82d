package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type RewardEntry struct {
	ID uint `gorm:"primaryKey"`

	AccountID  string  `gorm:"index;not null"`
	TokenID    string  `gorm:"not null"`
	InstanceID string  `gorm:"not null"`
	PlotIndex  int     `gorm:"not null"`
	Amount     float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type RewardDAO struct {
	db *gorm.DB
}

func NewRewardDAO(db *gorm.DB) *RewardDAO {
	return &RewardDAO{
		db: db,
	}
}

func (d *RewardDAO) Insert(ctx context.Context, entry RewardEntry) (RewardEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return RewardEntry{}, result.Error
	}

	return entry, nil
}

// FindByAccountID returns the account's entries, newest first.
func (d *RewardDAO) FindByAccountID(ctx context.Context, accountID string) ([]RewardEntry, error) {
	var entries []RewardEntry

	result := d.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
