package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrStateNotFound = errors.New("staking state not found")

// StakingState is one account's persisted board. Tokens and LandInstances
// hold the JSON encodings of the domain slices.
type StakingState struct {
	AccountID string `gorm:"primaryKey"`

	Tokens        []byte `gorm:"type:jsonb;not null"`
	LandInstances []byte `gorm:"type:jsonb;not null"`
	Version       uint64 `gorm:"not null"`
	Digest        string `gorm:"not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type StateDAO struct {
	db *gorm.DB
}

func NewStateDAO(db *gorm.DB) *StateDAO {
	return &StateDAO{
		db: db,
	}
}

// Upsert writes the row for state.AccountID, replacing any previous one.
func (d *StateDAO) Upsert(ctx context.Context, state StakingState) error {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tokens", "land_instances", "version", "digest", "updated_at"}),
	}).Create(&state)

	return result.Error
}

func (d *StateDAO) FindByAccountID(ctx context.Context, accountID string) (StakingState, error) {
	var state StakingState

	result := d.db.WithContext(ctx).First(&state, "account_id = ?", accountID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StakingState{}, ErrStateNotFound
		}

		return StakingState{}, result.Error
	}

	return state, nil
}
