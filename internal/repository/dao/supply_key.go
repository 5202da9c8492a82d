package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSupplyKeyNotFound = errors.New("supply key not found")

// supplyKeyID pins the table to a single row.
const supplyKeyID = 1

type SupplyKey struct {
	ID uint `gorm:"primaryKey"`

	Sealed []byte `gorm:"not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type SupplyKeyDAO struct {
	db *gorm.DB
}

func NewSupplyKeyDAO(db *gorm.DB) *SupplyKeyDAO {
	return &SupplyKeyDAO{
		db: db,
	}
}

func (d *SupplyKeyDAO) Upsert(ctx context.Context, sealed []byte) error {
	key := SupplyKey{ID: supplyKeyID, Sealed: sealed}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sealed", "updated_at"}),
	}).Create(&key)

	return result.Error
}

func (d *SupplyKeyDAO) Find(ctx context.Context) (SupplyKey, error) {
	var key SupplyKey

	result := d.db.WithContext(ctx).First(&key, supplyKeyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SupplyKey{}, ErrSupplyKeyNotFound
		}

		return SupplyKey{}, result.Error
	}

	return key, nil
}
