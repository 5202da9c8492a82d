package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNFTRecordExists   = errors.New("nft record already exists")
	ErrNFTRecordNotFound = errors.New("nft record not found")
)

type NFTRecord struct {
	ID string `gorm:"primaryKey"`

	TokenID     string `gorm:"unique;not null"`
	TokenName   string `gorm:"not null"`
	TokenSymbol string `gorm:"not null"`
	TokenMemo   string `gorm:"not null"`
	TokenType   string `gorm:"not null"` // "NFT" or "FT"
	SupplyType  string `gorm:"not null"` // "Infinite" or "Finite"
	Metadata    []byte `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
}

type NFTRecordDAO struct {
	db *gorm.DB
}

func NewNFTRecordDAO(db *gorm.DB) *NFTRecordDAO {
	return &NFTRecordDAO{
		db: db,
	}
}

func (d *NFTRecordDAO) Insert(ctx context.Context, record NFTRecord) (NFTRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_nft_records_token_id"`) {
			return NFTRecord{}, ErrNFTRecordExists
		}

		return NFTRecord{}, result.Error
	}

	return record, nil
}

func (d *NFTRecordDAO) FindAll(ctx context.Context) ([]NFTRecord, error) {
	var records []NFTRecord

	result := d.db.WithContext(ctx).Order("created_at ASC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *NFTRecordDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&NFTRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNFTRecordNotFound
	}

	return nil
}
