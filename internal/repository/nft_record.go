package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository/dao"
)

var (
	ErrNFTRecordExists   = dao.ErrNFTRecordExists
	ErrNFTRecordNotFound = dao.ErrNFTRecordNotFound
)

type NFTRecordDAO interface {
	Insert(ctx context.Context, record dao.NFTRecord) (dao.NFTRecord, error)
	FindAll(ctx context.Context) ([]dao.NFTRecord, error)
	Delete(ctx context.Context, id string) error
}

type NFTRecordRepository struct {
	dao NFTRecordDAO
}

func NewNFTRecordRepository(dao NFTRecordDAO) *NFTRecordRepository {
	return &NFTRecordRepository{
		dao: dao,
	}
}

func (r *NFTRecordRepository) Create(ctx context.Context, record domain.NFTRecord) (domain.NFTRecord, error) {
	row := dao.NFTRecord{
		ID:          record.ID,
		TokenID:     record.TokenID,
		TokenName:   record.TokenName,
		TokenSymbol: record.TokenSymbol,
		TokenMemo:   record.TokenMemo,
		TokenType:   record.TokenType,
		SupplyType:  record.SupplyType,
	}
	if record.Metadata != nil {
		b, err := json.Marshal(record.Metadata)
		if err != nil {
			return domain.NFTRecord{}, fmt.Errorf("json.Marshal -> %w", err)
		}
		row.Metadata = b
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.NFTRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *NFTRecordRepository) FindAll(ctx context.Context) ([]domain.NFTRecord, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	records := make([]domain.NFTRecord, len(found))
	for i, rec := range found {
		records[i] = r.daoToDomain(rec)
	}

	return records, nil
}

func (r *NFTRecordRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NFTRecordRepository) daoToDomain(rec dao.NFTRecord) domain.NFTRecord {
	out := domain.NFTRecord{
		ID:          rec.ID,
		TokenID:     rec.TokenID,
		TokenName:   rec.TokenName,
		TokenSymbol: rec.TokenSymbol,
		TokenMemo:   rec.TokenMemo,
		TokenType:   rec.TokenType,
		SupplyType:  rec.SupplyType,
		CreatedAt:   rec.CreatedAt,
	}
	if len(rec.Metadata) > 0 {
		var md domain.Metadata
		if err := json.Unmarshal(rec.Metadata, &md); err != nil {
			zap.L().Warn("dropping undecodable nft record metadata", zap.String("id", rec.ID), zap.Error(err))
		} else {
			out.Metadata = &md
		}
	}

	return out
}
