package repository

import (
	"context"
	"fmt"

	"github.com/omnia-labs/omnia-api/internal/repository/dao"
)

var ErrSupplyKeyNotFound = dao.ErrSupplyKeyNotFound

type SupplyKeyDAO interface {
	Upsert(ctx context.Context, sealed []byte) error
	Find(ctx context.Context) (dao.SupplyKey, error)
}

// SupplyKeyRepository stores the sealed supply key. It never sees the
// plaintext.
type SupplyKeyRepository struct {
	dao SupplyKeyDAO
}

func NewSupplyKeyRepository(dao SupplyKeyDAO) *SupplyKeyRepository {
	return &SupplyKeyRepository{
		dao: dao,
	}
}

func (r *SupplyKeyRepository) Save(ctx context.Context, sealed []byte) error {
	if err := r.dao.Upsert(ctx, sealed); err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *SupplyKeyRepository) Find(ctx context.Context) ([]byte, error) {
	found, err := r.dao.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return found.Sealed, nil
}
