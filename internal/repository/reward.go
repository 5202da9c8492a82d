package repository

import (
	"context"
	"fmt"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository/dao"
)

type RewardDAO interface {
	Insert(ctx context.Context, entry dao.RewardEntry) (dao.RewardEntry, error)
	FindByAccountID(ctx context.Context, accountID string) ([]dao.RewardEntry, error)
}

// RewardRepository is the reward ledger. Recording an entry is the
// disbursement.
type RewardRepository struct {
	dao RewardDAO
}

func NewRewardRepository(dao RewardDAO) *RewardRepository {
	return &RewardRepository{
		dao: dao,
	}
}

func (r *RewardRepository) Disburse(ctx context.Context, entry domain.RewardEntry) (domain.RewardEntry, error) {
	created, err := r.dao.Insert(ctx, dao.RewardEntry{
		AccountID:  entry.AccountID,
		TokenID:    entry.TokenID,
		InstanceID: entry.InstanceID,
		PlotIndex:  entry.PlotIndex,
		Amount:     entry.Amount,
	})
	if err != nil {
		return domain.RewardEntry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RewardRepository) FindByAccountID(ctx context.Context, accountID string) ([]domain.RewardEntry, error) {
	found, err := r.dao.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAccountID -> %w", err)
	}

	entries := make([]domain.RewardEntry, len(found))
	for i, e := range found {
		entries[i] = r.daoToDomain(e)
	}

	return entries, nil
}

func (r *RewardRepository) daoToDomain(e dao.RewardEntry) domain.RewardEntry {
	return domain.RewardEntry{
		ID:         e.ID,
		AccountID:  e.AccountID,
		TokenID:    e.TokenID,
		InstanceID: e.InstanceID,
		PlotIndex:  e.PlotIndex,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}
