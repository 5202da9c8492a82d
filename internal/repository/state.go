package repository

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lukechampine.com/blake3"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository/dao"
)

var (
	ErrStateNotFound = dao.ErrStateNotFound
	ErrStateCorrupt  = errors.New("stored staking state cannot be decoded")
)

type StateDAO interface {
	Upsert(ctx context.Context, state dao.StakingState) error
	FindByAccountID(ctx context.Context, accountID string) (dao.StakingState, error)
}

// StateRepository persists staking states in postgres.
type StateRepository struct {
	dao StateDAO
}

func NewStateRepository(dao StateDAO) *StateRepository {
	return &StateRepository{
		dao: dao,
	}
}

func (r *StateRepository) Load(ctx context.Context, accountID string) (domain.StakingState, error) {
	found, err := r.dao.FindByAccountID(ctx, accountID)
	if err != nil {
		return domain.StakingState{}, fmt.Errorf("r.dao.FindByAccountID -> %w", err)
	}

	state, err := r.daoToDomain(found)
	if err != nil {
		return domain.StakingState{}, fmt.Errorf("r.daoToDomain -> %w", err)
	}

	return state, nil
}

func (r *StateRepository) Save(ctx context.Context, accountID string, state domain.StakingState) error {
	row, err := r.domainToDAO(accountID, state)
	if err != nil {
		return fmt.Errorf("r.domainToDAO -> %w", err)
	}

	if err = r.dao.Upsert(ctx, row); err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *StateRepository) daoToDomain(row dao.StakingState) (domain.StakingState, error) {
	state := domain.StakingState{Version: row.Version}
	if err := json.Unmarshal(row.Tokens, &state.Tokens); err != nil {
		return domain.StakingState{}, fmt.Errorf("%w: tokens: %v", ErrStateCorrupt, err)
	}
	if err := json.Unmarshal(row.LandInstances, &state.LandInstances); err != nil {
		return domain.StakingState{}, fmt.Errorf("%w: land instances: %v", ErrStateCorrupt, err)
	}

	return state, nil
}

func (r *StateRepository) domainToDAO(accountID string, state domain.StakingState) (dao.StakingState, error) {
	state = normalize(state)
	tokens, err := json.Marshal(state.Tokens)
	if err != nil {
		return dao.StakingState{}, err
	}
	lands, err := json.Marshal(state.LandInstances)
	if err != nil {
		return dao.StakingState{}, err
	}

	return dao.StakingState{
		AccountID:     accountID,
		Tokens:        tokens,
		LandInstances: lands,
		Version:       state.Version,
		Digest:        Digest(state),
		UpdatedAt:     time.Now(),
	}, nil
}

// Digest is a stable blake3 fingerprint of a state, used as its ETag.
func Digest(state domain.StakingState) string {
	b, err := json.Marshal(normalize(state))
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// normalize makes nil and empty slices encode the same way.
func normalize(state domain.StakingState) domain.StakingState {
	if state.Tokens == nil {
		state.Tokens = []domain.Token{}
	}
	if state.LandInstances == nil {
		state.LandInstances = []domain.LandInstance{}
	}
	return state
}
