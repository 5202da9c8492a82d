package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/staking"
)

type memStateRepo struct {
	mu      sync.Mutex
	states  map[string]domain.StakingState
	loadErr error
	saveErr error
	saves   int
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{states: map[string]domain.StakingState{}}
}

func (r *memStateRepo) Load(_ context.Context, accountID string) (domain.StakingState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return domain.StakingState{}, r.loadErr
	}
	state, ok := r.states[accountID]
	if !ok {
		return domain.StakingState{}, ErrStateNotFound
	}
	return state, nil
}

func (r *memStateRepo) Save(_ context.Context, accountID string, state domain.StakingState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.states[accountID] = state
	return nil
}

func (r *memStateRepo) saved(accountID string) (domain.StakingState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[accountID]
	return state, ok
}

type fakeFetcher struct {
	tokens  []domain.Token
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ string) ([]domain.Token, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.tokens, f.err
}

type memRewards struct {
	mu      sync.Mutex
	entries []domain.RewardEntry
	err     error
}

func (r *memRewards) Disburse(_ context.Context, entry domain.RewardEntry) (domain.RewardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.RewardEntry{}, r.err
	}
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *memRewards) FindByAccountID(_ context.Context, accountID string) ([]domain.RewardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RewardEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].AccountID == accountID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.StateEvent
}

func (p *recordingPublisher) Publish(evt domain.StateEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

const account = "0.0.1001"

func sampleTokens() []domain.Token {
	return []domain.Token{
		{TokenID: "0.0.10", Balance: 1, Metadata: domain.Metadata{Type: domain.CardLand, Name: "Meadow", Properties: map[string]any{
			"plots": float64(2), "allowed_stakes": []any{"Tree"},
		}}},
		{TokenID: "0.0.20", Balance: 3, Metadata: domain.Metadata{Type: domain.CardTree, Name: "Oak", Properties: map[string]any{
			"carbon_sequestration": float64(5),
		}}},
		{TokenID: "0.0.30", Balance: 2, Metadata: domain.Metadata{Type: domain.CardPeople, Name: "Farmer"}},
	}
}

func ids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("land-%d", n)
	}
}

func flush(t *testing.T, s *StakingService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestStakingService_Flow(t *testing.T) {
	repo := newMemStateRepo()
	rewards := &memRewards{}
	events := &recordingPublisher{}
	s := NewStakingService(repo,
		WithRewardRepository(rewards),
		WithEventPublisher(events),
		WithInstanceIDs(ids()),
	)
	ctx := context.Background()

	state, err := s.Connect(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, state.Tokens)

	state, _, err = s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Version)

	instanceID, state, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	assert.Equal(t, "land-1", instanceID)
	assert.Len(t, state.LandInstances, 1)

	candidates, err := s.Candidates(ctx, account, instanceID, 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "0.0.20", candidates[0].TokenID)

	result, _, err := s.Stake(ctx, account, instanceID, 0, "0.0.20", false)
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Reward)

	_, _, err = s.Stake(ctx, account, instanceID, 1, "0.0.30", false)
	assert.ErrorIs(t, err, ErrIncompatibleToken)

	result, state, err = s.Stake(ctx, account, instanceID, 1, "", true)
	require.NoError(t, err)
	assert.Equal(t, "0.0.20", result.TokenID)
	assert.Equal(t, uint64(4), state.Version)

	_, err = s.RemoveLand(ctx, account, instanceID)
	assert.ErrorIs(t, err, ErrLandInUse)

	flush(t, s)
	saved, ok := repo.saved(account)
	require.True(t, ok)
	assert.Equal(t, uint64(4), saved.Version)
	assert.Equal(t, "0.0.20", saved.LandInstances[0].Plots[1].TokenID)

	entries, err := s.Rewards(ctx, account)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 50.0, entries[0].Amount)

	events.mu.Lock()
	ops := make([]string, len(events.events))
	for i, e := range events.events {
		ops[i] = e.Operation
	}
	events.mu.Unlock()
	assert.Equal(t, []string{OpImport, OpPlaceLand, OpStake, OpStake}, ops)
}

func TestStakingService_UnstakeEmptyPlotDoesNotPersist(t *testing.T) {
	repo := newMemStateRepo()
	s := NewStakingService(repo, WithInstanceIDs(ids()))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	instanceID, _, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	flush(t, s)
	saves := repo.saves

	tokenID, changed, state, err := s.Unstake(ctx, account, instanceID, 0)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, tokenID)
	assert.Equal(t, uint64(2), state.Version)

	flush(t, s)
	assert.Equal(t, saves, repo.saves)
}

func TestStakingService_ResumesPersistedState(t *testing.T) {
	repo := newMemStateRepo()
	ctx := context.Background()

	first := NewStakingService(repo, WithInstanceIDs(ids()))
	_, _, err := first.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	instanceID, _, err := first.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	require.NoError(t, first.Disconnect(ctx, account))

	second := NewStakingService(repo)
	state, err := second.Connect(ctx, account)
	require.NoError(t, err)
	require.Len(t, state.LandInstances, 1)
	assert.Equal(t, instanceID, state.LandInstances[0].InstanceID)
	assert.Equal(t, uint64(2), state.Version)

	_, state, err = second.PlaceLand(ctx, account, "0.0.10")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Empty(t, state.Tokens)
}

// gatedRepo holds every Save until release is closed.
type gatedRepo struct {
	*memStateRepo
	saving  chan struct{}
	release chan struct{}
}

func (r *gatedRepo) Save(ctx context.Context, accountID string, state domain.StakingState) error {
	r.saving <- struct{}{}
	<-r.release
	return r.memStateRepo.Save(ctx, accountID, state)
}

func TestStakingService_DisconnectKeepsUnsavedState(t *testing.T) {
	mem := newMemStateRepo()
	mem.states[account] = domain.StakingState{Tokens: sampleTokens(), LandInstances: []domain.LandInstance{}, Version: 1}
	repo := &gatedRepo{memStateRepo: mem, saving: make(chan struct{}, 4), release: make(chan struct{})}
	s := NewStakingService(repo, WithInstanceIDs(ids()))
	ctx := context.Background()

	_, placed, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	require.Equal(t, uint64(2), placed.Version)
	<-repo.saving

	disconnected := make(chan error, 1)
	go func() { disconnected <- s.Disconnect(ctx, account) }()
	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		_, ok := s.draining[account]
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	// The save is still blocked, so the store holds version 1.
	state, _, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), state.Version)
	assert.Len(t, state.LandInstances, 1)

	close(repo.release)
	require.NoError(t, <-disconnected)
	flush(t, s)

	saved, ok := mem.saved(account)
	require.True(t, ok)
	assert.Equal(t, uint64(2), saved.Version)
	assert.Len(t, saved.LandInstances, 1)
}

func TestStakingService_DisconnectWaitsForSaves(t *testing.T) {
	mem := newMemStateRepo()
	repo := &gatedRepo{memStateRepo: mem, saving: make(chan struct{}, 4), release: make(chan struct{})}
	s := NewStakingService(repo, WithInstanceIDs(ids()))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	<-repo.saving

	disconnected := make(chan error, 1)
	go func() { disconnected <- s.Disconnect(ctx, account) }()
	select {
	case err = <-disconnected:
		t.Fatalf("disconnect returned before the save landed: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-disconnected)

	state, _, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Version)
	assert.Len(t, state.Tokens, 3)
}

func TestStakingService_LoadFallbacks(t *testing.T) {
	ctx := context.Background()

	repo := newMemStateRepo()
	repo.loadErr = fmt.Errorf("decode: %w", ErrStateCorrupt)
	state, err := NewStakingService(repo).Connect(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, state.Tokens)

	repo = newMemStateRepo()
	repo.states[account] = domain.StakingState{Tokens: []domain.Token{{TokenID: "x", Metadata: domain.Metadata{Type: "Dragon"}}}}
	state, err = NewStakingService(repo).Connect(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, state.Tokens)

	repo = newMemStateRepo()
	repo.loadErr = errors.New("connection refused")
	_, err = NewStakingService(repo).Connect(ctx, account)
	assert.Error(t, err)
}

func TestStakingService_SaveFailureIsNotReturned(t *testing.T) {
	repo := newMemStateRepo()
	repo.saveErr = errors.New("disk full")
	s := NewStakingService(repo)
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	_, _, err = s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	flush(t, s)

	state, _, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.Len(t, state.LandInstances, 1)
}

func TestStakingService_ConnectFetchesEmptyInventory(t *testing.T) {
	fetcher := &fakeFetcher{tokens: sampleTokens()}
	s := NewStakingService(newMemStateRepo(), WithInventoryFetcher(fetcher))

	state, err := s.Connect(context.Background(), account)
	require.NoError(t, err)
	assert.Len(t, state.Tokens, 3)
}

func TestStakingService_RefreshReconciles(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := NewStakingService(newMemStateRepo(), WithInventoryFetcher(fetcher), WithInstanceIDs(ids()))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	instanceID, _, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)
	_, _, err = s.Stake(ctx, account, instanceID, 0, "0.0.20", false)
	require.NoError(t, err)

	fresh := sampleTokens()
	fresh[1].Balance = 4
	fresh = append(fresh, domain.Token{TokenID: "0.0.99", Balance: 1, Metadata: domain.Metadata{Type: "Dragon"}})
	fetcher.tokens = fresh

	state, clamped, err := s.RefreshInventory(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, clamped)
	require.Len(t, state.Tokens, 3, "unknown card types are skipped")
	assert.Equal(t, 0, state.Tokens[0].Balance)
	assert.Equal(t, 3, state.Tokens[1].Balance)
	require.Len(t, state.LandInstances, 1)
	assert.Equal(t, "0.0.20", state.LandInstances[0].Plots[0].TokenID)
}

func TestStakingService_RefreshRejectsConcurrentOperations(t *testing.T) {
	fetcher := &fakeFetcher{
		tokens:  sampleTokens(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewStakingService(newMemStateRepo(), WithInventoryFetcher(fetcher))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, _, err := s.RefreshInventory(ctx, account)
		done <- err
	}()
	<-fetcher.started

	_, _, err = s.PlaceLand(ctx, account, "0.0.10")
	assert.ErrorIs(t, err, ErrRefreshInProgress)
	_, _, err = s.RefreshInventory(ctx, account)
	assert.ErrorIs(t, err, ErrRefreshInProgress)

	close(fetcher.release)
	require.NoError(t, <-done)

	_, _, err = s.PlaceLand(ctx, account, "0.0.10")
	assert.NoError(t, err)
}

func TestStakingService_RefreshWithoutFetcher(t *testing.T) {
	s := NewStakingService(newMemStateRepo())
	_, _, err := s.RefreshInventory(context.Background(), account)
	assert.ErrorIs(t, err, ErrMirrorDisabled)
}

func TestStakingService_RefreshFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("mirror unavailable")}
	s := NewStakingService(newMemStateRepo(), WithInventoryFetcher(fetcher))
	ctx := context.Background()

	_, _, err := s.RefreshInventory(ctx, account)
	assert.ErrorIs(t, err, ErrFetchFailed)

	// The flag is released, so a later mutation reaches the allocator.
	_, _, err = s.PlaceLand(ctx, account, "0.0.10")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestStakingService_ImportRejectsUnknownType(t *testing.T) {
	s := NewStakingService(newMemStateRepo())
	ctx := context.Background()

	tokens := append(sampleTokens(), domain.Token{TokenID: "0.0.40", Balance: 1, Metadata: domain.Metadata{Type: "Crop"}})
	_, _, err := s.ImportInventory(ctx, account, tokens)
	assert.ErrorIs(t, err, ErrUnknownCardType)

	state, _, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, state.Tokens)
}

func TestStakingService_RestoreState(t *testing.T) {
	s := NewStakingService(newMemStateRepo())
	ctx := context.Background()

	tokens := sampleTokens()
	land := tokens[0]
	land.Balance = 0
	tokens[0] = land
	restored, err := s.RestoreState(ctx, account, domain.StakingState{
		Tokens:        tokens,
		LandInstances: []domain.LandInstance{{InstanceID: "abc", Land: land, Plots: make([]domain.Plot, 2)}},
	})
	require.NoError(t, err)
	assert.Len(t, restored.LandInstances, 1)
	assert.Equal(t, uint64(1), restored.Version)

	_, err = s.RestoreState(ctx, account, domain.StakingState{
		LandInstances: []domain.LandInstance{{InstanceID: "", Land: land, Plots: make([]domain.Plot, 2)}},
	})
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestStakingService_SetRewardPolicy(t *testing.T) {
	s := NewStakingService(newMemStateRepo(), WithInstanceIDs(ids()))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	instanceID, _, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)

	s.SetRewardPolicy(staking.RewardPolicy{Attribute: "carbon_sequestration", Multiplier: 1})
	result, _, err := s.Stake(ctx, account, instanceID, 0, "0.0.20", false)
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Reward)
}

func TestStakingService_DisbursementFailureIsNotReturned(t *testing.T) {
	rewards := &memRewards{err: errors.New("ledger down")}
	s := NewStakingService(newMemStateRepo(), WithRewardRepository(rewards), WithInstanceIDs(ids()))
	ctx := context.Background()

	_, _, err := s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	instanceID, _, err := s.PlaceLand(ctx, account, "0.0.10")
	require.NoError(t, err)

	_, _, err = s.Stake(ctx, account, instanceID, 0, "0.0.20", false)
	require.NoError(t, err)
	flush(t, s)
}

func TestStakingService_Digest(t *testing.T) {
	s := NewStakingService(newMemStateRepo())
	ctx := context.Background()

	_, before, err := s.State(ctx, account)
	require.NoError(t, err)
	_, again, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, before, again)

	_, _, err = s.ImportInventory(ctx, account, sampleTokens())
	require.NoError(t, err)
	_, after, err := s.State(ctx, account)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}
