package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository"
	"github.com/omnia-labs/omnia-api/internal/staking"
)

var (
	ErrTokenNotFound       = staking.ErrTokenNotFound
	ErrDuplicateToken      = staking.ErrDuplicateToken
	ErrMissingTokenID      = staking.ErrMissingTokenID
	ErrNegativeBalance     = staking.ErrNegativeBalance
	ErrNotLand             = staking.ErrNotLand
	ErrInvalidPlotCount    = staking.ErrInvalidPlotCount
	ErrInsufficientBalance = staking.ErrInsufficientBalance
	ErrLandNotFound        = staking.ErrLandNotFound
	ErrLandInUse           = staking.ErrLandInUse
	ErrPlotOutOfRange      = staking.ErrPlotOutOfRange
	ErrPlotOccupied        = staking.ErrPlotOccupied
	ErrIncompatibleToken   = staking.ErrIncompatibleToken
	ErrNoCompatibleToken   = staking.ErrNoCompatibleToken
	ErrCorruptState        = staking.ErrCorruptState
	ErrUnknownCardType     = domain.ErrUnknownCardType

	ErrStateNotFound = repository.ErrStateNotFound
	ErrStateCorrupt  = repository.ErrStateCorrupt

	ErrRefreshInProgress = errors.New("inventory refresh in progress")
	ErrMirrorDisabled    = errors.New("inventory fetch is not configured")
	ErrInvalidMetadata   = errors.New("invalid card metadata")
	ErrFetchFailed       = errors.New("inventory fetch failed")
)

const (
	OpConnect    = "connect"
	OpPlaceLand  = "place_land"
	OpRemoveLand = "remove_land"
	OpStake      = "stake"
	OpUnstake    = "unstake"
	OpRefresh    = "refresh"
	OpImport     = "import"
	OpRestore    = "restore"

	saveTimeout     = 10 * time.Second
	disburseTimeout = 5 * time.Second
)

type StateRepository interface {
	Load(ctx context.Context, accountID string) (domain.StakingState, error)
	Save(ctx context.Context, accountID string, state domain.StakingState) error
}

type InventoryFetcher interface {
	Fetch(ctx context.Context, accountID string) ([]domain.Token, error)
}

type RewardRepository interface {
	Disburse(ctx context.Context, entry domain.RewardEntry) (domain.RewardEntry, error)
	FindByAccountID(ctx context.Context, accountID string) ([]domain.RewardEntry, error)
}

type MetadataValidator interface {
	Shape(md domain.Metadata) error
}

type EventPublisher interface {
	Publish(evt domain.StateEvent)
}

// session is one connected account. mu serialises allocator access and
// saveMu serialises snapshot writes. pending tracks this session's saves.
type session struct {
	accountID  string
	alloc      *staking.Allocator
	version    uint64
	refreshing atomic.Bool
	mu         sync.Mutex

	saveMu       sync.Mutex
	savedVersion uint64
	pending      sync.WaitGroup
}

type StakingService struct {
	repo      StateRepository
	fetcher   InventoryFetcher
	rewards   RewardRepository
	validator MetadataValidator
	events    EventPublisher

	mu       sync.RWMutex
	sessions map[string]*session
	draining map[string]*session
	policy   staking.RewardPolicy

	pending sync.WaitGroup
	newID   func() string
}

type StakingOption func(*StakingService)

// WithInventoryFetcher enables refreshes from the ledger mirror.
func WithInventoryFetcher(f InventoryFetcher) StakingOption {
	return func(s *StakingService) {
		s.fetcher = f
	}
}

func WithRewardRepository(r RewardRepository) StakingOption {
	return func(s *StakingService) {
		s.rewards = r
	}
}

func WithMetadataValidator(v MetadataValidator) StakingOption {
	return func(s *StakingService) {
		s.validator = v
	}
}

func WithEventPublisher(p EventPublisher) StakingOption {
	return func(s *StakingService) {
		s.events = p
	}
}

func WithRewardPolicy(p staking.RewardPolicy) StakingOption {
	return func(s *StakingService) {
		s.policy = p
	}
}

// WithInstanceIDs overrides how land instance ids are generated.
func WithInstanceIDs(fn func() string) StakingOption {
	return func(s *StakingService) {
		s.newID = fn
	}
}

func NewStakingService(repo StateRepository, opts ...StakingOption) *StakingService {
	s := &StakingService{
		repo:     repo,
		sessions: make(map[string]*session),
		draining: make(map[string]*session),
		policy:   staking.DefaultRewardPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens the account's session, loading its persisted state. A
// missing or unreadable state starts empty. When the state holds no tokens
// and a fetcher is configured, the inventory is fetched right away.
func (s *StakingService) Connect(ctx context.Context, accountID string) (domain.StakingState, error) {
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return domain.StakingState{}, err
	}

	sess.mu.Lock()
	empty := sess.alloc.Inventory().Len() == 0
	sess.mu.Unlock()

	if empty && s.fetcher != nil {
		state, _, err := s.RefreshInventory(ctx, accountID)
		if err == nil {
			return state, nil
		}
		zap.L().Warn("initial inventory fetch failed", zap.String("account_id", accountID), zap.Error(err))
	}

	return s.snapshot(sess), nil
}

// Disconnect drops the session once its pending saves have completed.
// Until then the session is draining: a request for the account picks it
// back up instead of loading a store that may still lag behind it.
func (s *StakingService) Disconnect(ctx context.Context, accountID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[accountID]
	if ok {
		delete(s.sessions, accountID)
		s.draining[accountID] = sess
		activeSessions.Dec()
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}

	err := wait(ctx, &sess.pending)

	s.mu.Lock()
	if s.draining[accountID] == sess {
		delete(s.draining, accountID)
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("disconnect -> %w", err)
	}
	return nil
}

// State returns the board and its digest.
func (s *StakingService) State(ctx context.Context, accountID string) (domain.StakingState, string, error) {
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return domain.StakingState{}, "", err
	}

	state := s.snapshot(sess)
	return state, repository.Digest(state), nil
}

func (s *StakingService) Groups(ctx context.Context, accountID string) ([]domain.TokenGroup, error) {
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.alloc.Inventory().GroupByType(), nil
}

func (s *StakingService) PlaceLand(ctx context.Context, accountID, tokenID string) (string, domain.StakingState, error) {
	var instanceID string
	state, err := s.mutate(ctx, accountID, OpPlaceLand, func(a *staking.Allocator) (bool, error) {
		id, err := a.PlaceLand(tokenID)
		if err != nil {
			return false, err
		}
		instanceID = id
		return true, nil
	})
	if err != nil {
		return "", domain.StakingState{}, err
	}

	return instanceID, state, nil
}

func (s *StakingService) RemoveLand(ctx context.Context, accountID, instanceID string) (domain.StakingState, error) {
	return s.mutate(ctx, accountID, OpRemoveLand, func(a *staking.Allocator) (bool, error) {
		return true, a.RemoveLand(instanceID)
	})
}

// Candidates lists the tokens that can be staked on an empty plot.
func (s *StakingService) Candidates(ctx context.Context, accountID, instanceID string, plotIndex int) ([]domain.Token, error) {
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	candidates, err := sess.alloc.OpenPlotSelection(instanceID, plotIndex)
	if err != nil {
		return nil, fmt.Errorf("alloc.OpenPlotSelection -> %w", err)
	}

	return candidates, nil
}

// Stake puts tokenID on the plot, or with auto the first compatible token
// in inventory order. The reward is recorded asynchronously.
func (s *StakingService) Stake(ctx context.Context, accountID, instanceID string, plotIndex int, tokenID string, auto bool) (domain.StakeResult, domain.StakingState, error) {
	var result domain.StakeResult
	state, err := s.mutate(ctx, accountID, OpStake, func(a *staking.Allocator) (bool, error) {
		var err error
		if auto {
			result, err = a.StakeFirstCompatible(instanceID, plotIndex)
		} else {
			result, err = a.Stake(instanceID, plotIndex, tokenID)
		}
		return err == nil, err
	})
	if err != nil {
		return domain.StakeResult{}, domain.StakingState{}, err
	}

	zap.L().Info("token staked",
		zap.String("account_id", accountID),
		zap.String("instance_id", result.InstanceID),
		zap.Int("plot_index", result.PlotIndex),
		zap.String("token_id", result.TokenID),
		zap.Float64("reward", result.Reward))
	if result.Reward > 0 {
		rewardsTotal.Add(result.Reward)
	}
	s.disburse(accountID, result)

	return result, state, nil
}

// Unstake clears a plot. An empty plot is not an error; changed reports
// whether anything moved.
func (s *StakingService) Unstake(ctx context.Context, accountID, instanceID string, plotIndex int) (string, bool, domain.StakingState, error) {
	var tokenID string
	var changed bool
	state, err := s.mutate(ctx, accountID, OpUnstake, func(a *staking.Allocator) (bool, error) {
		var err error
		tokenID, changed, err = a.Unstake(instanceID, plotIndex)
		return changed, err
	})
	if err != nil {
		return "", false, domain.StakingState{}, err
	}

	return tokenID, changed, state, nil
}

// RefreshInventory fetches the account's holdings and replaces the
// inventory with them, then deducts the units already on the board.
// Allocator operations started while the fetch is in flight are rejected
// with ErrRefreshInProgress. The returned ids are tokens whose balance had
// to be clamped at zero.
func (s *StakingService) RefreshInventory(ctx context.Context, accountID string) (domain.StakingState, []string, error) {
	if s.fetcher == nil {
		return domain.StakingState{}, nil, ErrMirrorDisabled
	}
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return domain.StakingState{}, nil, err
	}
	if !sess.refreshing.CompareAndSwap(false, true) {
		return domain.StakingState{}, nil, ErrRefreshInProgress
	}
	defer sess.refreshing.Store(false)

	fetched, err := s.fetcher.Fetch(ctx, accountID)
	if err != nil {
		observe(OpRefresh, err)
		return domain.StakingState{}, nil, fmt.Errorf("%w: s.fetcher.Fetch -> %w", ErrFetchFailed, err)
	}
	tokens := sanitizeFetched(accountID, fetched)

	var clamped []string
	state, err := s.apply(sess, OpRefresh, func(a *staking.Allocator) (bool, error) {
		if err := a.Inventory().ReplaceAll(tokens); err != nil {
			return false, err
		}
		clamped = a.Reconcile()
		return true, nil
	})
	if err != nil {
		return domain.StakingState{}, nil, err
	}
	if len(clamped) > 0 {
		zap.L().Warn("held units exceed fetched balances, clamped to zero",
			zap.String("account_id", accountID), zap.Strings("token_ids", clamped))
	}

	return state, clamped, nil
}

// ImportInventory replaces the inventory with client supplied totals. It
// follows the refresh path, but rejects the whole batch on any bad token.
func (s *StakingService) ImportInventory(ctx context.Context, accountID string, tokens []domain.Token) (domain.StakingState, []string, error) {
	if err := s.validateTokens(tokens); err != nil {
		observe(OpImport, err)
		return domain.StakingState{}, nil, err
	}

	var clamped []string
	state, err := s.mutate(ctx, accountID, OpImport, func(a *staking.Allocator) (bool, error) {
		if err := a.Inventory().ReplaceAll(tokens); err != nil {
			return false, err
		}
		clamped = a.Reconcile()
		return true, nil
	})
	if err != nil {
		return domain.StakingState{}, nil, err
	}

	return state, clamped, nil
}

// RestoreState replaces the whole board with a client supplied state.
func (s *StakingService) RestoreState(ctx context.Context, accountID string, state domain.StakingState) (domain.StakingState, error) {
	if err := s.validateTokens(state.Tokens); err != nil {
		observe(OpRestore, err)
		return domain.StakingState{}, err
	}

	return s.mutate(ctx, accountID, OpRestore, func(a *staking.Allocator) (bool, error) {
		return true, a.Restore(state)
	})
}

func (s *StakingService) Rewards(ctx context.Context, accountID string) ([]domain.RewardEntry, error) {
	if s.rewards == nil {
		return []domain.RewardEntry{}, nil
	}

	entries, err := s.rewards.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("s.rewards.FindByAccountID -> %w", err)
	}

	return entries, nil
}

// SetRewardPolicy swaps the reward policy of every open and future session.
func (s *StakingService) SetRewardPolicy(p staking.RewardPolicy) {
	s.mu.Lock()
	s.policy = p
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		sess.alloc.SetRewardPolicy(p)
		sess.mu.Unlock()
	}
	zap.L().Info("reward policy updated", zap.String("attribute", p.Attribute), zap.Float64("multiplier", p.Multiplier))
}

// Flush waits for every pending save and disbursement.
func (s *StakingService) Flush(ctx context.Context) error {
	if err := wait(ctx, &s.pending); err != nil {
		return fmt.Errorf("flush -> %w", err)
	}
	return nil
}

func wait(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// acquire returns the account's session, loading it on first use.
func (s *StakingService) acquire(ctx context.Context, accountID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[accountID]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}
	if sess, ok = s.revive(accountID); ok {
		return sess, nil
	}

	loaded, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[accountID]; ok {
		return existing, nil
	}
	if draining, ok := s.draining[accountID]; ok {
		// Disconnected while loading; the draining copy is newer.
		delete(s.draining, accountID)
		s.sessions[accountID] = draining
		activeSessions.Inc()
		return draining, nil
	}
	loaded.alloc.SetRewardPolicy(s.policy)
	s.sessions[accountID] = loaded
	activeSessions.Inc()

	return loaded, nil
}

// revive moves a draining session back into service.
func (s *StakingService) revive(accountID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[accountID]; ok {
		return sess, true
	}
	sess, ok := s.draining[accountID]
	if !ok {
		return nil, false
	}
	delete(s.draining, accountID)
	s.sessions[accountID] = sess
	activeSessions.Inc()

	sess.mu.Lock()
	sess.alloc.SetRewardPolicy(s.policy)
	sess.mu.Unlock()
	return sess, true
}

func (s *StakingService) load(ctx context.Context, accountID string) (*session, error) {
	opts := []staking.Option{}
	if s.newID != nil {
		opts = append(opts, staking.WithIDGenerator(s.newID))
	}
	sess := &session{
		accountID: accountID,
		alloc:     staking.NewAllocator(opts...),
	}

	state, err := s.repo.Load(ctx, accountID)
	switch {
	case errors.Is(err, ErrStateNotFound):
		return sess, nil
	case errors.Is(err, ErrStateCorrupt):
		zap.L().Warn("stored state unreadable, starting empty", zap.String("account_id", accountID), zap.Error(err))
		return sess, nil
	case err != nil:
		return nil, fmt.Errorf("s.repo.Load -> %w", err)
	}

	if err = sess.alloc.Restore(state); err != nil {
		zap.L().Warn("stored state inconsistent, starting empty", zap.String("account_id", accountID), zap.Error(err))
		return sess, nil
	}
	sess.version = state.Version
	sess.savedVersion = state.Version

	return sess, nil
}

// mutate runs fn against the account's allocator. fn reports whether the
// board changed; only changes are versioned, persisted and published.
func (s *StakingService) mutate(ctx context.Context, accountID, op string, fn func(a *staking.Allocator) (bool, error)) (domain.StakingState, error) {
	sess, err := s.acquire(ctx, accountID)
	if err != nil {
		return domain.StakingState{}, err
	}
	if sess.refreshing.Load() {
		observe(op, ErrRefreshInProgress)
		return domain.StakingState{}, ErrRefreshInProgress
	}

	return s.apply(sess, op, fn)
}

func (s *StakingService) apply(sess *session, op string, fn func(a *staking.Allocator) (bool, error)) (domain.StakingState, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	changed, err := fn(sess.alloc)
	observe(op, err)
	if err != nil {
		return domain.StakingState{}, fmt.Errorf("%s -> %w", op, err)
	}

	state := sess.alloc.State()
	if changed {
		sess.version++
		state.Version = sess.version
		s.persist(sess, state)
		s.publish(sess.accountID, op, sess.version)
	} else {
		state.Version = sess.version
	}

	return state, nil
}

func (s *StakingService) snapshot(sess *session) domain.StakingState {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.alloc.State()
	state.Version = sess.version
	return state
}

// persist saves state in the background. Saves of one session run one at a
// time and a snapshot older than the last one saved is skipped, so the
// store always ends on the newest version.
func (s *StakingService) persist(sess *session, state domain.StakingState) {
	s.pending.Add(1)
	sess.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer sess.pending.Done()

		sess.saveMu.Lock()
		defer sess.saveMu.Unlock()
		if state.Version <= sess.savedVersion {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.repo.Save(ctx, sess.accountID, state); err != nil {
			persistenceFailuresTotal.Inc()
			zap.L().Error("failed to save staking state",
				zap.String("account_id", sess.accountID), zap.Uint64("version", state.Version), zap.Error(err))
			return
		}
		sess.savedVersion = state.Version
	}()
}

func (s *StakingService) disburse(accountID string, result domain.StakeResult) {
	if s.rewards == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), disburseTimeout)
		defer cancel()
		_, err := s.rewards.Disburse(ctx, domain.RewardEntry{
			AccountID:  accountID,
			TokenID:    result.TokenID,
			InstanceID: result.InstanceID,
			PlotIndex:  result.PlotIndex,
			Amount:     result.Reward,
		})
		if err != nil {
			disbursementFailuresTotal.Inc()
			zap.L().Error("failed to disburse reward",
				zap.String("account_id", accountID), zap.String("token_id", result.TokenID), zap.Error(err))
		}
	}()
}

func (s *StakingService) publish(accountID, op string, version uint64) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.StateEvent{
		AccountID: accountID,
		Version:   version,
		Operation: op,
		At:        time.Now().UTC(),
	})
}

func (s *StakingService) validateTokens(tokens []domain.Token) error {
	if s.validator == nil {
		return nil
	}
	for _, t := range tokens {
		if err := s.validator.Shape(t.Metadata); err != nil {
			return fmt.Errorf("%w: token %s: %v", ErrInvalidMetadata, t.TokenID, err)
		}
	}
	return nil
}

// sanitizeFetched drops fetched tokens the inventory would reject as a
// batch, keeping the first occurrence of a repeated id.
func sanitizeFetched(accountID string, tokens []domain.Token) []domain.Token {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]domain.Token, 0, len(tokens))
	for _, t := range tokens {
		_, dup := seen[t.TokenID]
		switch {
		case t.TokenID == "" || dup || t.Balance < 0:
			zap.L().Warn("skipping malformed fetched token", zap.String("account_id", accountID), zap.String("token_id", t.TokenID))
			continue
		case !t.Metadata.Type.IsValid():
			zap.L().Warn("skipping token with unknown card type",
				zap.String("account_id", accountID), zap.String("token_id", t.TokenID), zap.String("type", string(t.Metadata.Type)))
			continue
		}
		seen[t.TokenID] = struct{}{}
		out = append(out, t)
	}
	return out
}
