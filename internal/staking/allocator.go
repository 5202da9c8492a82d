package staking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

// Allocator owns one account's board: the inventory and the land instances
// placed from it. Every operation validates fully before it mutates, so a
// rejected call leaves no trace. Allocator is not safe for concurrent use;
// callers serialise access.
type Allocator struct {
	inv    *Inventory
	lands  []domain.LandInstance
	reward RewardPolicy
	newID  func() string
}

type Option func(*Allocator)

func WithIDGenerator(fn func() string) Option {
	return func(a *Allocator) {
		a.newID = fn
	}
}

func WithRewardPolicy(p RewardPolicy) Option {
	return func(a *Allocator) {
		a.reward = p
	}
}

func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		inv:    NewInventory(),
		reward: DefaultRewardPolicy(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Allocator) Inventory() *Inventory {
	return a.inv
}

func (a *Allocator) SetRewardPolicy(p RewardPolicy) {
	a.reward = p
}

func (a *Allocator) RewardPolicy() RewardPolicy {
	return a.reward
}

// PlaceLand puts one unit of a Land token on the board as a new instance
// with empty plots and returns the instance id.
func (a *Allocator) PlaceLand(tokenID string) (string, error) {
	token, ok := a.inv.Token(tokenID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if token.Metadata.Type != domain.CardLand {
		return "", fmt.Errorf("%w: %s is %s", ErrNotLand, tokenID, token.Metadata.Type)
	}
	if token.Balance <= 0 {
		return "", fmt.Errorf("%w: %s", ErrInsufficientBalance, tokenID)
	}
	n, err := PlotCount(token.Metadata.Properties)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, tokenID)
	}

	instance := domain.LandInstance{
		InstanceID: a.newID(),
		Land:       token,
		Plots:      make([]domain.Plot, n),
	}
	a.inv.AdjustBalance(tokenID, -1)
	a.lands = append(a.lands, instance)
	return instance.InstanceID, nil
}

// RemoveLand takes an empty instance off the board and returns its land
// unit to the inventory.
func (a *Allocator) RemoveLand(instanceID string) error {
	i, err := a.landIndex(instanceID)
	if err != nil {
		return err
	}
	land := a.lands[i]
	if !land.IsRemovable() {
		return fmt.Errorf("%w: %s", ErrLandInUse, instanceID)
	}

	a.lands = append(a.lands[:i], a.lands[i+1:]...)
	a.inv.AdjustBalance(land.Land.TokenID, 1)
	return nil
}

// OpenPlotSelection lists the tokens that can go on an empty plot.
func (a *Allocator) OpenPlotSelection(instanceID string, plotIndex int) ([]domain.Token, error) {
	i, err := a.emptyPlot(instanceID, plotIndex)
	if err != nil {
		return nil, err
	}
	return Resolve(a.lands[i], a.inv), nil
}

// Stake places one unit of tokenID on an empty plot. Compatibility is
// checked against the current inventory, not a previously listed selection.
func (a *Allocator) Stake(instanceID string, plotIndex int, tokenID string) (domain.StakeResult, error) {
	i, err := a.emptyPlot(instanceID, plotIndex)
	if err != nil {
		return domain.StakeResult{}, err
	}
	token, ok := a.inv.Token(tokenID)
	if !ok {
		return domain.StakeResult{}, fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if token.Balance <= 0 {
		return domain.StakeResult{}, fmt.Errorf("%w: %s", ErrInsufficientBalance, tokenID)
	}
	allowed := AllowedStakes(a.lands[i].Land.Metadata.Properties)
	if _, ok := allowed[token.Metadata.Type]; !ok {
		return domain.StakeResult{}, fmt.Errorf("%w: %s on %s", ErrIncompatibleToken, token.Metadata.Type, instanceID)
	}

	a.lands[i].Plots[plotIndex] = domain.Plot{TokenID: tokenID}
	a.inv.AdjustBalance(tokenID, -1)

	return domain.StakeResult{
		InstanceID: instanceID,
		PlotIndex:  plotIndex,
		TokenID:    tokenID,
		Reward:     a.reward.Estimate(token),
	}, nil
}

// StakeFirstCompatible stakes the first compatible token in inventory order.
func (a *Allocator) StakeFirstCompatible(instanceID string, plotIndex int) (domain.StakeResult, error) {
	candidates, err := a.OpenPlotSelection(instanceID, plotIndex)
	if err != nil {
		return domain.StakeResult{}, err
	}
	if len(candidates) == 0 {
		return domain.StakeResult{}, fmt.Errorf("%w: %s", ErrNoCompatibleToken, instanceID)
	}
	return a.Stake(instanceID, plotIndex, candidates[0].TokenID)
}

// Unstake clears a plot and returns the unit to the inventory. It reports
// the token that was removed and whether anything changed.
func (a *Allocator) Unstake(instanceID string, plotIndex int) (string, bool, error) {
	i, err := a.landIndex(instanceID)
	if err != nil {
		return "", false, err
	}
	if plotIndex < 0 || plotIndex >= len(a.lands[i].Plots) {
		return "", false, fmt.Errorf("%w: %d", ErrPlotOutOfRange, plotIndex)
	}
	plot := a.lands[i].Plots[plotIndex]
	if plot.IsEmpty() {
		return "", false, nil
	}

	a.lands[i].Plots[plotIndex] = domain.Plot{}
	a.inv.AdjustBalance(plot.TokenID, 1)
	return plot.TokenID, true, nil
}

func (a *Allocator) Land(instanceID string) (domain.LandInstance, bool) {
	i, err := a.landIndex(instanceID)
	if err != nil {
		return domain.LandInstance{}, false
	}
	return a.lands[i].Clone(), true
}

func (a *Allocator) Lands() []domain.LandInstance {
	out := make([]domain.LandInstance, len(a.lands))
	for i, l := range a.lands {
		out[i] = l.Clone()
	}
	return out
}

// State snapshots the board. The copy shares nothing with the allocator.
func (a *Allocator) State() domain.StakingState {
	return domain.StakingState{
		Tokens:        a.inv.Tokens(),
		LandInstances: a.Lands(),
	}
}

// Restore replaces the whole board with a previously saved state. The state
// is validated first; on error the allocator is left untouched.
func (a *Allocator) Restore(state domain.StakingState) error {
	inv := NewInventory()
	if err := inv.ReplaceAll(state.Tokens); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	seen := make(map[string]struct{}, len(state.LandInstances))
	lands := make([]domain.LandInstance, 0, len(state.LandInstances))
	for _, l := range state.LandInstances {
		if l.InstanceID == "" {
			return fmt.Errorf("%w: land instance without id", ErrCorruptState)
		}
		if _, dup := seen[l.InstanceID]; dup {
			return fmt.Errorf("%w: duplicate land instance %s", ErrCorruptState, l.InstanceID)
		}
		if l.Land.Metadata.Type != domain.CardLand {
			return fmt.Errorf("%w: instance %s holds a %q card", ErrCorruptState, l.InstanceID, l.Land.Metadata.Type)
		}
		if len(l.Plots) == 0 || len(l.Plots) > MaxPlots {
			return fmt.Errorf("%w: instance %s has %d plots", ErrCorruptState, l.InstanceID, len(l.Plots))
		}
		if _, ok := inv.Token(l.Land.TokenID); !ok {
			return fmt.Errorf("%w: instance %s references unknown land %s", ErrCorruptState, l.InstanceID, l.Land.TokenID)
		}
		allowed := AllowedStakes(l.Land.Metadata.Properties)
		for i, p := range l.Plots {
			if p.IsEmpty() {
				continue
			}
			tok, ok := inv.Token(p.TokenID)
			if !ok {
				return fmt.Errorf("%w: instance %s plot %d holds unknown token %s", ErrCorruptState, l.InstanceID, i, p.TokenID)
			}
			if _, ok = allowed[tok.Metadata.Type]; !ok {
				return fmt.Errorf("%w: instance %s plot %d holds a %q card", ErrCorruptState, l.InstanceID, i, tok.Metadata.Type)
			}
		}
		seen[l.InstanceID] = struct{}{}
		lands = append(lands, l.Clone())
	}

	a.inv = inv
	a.lands = lands
	return nil
}

// Reconcile treats the current inventory balances as totals owned and
// deducts every unit held on the board: one per placed land and one per
// occupied plot. Balances that would go negative are clamped to zero and
// their token ids returned.
func (a *Allocator) Reconcile() []string {
	held := make(map[string]int)
	for _, l := range a.lands {
		held[l.Land.TokenID]++
		for _, p := range l.Plots {
			if !p.IsEmpty() {
				held[p.TokenID]++
			}
		}
	}

	var clamped []string
	for _, t := range a.inv.tokens {
		n := held[t.TokenID]
		if n == 0 {
			continue
		}
		balance := t.Balance - n
		if balance < 0 {
			balance = 0
			clamped = append(clamped, t.TokenID)
		}
		a.inv.setBalance(t.TokenID, balance)
	}
	return clamped
}

func (a *Allocator) landIndex(instanceID string) (int, error) {
	for i, l := range a.lands {
		if l.InstanceID == instanceID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrLandNotFound, instanceID)
}

func (a *Allocator) emptyPlot(instanceID string, plotIndex int) (int, error) {
	i, err := a.landIndex(instanceID)
	if err != nil {
		return -1, err
	}
	if plotIndex < 0 || plotIndex >= len(a.lands[i].Plots) {
		return -1, fmt.Errorf("%w: %d", ErrPlotOutOfRange, plotIndex)
	}
	if !a.lands[i].Plots[plotIndex].IsEmpty() {
		return -1, fmt.Errorf("%w: %s[%d]", ErrPlotOccupied, instanceID, plotIndex)
	}
	return i, nil
}
