package staking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("land-%d", n)
	}
}

func landToken(id string, balance int, props map[string]any) domain.Token {
	return domain.Token{
		TokenID:  id,
		Balance:  balance,
		Metadata: domain.Metadata{Type: domain.CardLand, Name: id, Properties: props},
	}
}

func cardToken(id string, ct domain.CardType, balance int, props map[string]any) domain.Token {
	return domain.Token{
		TokenID:  id,
		Balance:  balance,
		Metadata: domain.Metadata{Type: ct, Name: id, Properties: props},
	}
}

func newTestAllocator(t *testing.T, tokens ...domain.Token) *Allocator {
	t.Helper()
	a := NewAllocator(WithIDGenerator(sequentialIDs()))
	require.NoError(t, a.Inventory().ReplaceAll(tokens))
	return a
}

func balanceOf(t *testing.T, a *Allocator, tokenID string) int {
	t.Helper()
	tok, ok := a.Inventory().Token(tokenID)
	require.True(t, ok, "token %s missing", tokenID)
	return tok.Balance
}

func scenarioAllocator(t *testing.T) *Allocator {
	return newTestAllocator(t,
		landToken("L1", 1, map[string]any{"plots": float64(2), "allowed_stakes": []any{"Tree"}}),
		cardToken("T1", domain.CardTree, 3, map[string]any{"carbon_sequestration": float64(5)}),
		cardToken("P1", domain.CardPeople, 2, nil),
	)
}

func TestAllocator_Scenario(t *testing.T) {
	a := scenarioAllocator(t)

	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	assert.Equal(t, "land-1", id)

	lands := a.Lands()
	require.Len(t, lands, 1)
	assert.Len(t, lands[0].Plots, 2)
	assert.True(t, lands[0].IsRemovable())
	assert.Equal(t, 0, balanceOf(t, a, "L1"))

	res, err := a.Stake(id, 0, "T1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Reward)
	assert.Equal(t, "T1", res.TokenID)

	land, ok := a.Land(id)
	require.True(t, ok)
	assert.Equal(t, "T1", land.Plots[0].TokenID)
	assert.True(t, land.Plots[1].IsEmpty())
	assert.Equal(t, 2, balanceOf(t, a, "T1"))

	tokenID, changed, err := a.Unstake(id, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "T1", tokenID)
	assert.Equal(t, 3, balanceOf(t, a, "T1"))

	land, _ = a.Land(id)
	assert.True(t, land.Plots[0].IsEmpty())
}

func TestAllocator_StakeIncompatibleType(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	before := a.State()

	_, err = a.Stake(id, 0, "P1")
	assert.ErrorIs(t, err, ErrIncompatibleToken)
	assert.Equal(t, before, a.State())
}

func TestAllocator_StakeRejections(t *testing.T) {
	a := newTestAllocator(t,
		landToken("L1", 1, map[string]any{"capacity": "3", "allowed_stakes": []any{"Tree", "Tool"}}),
		cardToken("T0", domain.CardTree, 0, nil),
		cardToken("T1", domain.CardTree, 1, nil),
		cardToken("X1", domain.CardTool, 1, nil),
	)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	_, err = a.Stake(id, 1, "T1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		instance  string
		plotIndex int
		tokenID   string
		want      error
	}{
		{"zero balance", id, 0, "T0", ErrInsufficientBalance},
		{"exhausted balance", id, 0, "T1", ErrInsufficientBalance},
		{"unknown token", id, 0, "nope", ErrTokenNotFound},
		{"occupied plot", id, 1, "X1", ErrPlotOccupied},
		{"negative index", id, -1, "X1", ErrPlotOutOfRange},
		{"index past end", id, 3, "X1", ErrPlotOutOfRange},
		{"unknown land", "missing", 0, "X1", ErrLandNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := a.State()
			_, err := a.Stake(tt.instance, tt.plotIndex, tt.tokenID)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, a.State())
		})
	}
}

func TestAllocator_PlaceLandRejections(t *testing.T) {
	tests := []struct {
		name  string
		token domain.Token
		want  error
	}{
		{"no plot count", landToken("L", 1, map[string]any{}), ErrInvalidPlotCount},
		{"non numeric", landToken("L", 1, map[string]any{"plots": "many"}), ErrInvalidPlotCount},
		{"zero", landToken("L", 1, map[string]any{"capacity": float64(0), "plots": float64(0)}), ErrInvalidPlotCount},
		{"negative", landToken("L", 1, map[string]any{"plots": float64(-4)}), ErrInvalidPlotCount},
		{"too many", landToken("L", 1, map[string]any{"plots": float64(MaxPlots + 1)}), ErrInvalidPlotCount},
		{"not land", cardToken("L", domain.CardTree, 1, map[string]any{"plots": float64(2)}), ErrNotLand},
		{"no balance", landToken("L", 0, map[string]any{"plots": float64(2)}), ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAllocator(t, tt.token)
			before := a.State()

			_, err := a.PlaceLand("L")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, a.State())
			assert.Empty(t, a.Lands())
		})
	}

	a := newTestAllocator(t)
	_, err := a.PlaceLand("ghost")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAllocator_PlaceLandTwice(t *testing.T) {
	a := newTestAllocator(t, landToken("L1", 2, map[string]any{"capacity": map[string]any{"plots": float64(4)}}))

	first, err := a.PlaceLand("L1")
	require.NoError(t, err)
	second, err := a.PlaceLand("L1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = a.PlaceLand("L1")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	require.Len(t, a.Lands(), 2)
	assert.Len(t, a.Lands()[1].Plots, 4)
	assert.Equal(t, 0, balanceOf(t, a, "L1"))
}

func TestAllocator_RemoveLand(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	_, err = a.Stake(id, 1, "T1")
	require.NoError(t, err)

	before, _ := a.Land(id)
	err = a.RemoveLand(id)
	assert.ErrorIs(t, err, ErrLandInUse)
	after, ok := a.Land(id)
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, balanceOf(t, a, "L1"))

	_, _, err = a.Unstake(id, 1)
	require.NoError(t, err)
	require.NoError(t, a.RemoveLand(id))
	assert.Empty(t, a.Lands())
	assert.Equal(t, 1, balanceOf(t, a, "L1"))

	assert.ErrorIs(t, a.RemoveLand(id), ErrLandNotFound)
}

func TestAllocator_UnstakeEmptyPlotIsNoop(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	before := a.State()

	tokenID, changed, err := a.Unstake(id, 0)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, tokenID)
	assert.Equal(t, before, a.State())

	_, _, err = a.Unstake(id, 9)
	assert.ErrorIs(t, err, ErrPlotOutOfRange)
}

func TestAllocator_UnstakeStakeRoundTrip(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	_, err = a.Stake(id, 0, "T1")
	require.NoError(t, err)
	before := a.State()

	_, _, err = a.Unstake(id, 0)
	require.NoError(t, err)
	_, err = a.Stake(id, 0, "T1")
	require.NoError(t, err)

	assert.Equal(t, before, a.State())
}

func TestAllocator_OpenPlotSelection(t *testing.T) {
	a := newTestAllocator(t,
		landToken("L1", 1, map[string]any{"plots": float64(2), "allowed_stakes": []any{"Tree", "Tool"}}),
		landToken("L2", 1, map[string]any{"plots": float64(1)}),
		cardToken("X1", domain.CardTool, 1, nil),
		cardToken("P1", domain.CardPeople, 1, nil),
		cardToken("T0", domain.CardTree, 0, nil),
		cardToken("T1", domain.CardTree, 2, nil),
	)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)

	got, err := a.OpenPlotSelection(id, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "X1", got[0].TokenID)
	assert.Equal(t, "T1", got[1].TokenID)

	bare, err := a.PlaceLand("L2")
	require.NoError(t, err)
	got, err = a.OpenPlotSelection(bare, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = a.Stake(id, 0, "T1")
	require.NoError(t, err)
	_, err = a.OpenPlotSelection(id, 0)
	assert.ErrorIs(t, err, ErrPlotOccupied)
}

func TestAllocator_StakeFirstCompatible(t *testing.T) {
	a := newTestAllocator(t,
		landToken("L1", 1, map[string]any{"plots": float64(3), "allowed_stakes": []any{"Tree"}}),
		cardToken("T1", domain.CardTree, 1, map[string]any{"carbon_sequestration": float64(2)}),
		cardToken("T2", domain.CardTree, 1, map[string]any{"carbon_sequestration": float64(7)}),
	)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)

	res, err := a.StakeFirstCompatible(id, 0)
	require.NoError(t, err)
	assert.Equal(t, "T1", res.TokenID)
	assert.Equal(t, 20.0, res.Reward)

	res, err = a.StakeFirstCompatible(id, 1)
	require.NoError(t, err)
	assert.Equal(t, "T2", res.TokenID)

	_, err = a.StakeFirstCompatible(id, 2)
	assert.ErrorIs(t, err, ErrNoCompatibleToken)
}

func TestAllocator_RestoreRejectsCorruptState(t *testing.T) {
	a := scenarioAllocator(t)
	_, err := a.PlaceLand("L1")
	require.NoError(t, err)
	before := a.State()

	land := landToken("L1", 0, map[string]any{"plots": float64(1)})
	treeLand := landToken("L2", 0, map[string]any{"plots": float64(2), "allowed_stakes": []any{"Tree"}})
	tree := cardToken("T1", domain.CardTree, 3, nil)
	people := cardToken("P1", domain.CardPeople, 2, nil)
	tests := []struct {
		name  string
		state domain.StakingState
	}{
		{"unknown type", domain.StakingState{Tokens: []domain.Token{cardToken("Z", "Dragon", 1, nil)}}},
		{"negative balance", domain.StakingState{Tokens: []domain.Token{cardToken("T", domain.CardTree, -1, nil)}}},
		{"instance without id", domain.StakingState{LandInstances: []domain.LandInstance{{Land: land, Plots: make([]domain.Plot, 1)}}}},
		{"instance without plots", domain.StakingState{LandInstances: []domain.LandInstance{{InstanceID: "a", Land: land}}}},
		{"non land instance", domain.StakingState{LandInstances: []domain.LandInstance{{InstanceID: "a", Land: cardToken("T", domain.CardTree, 1, nil), Plots: make([]domain.Plot, 1)}}}},
		{"duplicate instance", domain.StakingState{LandInstances: []domain.LandInstance{
			{InstanceID: "a", Land: land, Plots: make([]domain.Plot, 1)},
			{InstanceID: "a", Land: land, Plots: make([]domain.Plot, 1)},
		}}},
		{"land missing from inventory", domain.StakingState{
			Tokens:        []domain.Token{tree},
			LandInstances: []domain.LandInstance{{InstanceID: "a", Land: treeLand, Plots: make([]domain.Plot, 2)}},
		}},
		{"plot holds unknown token", domain.StakingState{
			Tokens:        []domain.Token{treeLand, tree},
			LandInstances: []domain.LandInstance{{InstanceID: "a", Land: treeLand, Plots: []domain.Plot{{TokenID: "GHOST"}, {}}}},
		}},
		{"plot holds disallowed type", domain.StakingState{
			Tokens:        []domain.Token{treeLand, tree, people},
			LandInstances: []domain.LandInstance{{InstanceID: "a", Land: treeLand, Plots: []domain.Plot{{TokenID: "P1"}, {}}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, a.Restore(tt.state), ErrCorruptState)
			assert.Equal(t, before, a.State())
		})
	}
}

func TestAllocator_RestoreRoundTrip(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	_, err = a.Stake(id, 1, "T1")
	require.NoError(t, err)
	saved := a.State()

	b := NewAllocator()
	require.NoError(t, b.Restore(saved))
	assert.Equal(t, saved, b.State())

	_, changed, err := b.Unstake(id, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, balanceOf(t, a, "T1"), "restored copy must not alias the original")
}

func TestAllocator_RestoredGhostCannotBeUnstaked(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	saved := a.State()
	saved.LandInstances[0].Plots[0] = domain.Plot{TokenID: "GHOST"}

	b := NewAllocator()
	assert.ErrorIs(t, b.Restore(saved), ErrCorruptState)
	_, _, err = b.Unstake(id, 0)
	assert.Error(t, err, "rejected state must not be loaded")
}

func TestAllocator_Reconcile(t *testing.T) {
	a := scenarioAllocator(t)
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)
	_, err = a.Stake(id, 0, "T1")
	require.NoError(t, err)
	_, err = a.Stake(id, 1, "T1")
	require.NoError(t, err)

	// totals as reported by the mirror node
	require.NoError(t, a.Inventory().ReplaceAll([]domain.Token{
		landToken("L1", 1, map[string]any{"plots": float64(2), "allowed_stakes": []any{"Tree"}}),
		cardToken("T1", domain.CardTree, 5, nil),
		cardToken("P1", domain.CardPeople, 2, nil),
	}))
	clamped := a.Reconcile()

	assert.Empty(t, clamped)
	assert.Equal(t, 0, balanceOf(t, a, "L1"))
	assert.Equal(t, 3, balanceOf(t, a, "T1"))
	assert.Equal(t, 2, balanceOf(t, a, "P1"))

	require.NoError(t, a.Inventory().ReplaceAll([]domain.Token{
		landToken("L1", 0, nil),
		cardToken("T1", domain.CardTree, 1, nil),
	}))
	clamped = a.Reconcile()
	assert.ElementsMatch(t, []string{"L1", "T1"}, clamped)
	assert.Equal(t, 0, balanceOf(t, a, "T1"))
}

func TestAllocator_RewardPolicy(t *testing.T) {
	a := scenarioAllocator(t)
	a.SetRewardPolicy(RewardPolicy{Attribute: "carbon_sequestration", Multiplier: 2.5})
	id, err := a.PlaceLand("L1")
	require.NoError(t, err)

	res, err := a.Stake(id, 0, "T1")
	require.NoError(t, err)
	assert.Equal(t, 12.5, res.Reward)
}
