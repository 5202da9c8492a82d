package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

func TestInventory_ReplaceAll(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.ReplaceAll([]domain.Token{
		cardToken("T1", domain.CardTree, 3, nil),
		cardToken("P1", domain.CardPeople, 1, nil),
	}))
	require.NoError(t, inv.ReplaceAll([]domain.Token{cardToken("T1", domain.CardTree, 1, nil)}))

	assert.Equal(t, 1, inv.Len())
	tok, ok := inv.Token("T1")
	require.True(t, ok)
	assert.Equal(t, 1, tok.Balance, "replace must not merge with prior balances")
	_, ok = inv.Token("P1")
	assert.False(t, ok)
}

func TestInventory_ReplaceAllRejects(t *testing.T) {
	tests := []struct {
		name   string
		tokens []domain.Token
		want   error
	}{
		{"unknown type", []domain.Token{cardToken("X", "Crop", 1, nil)}, domain.ErrUnknownCardType},
		{"empty type", []domain.Token{cardToken("X", "", 1, nil)}, domain.ErrUnknownCardType},
		{"duplicate", []domain.Token{cardToken("X", domain.CardTree, 1, nil), cardToken("X", domain.CardTree, 1, nil)}, ErrDuplicateToken},
		{"missing id", []domain.Token{cardToken("", domain.CardTree, 1, nil)}, ErrMissingTokenID},
		{"negative", []domain.Token{cardToken("X", domain.CardTree, -2, nil)}, ErrNegativeBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory()
			require.NoError(t, inv.ReplaceAll([]domain.Token{cardToken("keep", domain.CardTool, 1, nil)}))

			assert.ErrorIs(t, inv.ReplaceAll(tt.tokens), tt.want)
			_, ok := inv.Token("keep")
			assert.True(t, ok, "rejected replace must leave the inventory untouched")
		})
	}
}

func TestInventory_AdjustBalance(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.ReplaceAll([]domain.Token{cardToken("T1", domain.CardTree, 1, nil)}))

	assert.True(t, inv.AdjustBalance("T1", -1))
	assert.False(t, inv.AdjustBalance("T1", -1))
	assert.False(t, inv.AdjustBalance("missing", 5))
	assert.True(t, inv.AdjustBalance("T1", 4))

	tok, _ := inv.Token("T1")
	assert.Equal(t, 4, tok.Balance)
	assert.Equal(t, 1, inv.Len())
}

func TestInventory_ZeroBalanceStaysListed(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.ReplaceAll([]domain.Token{cardToken("T1", domain.CardTree, 1, nil)}))
	inv.AdjustBalance("T1", -1)

	tokens := inv.Tokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, 0, tokens[0].Balance)
}

func TestInventory_GroupByType(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.ReplaceAll([]domain.Token{
		cardToken("T1", domain.CardTree, 1, nil),
		cardToken("L1", domain.CardLand, 1, nil),
		cardToken("T2", domain.CardTree, 0, nil),
		cardToken("F1", domain.CardFungibleToken, 100, nil),
	}))

	groups := inv.GroupByType()
	require.Len(t, groups, 3)
	assert.Equal(t, domain.CardTree, groups[0].Type)
	assert.Equal(t, []string{"T1", "T2"}, []string{groups[0].Tokens[0].TokenID, groups[0].Tokens[1].TokenID})
	assert.Equal(t, domain.CardLand, groups[1].Type)
	assert.Equal(t, domain.CardFungibleToken, groups[2].Type)

	assert.Empty(t, NewInventory().GroupByType())
}

func TestInventory_TokensAreCopies(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.ReplaceAll([]domain.Token{cardToken("T1", domain.CardTree, 1, map[string]any{"stage": "Sapling"})}))

	tokens := inv.Tokens()
	tokens[0].Balance = 99
	tokens[0].Metadata.Properties["stage"] = "Mature"

	tok, _ := inv.Token("T1")
	assert.Equal(t, 1, tok.Balance)
	assert.Equal(t, "Sapling", tok.Metadata.Properties["stage"])
}
