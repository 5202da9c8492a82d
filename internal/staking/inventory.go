package staking

import (
	"fmt"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

// Inventory holds the tokens owned by the connected account together with
// their available balances. Every balance change goes through it.
type Inventory struct {
	tokens []domain.Token
	index  map[string]int
}

func NewInventory() *Inventory {
	return &Inventory{index: make(map[string]int)}
}

// ReplaceAll swaps the whole inventory. The new tokens are validated first
// and nothing changes when any of them is rejected.
func (inv *Inventory) ReplaceAll(tokens []domain.Token) error {
	next := make([]domain.Token, 0, len(tokens))
	index := make(map[string]int, len(tokens))

	for _, t := range tokens {
		if t.TokenID == "" {
			return ErrMissingTokenID
		}
		if _, dup := index[t.TokenID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateToken, t.TokenID)
		}
		if !t.Metadata.Type.IsValid() {
			return fmt.Errorf("token %s -> %w: %q", t.TokenID, domain.ErrUnknownCardType, t.Metadata.Type)
		}
		if t.Balance < 0 {
			return fmt.Errorf("token %s -> %w", t.TokenID, ErrNegativeBalance)
		}
		index[t.TokenID] = len(next)
		next = append(next, t.Clone())
	}

	inv.tokens = next
	inv.index = index
	return nil
}

// AdjustBalance adds delta to a token's balance. Unknown tokens and changes
// that would drive the balance negative are ignored.
func (inv *Inventory) AdjustBalance(tokenID string, delta int) bool {
	i, ok := inv.index[tokenID]
	if !ok {
		return false
	}
	if inv.tokens[i].Balance+delta < 0 {
		return false
	}
	inv.tokens[i].Balance += delta
	return true
}

func (inv *Inventory) setBalance(tokenID string, balance int) {
	if i, ok := inv.index[tokenID]; ok {
		inv.tokens[i].Balance = balance
	}
}

func (inv *Inventory) Token(tokenID string) (domain.Token, bool) {
	i, ok := inv.index[tokenID]
	if !ok {
		return domain.Token{}, false
	}
	return inv.tokens[i].Clone(), true
}

// Tokens returns a copy of the inventory in insertion order.
func (inv *Inventory) Tokens() []domain.Token {
	out := make([]domain.Token, len(inv.tokens))
	for i, t := range inv.tokens {
		out[i] = t.Clone()
	}
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.tokens)
}

// GroupByType buckets tokens by card type. Groups appear in the order their
// type is first seen and tokens keep inventory order within a group.
func (inv *Inventory) GroupByType() []domain.TokenGroup {
	return groupByType(inv.tokens)
}

func groupByType(tokens []domain.Token) []domain.TokenGroup {
	groups := []domain.TokenGroup{}
	pos := make(map[domain.CardType]int)
	for _, t := range tokens {
		i, ok := pos[t.Metadata.Type]
		if !ok {
			i = len(groups)
			pos[t.Metadata.Type] = i
			groups = append(groups, domain.TokenGroup{Type: t.Metadata.Type})
		}
		groups[i].Tokens = append(groups[i].Tokens, t.Clone())
	}
	return groups
}
