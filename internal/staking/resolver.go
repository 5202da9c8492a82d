package staking

import "github.com/omnia-labs/omnia-api/internal/domain"

// Resolve lists the inventory tokens that may be staked on a plot of land:
// their card type is in the land's allowed_stakes and they have a unit
// available. The result follows inventory order.
func Resolve(land domain.LandInstance, inv *Inventory) []domain.Token {
	allowed := AllowedStakes(land.Land.Metadata.Properties)
	compatible := []domain.Token{}
	if len(allowed) == 0 {
		return compatible
	}
	for _, t := range inv.tokens {
		if isCompatible(allowed, t) {
			compatible = append(compatible, t.Clone())
		}
	}
	return compatible
}

func isCompatible(allowed map[domain.CardType]struct{}, t domain.Token) bool {
	if t.Balance <= 0 {
		return false
	}
	_, ok := allowed[t.Metadata.Type]
	return ok
}
