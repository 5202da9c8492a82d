package staking

import "github.com/omnia-labs/omnia-api/internal/domain"

const (
	DefaultRewardAttribute  = "carbon_sequestration"
	DefaultRewardMultiplier = 10
)

// RewardPolicy turns one numeric card property into a reward amount.
type RewardPolicy struct {
	Attribute  string
	Multiplier float64
}

func DefaultRewardPolicy() RewardPolicy {
	return RewardPolicy{
		Attribute:  DefaultRewardAttribute,
		Multiplier: DefaultRewardMultiplier,
	}
}

// Estimate is a pure function of the token's declared properties. A missing
// or non-numeric attribute counts as zero.
func (p RewardPolicy) Estimate(t domain.Token) float64 {
	return numericProperty(t.Metadata.Properties, p.Attribute) * p.Multiplier
}
