package response

import "github.com/omnia-labs/omnia-api/internal/domain"

type SessionResponse struct {
	Token string              `json:"token"`
	State domain.StakingState `json:"state"`
}

type PlaceLandResponse struct {
	InstanceID string              `json:"instance_id"`
	State      domain.StakingState `json:"state"`
}

type StakeResponse struct {
	Result domain.StakeResult  `json:"result"`
	State  domain.StakingState `json:"state"`
}

type UnstakeResponse struct {
	TokenID string              `json:"token_id,omitempty"`
	Changed bool                `json:"changed"`
	State   domain.StakingState `json:"state"`
}

type InventoryResponse struct {
	State   domain.StakingState `json:"state"`
	Clamped []string            `json:"clamped,omitempty"`
}

type SupplyKeyResponse struct {
	SupplyKey string `json:"supply_key"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
