package domain

import "time"

// RewardEntry is one disbursement recorded against an account after a stake.
type RewardEntry struct {
	ID         uint      `json:"id"`
	AccountID  string    `json:"account_id"`
	TokenID    string    `json:"token_id"`
	InstanceID string    `json:"instance_id"`
	PlotIndex  int       `json:"plot_index"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
