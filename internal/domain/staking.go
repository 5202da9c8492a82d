package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Plot is one slot of a placed land card. An empty TokenID means the plot
// is free.
type Plot struct {
	TokenID string
}

func (p Plot) IsEmpty() bool {
	return p.TokenID == ""
}

// MarshalJSON renders an empty plot as {"token_id": null}.
func (p Plot) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte(`{"token_id":null}`), nil
	}
	return json.Marshal(struct {
		TokenID string `json:"token_id"`
	}{p.TokenID})
}

func (p *Plot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.TokenID = ""
		return nil
	}
	var raw struct {
		TokenID *string `json:"token_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.TokenID = ""
	if raw.TokenID != nil {
		p.TokenID = *raw.TokenID
	}
	return nil
}

// LandInstance is a Land token placed on the board. The number of plots is
// fixed when the instance is created.
type LandInstance struct {
	InstanceID string `json:"instance_id"`
	Land       Token  `json:"land"`
	Plots      []Plot `json:"plots"`
}

// IsRemovable reports whether every plot is empty.
func (l LandInstance) IsRemovable() bool {
	for _, p := range l.Plots {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

func (l LandInstance) Clone() LandInstance {
	l.Land = l.Land.Clone()
	plots := make([]Plot, len(l.Plots))
	copy(plots, l.Plots)
	l.Plots = plots
	return l
}

// StakingState is the whole persisted shape of one account's board.
type StakingState struct {
	Tokens        []Token        `json:"tokens"`
	LandInstances []LandInstance `json:"land_instances"`
	Version       uint64         `json:"version"`
}

// StakeResult describes a completed stake and the reward estimated for it.
type StakeResult struct {
	InstanceID string  `json:"instance_id"`
	PlotIndex  int     `json:"plot_index"`
	TokenID    string  `json:"token_id"`
	Reward     float64 `json:"reward"`
}

type StateEvent struct {
	AccountID string    `json:"account_id"`
	Version   uint64    `json:"version"`
	Operation string    `json:"operation"`
	At        time.Time `json:"at"`
}
