package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownCardType = errors.New("unknown card type")

// CardType tags the kind of game card a token represents.
type CardType string

const (
	CardLand          CardType = "Land"
	CardTree          CardType = "Tree"
	CardPeople        CardType = "People"
	CardTool          CardType = "Tool"
	CardStructure     CardType = "Structure"
	CardModifier      CardType = "Modifier"
	CardFungibleToken CardType = "FungibleToken"
)

var cardTypes = []CardType{
	CardLand,
	CardTree,
	CardPeople,
	CardTool,
	CardStructure,
	CardModifier,
	CardFungibleToken,
}

// CardTypes returns every recognised card type in display order.
func CardTypes() []CardType {
	out := make([]CardType, len(cardTypes))
	copy(out, cardTypes)
	return out
}

func (t CardType) IsValid() bool {
	for _, ct := range cardTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func ParseCardType(s string) (CardType, error) {
	t := CardType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCardType, s)
	}
	return t, nil
}

// Metadata is the descriptor attached to a token: its card type plus a
// free-form property bag whose shape depends on the type.
type Metadata struct {
	Version     string         `json:"version,omitempty"`
	Type        CardType       `json:"type"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

func (m Metadata) Clone() Metadata {
	m.Properties = cloneProperties(m.Properties)
	return m
}

func cloneProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneProperties(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return val
	}
}
