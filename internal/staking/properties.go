package staking

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

const (
	propCapacity      = "capacity"
	propPlots         = "plots"
	propAllowedStakes = "allowed_stakes"

	// MaxPlots bounds the plot array allocated for a single land card.
	MaxPlots = 1000
)

// PlotCount derives the number of plots of a land card from its properties.
// "capacity" is tried before "plots"; a capacity group holding its own
// "plots" key is accepted too. The first positive integer wins.
func PlotCount(props map[string]any) (int, error) {
	for _, key := range []string{propCapacity, propPlots} {
		n, ok := coerceInt(props[key])
		if !ok || n <= 0 {
			continue
		}
		if n > MaxPlots {
			return 0, ErrInvalidPlotCount
		}
		return n, nil
	}
	return 0, ErrInvalidPlotCount
}

// AllowedStakes reads the set of card types a land accepts. A missing or
// malformed field yields an empty set.
func AllowedStakes(props map[string]any) map[domain.CardType]struct{} {
	allowed := make(map[domain.CardType]struct{})

	var tags []string
	switch v := props[propAllowedStakes].(type) {
	case []string:
		tags = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	}

	for _, tag := range tags {
		ct := domain.CardType(strings.TrimSpace(tag))
		if ct.IsValid() {
			allowed[ct] = struct{}{}
		}
	}
	return allowed
}

// coerceInt mirrors lenient integer parsing: numbers are truncated and
// strings contribute their leading digits ("12 plots" -> 12).
func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case int:
		return val, true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case float32:
		return coerceFloat(float64(val))
	case float64:
		return coerceFloat(val)
	case json.Number:
		return coerceInt(string(val))
	case string:
		return leadingInt(val)
	case map[string]any:
		return coerceInt(val[propPlots])
	default:
		return 0, false
	}
}

func coerceFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// numericProperty reads a property as a float, defaulting to zero.
func numericProperty(props map[string]any, key string) float64 {
	switch val := props[key].(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}
