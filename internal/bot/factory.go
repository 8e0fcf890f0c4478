package bot

import (
	"fmt"
	"strings"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota + 1
	BotLevelSmart
)

// ParseLevel maps a difficulty name to a level. "easy" and "good" are the same bot.
func ParseLevel(s string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "easy", "good":
		return BotLevelGood, nil
	case "medium", "hard", "smart":
		return BotLevelSmart, nil
	default:
		return 0, fmt.Errorf("unknown bot difficulty: %q", s)
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return &SmartBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
