package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"rogueace/internal/domain"
)

// GameConfig holds the per-session table rules and the bot settings used by the ports.
type GameConfig struct {
	HandSize      int `json:"hand_size"`
	DrawCount     int `json:"draw_count"`
	Players       int `json:"players"`
	SalvageWindow int `json:"salvage_window"`
	// Seed fixes the shuffle sequence when non-zero.
	Seed int64 `json:"seed"`

	BotsEnabled bool `json:"bots_enabled"`
	// BotMinDelaySeconds and BotMaxDelaySeconds bound how long a bot waits before acting.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the standard two-player configuration.
func Default() GameConfig {
	r := domain.DefaultRules()
	return GameConfig{
		HandSize:           r.HandSize,
		DrawCount:          r.DrawCount,
		Players:            r.Players,
		SalvageWindow:      r.SalvageWindow,
		BotsEnabled:        true,
		BotMinDelaySeconds: 1,
		BotMaxDelaySeconds: 3,
	}
}

// WithDefaults fills zero fields from Default.
func (c GameConfig) WithDefaults() GameConfig {
	d := Default()
	if c.HandSize == 0 {
		c.HandSize = d.HandSize
	}
	if c.DrawCount == 0 {
		c.DrawCount = d.DrawCount
	}
	if c.Players == 0 {
		c.Players = d.Players
	}
	if c.SalvageWindow == 0 {
		c.SalvageWindow = d.SalvageWindow
	}
	if c.BotMaxDelaySeconds == 0 {
		c.BotMinDelaySeconds = d.BotMinDelaySeconds
		c.BotMaxDelaySeconds = d.BotMaxDelaySeconds
	}
	return c
}

// Validate rejects configurations the engine cannot run.
func (c GameConfig) Validate() error {
	if c.Players != 2 {
		return fmt.Errorf("players must be 2, got %d", c.Players)
	}
	if c.HandSize < 2 || c.HandSize*c.Players >= domain.DeckSize {
		return fmt.Errorf("hand_size %d does not fit a %d-card deck", c.HandSize, domain.DeckSize)
	}
	if c.DrawCount < 1 || c.DrawCount > 2 {
		return fmt.Errorf("draw_count must be 1 or 2, got %d", c.DrawCount)
	}
	if c.SalvageWindow < 1 {
		return fmt.Errorf("salvage_window must be positive, got %d", c.SalvageWindow)
	}
	if c.BotMinDelaySeconds < 0 || c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		return fmt.Errorf("bot delay range [%d, %d] is invalid", c.BotMinDelaySeconds, c.BotMaxDelaySeconds)
	}
	return nil
}

// Rules converts the table fields into engine rules.
func (c GameConfig) Rules() domain.Rules {
	return domain.Rules{
		HandSize:      c.HandSize,
		DrawCount:     c.DrawCount,
		Players:       c.Players,
		SalvageWindow: c.SalvageWindow,
	}
}

// Parse decodes a JSON configuration over Default and validates it.
func Parse(data []byte) (GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return GameConfig{}, fmt.Errorf("invalid game config: %w", err)
	}
	return c, nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or Default when nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
