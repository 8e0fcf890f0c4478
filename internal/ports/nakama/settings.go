package nakama

import (
	"fmt"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"

	"rogueace/internal/config"
)

const (
	defaultIdentitiesPath   = "data/bot_identities.json"
	defaultBotAutoFillDelay = 5
)

// Settings is the module configuration read from the Nakama runtime environment.
type Settings struct {
	Game             config.GameConfig
	BotAutoFillDelay int
	IdentitiesPath   string
}

// SettingsFromEnv reads rogueace_* keys. rogueace_config names a JSON game config that the
// other keys override.
func SettingsFromEnv(env map[string]string, logger runtime.Logger) (Settings, error) {
	cfg := config.Default()
	if path := env["rogueace_config"]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			return Settings{}, err
		}
		cfg = config.GetGameConfig()
	}

	s := Settings{
		BotAutoFillDelay: defaultBotAutoFillDelay,
		IdentitiesPath:   defaultIdentitiesPath,
	}
	if val, ok := env["rogueace_bot_identities"]; ok && val != "" {
		s.IdentitiesPath = val
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"rogueace_hand_size", &cfg.HandSize},
		{"rogueace_draw_count", &cfg.DrawCount},
		{"rogueace_salvage_window", &cfg.SalvageWindow},
		{"rogueace_bot_min_delay_sec", &cfg.BotMinDelaySeconds},
		{"rogueace_bot_max_delay_sec", &cfg.BotMaxDelaySeconds},
		{"rogueace_bot_auto_fill_delay_sec", &s.BotAutoFillDelay},
	}
	for _, e := range ints {
		val, ok := env[e.key]
		if !ok {
			continue
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			logger.Warn("SettingsFromEnv: Ignoring %s=%q: %v", e.key, val, err)
			continue
		}
		*e.dst = i
	}
	if val, ok := env["rogueace_seed"]; ok {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			logger.Warn("SettingsFromEnv: Ignoring rogueace_seed=%q: %v", val, err)
		} else {
			cfg.Seed = seed
		}
	}
	if val, ok := env["rogueace_bots_enabled"]; ok {
		cfg.BotsEnabled = val == "true"
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Settings{}, fmt.Errorf("rogueace settings: %w", err)
	}
	if s.BotAutoFillDelay < 0 {
		s.BotAutoFillDelay = 0
	}
	s.Game = cfg
	return s, nil
}
