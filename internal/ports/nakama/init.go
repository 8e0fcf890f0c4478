package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"rogueace/internal/app"
	"rogueace/internal/bot"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings, err := SettingsFromEnv(env, logger)
	if err != nil {
		logger.Error("InitModule: Invalid settings: %v", err)
		return err
	}

	if err := bot.LoadIdentities(settings.IdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	}

	store, err := app.NewStore(settings.Game, nil)
	if err != nil {
		return err
	}
	if err := RegisterRPCs(initializer, store); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchName, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(settings), nil
	}); err != nil {
		return err
	}

	logger.Info("Rogue Ace Go module loaded (hand_size=%d, draw_count=%d, bots=%t).", settings.Game.HandSize, settings.Game.DrawCount, settings.Game.BotsEnabled)
	return nil
}
