package notifier

import (
	"github.com/smart-practice/backend/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notifier",
	fx.Provide(Provide),
)

// Provide wires the Telegram adapter when a bot token is configured and a
// no-op sink otherwise, so workflows never depend on bot availability.
func Provide(cfg config.Config, log *zap.Logger) (Notifier, error) {
	if cfg.BotToken == "" {
		log.Warn("no bot token configured, notifications disabled")
		return Noop{}, nil
	}

	adapter, err := NewTelebotAdapter(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
