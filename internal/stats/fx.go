package stats

import "go.uber.org/fx"

var Module = fx.Module("stats.repository",
	fx.Provide(NewRepository),
)
