package screener

import (
	"go.uber.org/fx"

	"stonks/internal/modules/screener/service"
	"stonks/internal/runner"
)

func Module() fx.Option {
	return fx.Module("screener",
		fx.Provide(
			service.NewScreener, // *service.Screener
			func(s *service.Screener) runner.IdeaSource { return s },
		),
	)
}
