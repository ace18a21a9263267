package alpaca

import (
	"go.uber.org/fx"

	"stonks/internal/modules/alpaca/service"
	exits "stonks/internal/modules/exits/service"
	"stonks/internal/runner"
)

func Module() fx.Option {
	return fx.Module("alpaca",
		fx.Provide(
			service.NewClient, // *service.Client
			// адаптеры под потребителей
			func(c *service.Client) runner.Broker { return c },
			func(c *service.Client) exits.Broker { return c },
		),
	)
}
