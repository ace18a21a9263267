package marketdata

import (
	"go.uber.org/fx"

	exits "stonks/internal/modules/exits/service"
	"stonks/internal/modules/marketdata/service"
	screener "stonks/internal/modules/screener/service"
)

func Module() fx.Option {
	return fx.Module("marketdata",
		fx.Provide(
			service.NewClient, // *service.Client
			func(c *service.Client) exits.BarSource { return c },
			func(c *service.Client) screener.BarSource { return c },
		),
	)
}
