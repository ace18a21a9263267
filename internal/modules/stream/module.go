package stream

import (
	"context"

	"go.uber.org/fx"

	"stonks/internal/modules/stream/service"
	"stonks/internal/notify"
)

func Module() fx.Option {
	return fx.Module("stream",
		fx.Provide(
			func(t *notify.Telegram) service.Notifier { return t },
			service.NewClient, // *service.Client
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.Start(ctx)
					return nil
				},
			})
		}),
	)
}
