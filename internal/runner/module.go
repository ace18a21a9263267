package runner

import (
	"context"
	"log"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			New, // *Runner
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						log.Printf("[RUNNER] scheduler loop started")
						r.Loop(ctx)
						log.Printf("[RUNNER] scheduler loop stopped")
					}()
					return nil
				},
			})
		}),
	)
}
