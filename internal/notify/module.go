package notify

import (
	"go.uber.org/fx"

	"stonks/internal/runner"
)

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			NewTelegram,
			// адаптер: *Telegram -> runner.Notifier
			func(t *Telegram) runner.Notifier {
				return t
			},
		),
	)
}
