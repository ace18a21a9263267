package exits

import (
	"go.uber.org/fx"

	"stonks/internal/modules/exits/service"
	"stonks/internal/runner"
)

func Module() fx.Option {
	return fx.Module("exits",
		fx.Provide(
			service.NewEvaluator, // *service.Evaluator
			func(e *service.Evaluator) runner.ExitEvaluator { return e },
		),
	)
}
