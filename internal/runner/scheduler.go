package runner

import (
	"context"
	"time"

	"stonks/pkg/logger"
)

type schedulerState string

const (
	stateWaitingMarketDay  schedulerState = "waiting_market_day"
	stateWaitingNextRun    schedulerState = "waiting_next_run"
	stateRunningCycle      schedulerState = "running_cycle"
	stateSleepingOvernight schedulerState = "sleeping_overnight"
)

// после последнего запуска дня просыпаемся в 04:00 локального следующего дня
const overnightWakeHour = 4

// Loop — бесконечный планировщик: расписание площадки на сегодня, три
// запуска цикла (открытие, середина, за 30 мин до закрытия), сон до утра.
// Терминального состояния нет, останавливает только отмена контекста.
func (r *Runner) Loop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		now := time.Now().In(r.loc)

		sched, open, err := r.broker.GetCalendar(ctx, now)
		if err != nil {
			// недоступный календарь == закрытый день, расписание не угадываем
			logger.Error("scheduler: calendar: %v (treating as closed)", err)
			open = false
		}
		if !open {
			r.setState(stateWaitingMarketDay)
			logger.Info("scheduler: market closed %s, sleeping until tomorrow", now.Format("2006-01-02"))
			if !r.sleepUntilTomorrow(ctx, now) {
				return
			}
			continue
		}

		runs := sched.RunTimes()
		var next time.Time
		for _, rt := range runs {
			if now.Before(rt) {
				next = rt
				break
			}
		}
		if next.IsZero() {
			r.setState(stateSleepingOvernight)
			logger.Info("scheduler: all runs done for today")
			if !r.sleepUntilTomorrow(ctx, now) {
				return
			}
			continue
		}

		r.setState(stateWaitingNextRun)
		logger.Info("scheduler: next run at %s", next.Format("15:04:05 MST"))
		if !sleepUntil(ctx, next) {
			return
		}

		r.setState(stateRunningCycle)
		r.RunCycle(ctx)
	}
}

func (r *Runner) setState(s schedulerState) {
	logger.Info("scheduler: state=%s", s)
}

// sleepUntilTomorrow спит до 04:00 следующего дня, минимум минуту —
// защита от плотного цикла на границе суток.
func (r *Runner) sleepUntilTomorrow(ctx context.Context, now time.Time) bool {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), overnightWakeHour, 0, 0, 0, r.loc).AddDate(0, 0, 1)
	if tomorrow.Sub(now) < time.Minute {
		tomorrow = now.Add(time.Minute)
	}
	return sleepUntil(ctx, tomorrow)
}

func sleepUntil(ctx context.Context, t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
