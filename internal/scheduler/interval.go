package scheduler

import (
	"context"
	"time"

	"steamwatch/internal/logger"
)

// FixedIntervalScheduler 以固定间隔驱动一次 tick，严格串行：task 在调度协程上
// 同步执行，跑超时的 tick 会把下一次触发顺延到完成后的下一个网格点，从不并发、
// 从不补跑积压的 tick。
type FixedIntervalScheduler struct {
	Interval       time.Duration
	RunImmediately bool

	ctx     context.Context
	nowFn   func() time.Time
	timerFn func(d time.Duration) (<-chan time.Time, func())
}

func NewFixedIntervalScheduler(ctx context.Context, interval time.Duration) *FixedIntervalScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &FixedIntervalScheduler{
		Interval: interval,
		ctx:      ctx,
		nowFn:    time.Now,
		timerFn:  realTimer,
	}
}

func realTimer(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}

// Start blocks, firing task until the context is cancelled.
func (s *FixedIntervalScheduler) Start(task func()) {
	if s == nil {
		return
	}
	if task == nil {
		logger.Warnf("FixedIntervalScheduler: task is nil, exit")
		return
	}
	if s.Interval <= 0 {
		logger.Warnf("FixedIntervalScheduler: invalid interval=%s, exit", s.Interval)
		return
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}
	if s.timerFn == nil {
		s.timerFn = realTimer
	}

	startAt := s.nowFn()
	logger.Infof("FixedIntervalScheduler: started interval=%s run_immediately=%v at=%s",
		s.Interval, s.RunImmediately, startAt.Format(time.RFC3339))

	if s.RunImmediately {
		task()
	}

	anchor := startAt
	for {
		now := s.nowFn()
		nextAt := nextFireAfter(anchor, s.Interval, now)
		logger.Debugf("FixedIntervalScheduler: 下次执行=%s (in %s) | uptime=%s",
			nextAt.Format(time.RFC3339),
			nextAt.Sub(now).Truncate(time.Second),
			now.Sub(startAt).Truncate(time.Second),
		)
		if !s.waitUntil(nextAt) {
			return
		}
		task()
	}
}

func (s *FixedIntervalScheduler) waitUntil(target time.Time) bool {
	// Cancellation observed at tick boundaries wins over a pending timer.
	select {
	case <-s.ctx.Done():
		logger.Infof("FixedIntervalScheduler: ctx done, exit")
		return false
	default:
	}

	wait := target.Sub(s.nowFn())
	if wait <= 0 {
		return true
	}

	ch, stop := s.timerFn(wait)
	select {
	case <-s.ctx.Done():
		stop()
		logger.Infof("FixedIntervalScheduler: ctx done, exit")
		return false
	case <-ch:
		return true
	}
}

// nextFireAfter returns the first anchor+k*interval strictly after now. Grid
// points skipped while a tick was running are dropped rather than replayed.
func nextFireAfter(anchor time.Time, interval time.Duration, now time.Time) time.Time {
	if interval <= 0 {
		return now
	}
	delta := now.Sub(anchor)
	if delta < 0 {
		return anchor
	}
	k := delta / interval
	return anchor.Add((k + 1) * interval)
}
