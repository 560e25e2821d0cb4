package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"steamwatch/internal/inventory"
	"steamwatch/internal/logger"
	"steamwatch/internal/notifier"
	"steamwatch/internal/scheduler"
	"steamwatch/internal/steam"
)

// SnapshotStore 是 monitor 对持久化层的最小依赖。
type SnapshotStore interface {
	Load() (*inventory.Snapshot, error)
	Save(*inventory.Snapshot) error
}

// Service 串起一次 tick 的全部动作：抓取 → 对比 → （有变化则推送）→ 落盘。
// 单线程执行，基线快照只被当前 tick 读写。
type Service struct {
	fetcher  steam.Fetcher
	store    SnapshotStore
	notifier notifier.ChangeNotifier // nil 表示未配置推送，仅控制台输出
	title    string

	baseline *inventory.Snapshot
	nowFn    func() time.Time
}

// NewService loads the persisted snapshot as the initial baseline and returns
// a ready-to-run service.
func NewService(fetcher steam.Fetcher, store SnapshotStore, n notifier.ChangeNotifier, title string) (*Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("monitor: fetcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("monitor: store is required")
	}
	baseline, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("monitor: load baseline: %w", err)
	}
	if baseline != nil {
		logger.Infof("已加载基线快照，条目数=%d", baseline.Len())
	}
	return &Service{
		fetcher:  fetcher,
		store:    store,
		notifier: n,
		title:    title,
		baseline: baseline,
		nowFn:    time.Now,
	}, nil
}

// Run wires Check into the scheduler and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context, sched *scheduler.FixedIntervalScheduler) {
	sched.Start(func() { s.Check(ctx) })
}

// Check 执行一次检查。任何抓取失败都在这里吃掉：记日志、跳过本轮，
// 基线和磁盘快照保持原样。
func (s *Service) Check(ctx context.Context) {
	trace := uuid.NewString()[:8]

	current, err := s.fetcher.FetchInventory(ctx)
	if err != nil {
		switch {
		case errors.Is(err, steam.ErrRateLimited):
			logger.Warnf("[%s] 命中限流，跳过本次检查: %v", trace, err)
		case errors.Is(err, steam.ErrPrivateInventory), errors.Is(err, steam.ErrNotFound):
			logger.Warnf("[%s] 库存不可访问，跳过本次检查: %v", trace, err)
		default:
			logger.Errorf("[%s] 获取库存失败，跳过本次检查: %v", trace, err)
		}
		return
	}

	logger.Infof("[%s] 当前库存条目数=%d", trace, current.Len())

	if s.baseline == nil {
		if err := s.store.Save(current); err != nil {
			logger.Errorf("[%s] 保存初始快照失败: %v", trace, err)
			return
		}
		s.baseline = current
		logger.Infof("[%s] 首次运行，已保存初始快照", trace)
		return
	}

	changes := inventory.Diff(s.baseline, current)
	if len(changes) == 0 {
		logger.Infof("[%s] 库存无变化", trace)
		s.persist(trace, current)
		return
	}

	logger.Infof("[%s] 检测到库存变化，共%d处", trace, len(changes))
	msg := notifier.ChangeMessage{Changes: changes, DetectedAt: s.now()}
	if s.notifier == nil {
		logger.Infof("[%s] 未配置推送，仅输出变化摘要", trace)
		logger.InfoBlock(msg.RenderText())
	} else if err := s.notifier.SendChanges(ctx, s.title, msg); err != nil {
		// Delivery is best-effort: the snapshot still advances below.
		logger.Errorf("[%s] 推送失败: %v", trace, err)
	} else {
		logger.Infof("[%s] 推送已发送", trace)
	}

	s.persist(trace, current)
}

// persist writes the snapshot and advances the in-memory baseline only on
// success, so a failed write leads to re-detection on the next tick.
func (s *Service) persist(trace string, current *inventory.Snapshot) {
	if err := s.store.Save(current); err != nil {
		logger.Errorf("[%s] 保存快照失败，基线保持不变: %v", trace, err)
		return
	}
	s.baseline = current
}

func (s *Service) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}
