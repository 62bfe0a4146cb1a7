package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/logger"
)

// Reconciler 一轮对账。Runner 只关心触发，不关心内容。
type Reconciler interface {
	Reconcile(ctx context.Context, now time.Time) error
}

// Runner 定时触发对账，single-flight：上一轮还没跑完就跳过本次 tick，
// 永远不会有两轮并发。失败不重试，等下一个 tick 自然重来。
type Runner struct {
	rec      Reconciler
	interval time.Duration
	log      logger.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewRunner(rec Reconciler, interval time.Duration, log logger.Logger) *Runner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Runner{
		rec:      rec,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Start 启动后台循环，ctx 取消后退出。启动即先跑一轮，
// 让重启后的脏状态尽快收敛。
func (r *Runner) Start(ctx context.Context) {
	go func() {
		r.RunOnce(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.log.Info("reconcile runner stopped")
				return
			case <-ticker.C:
				r.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce 尝试跑一轮；已有一轮在跑时返回 false。
func (r *Runner) RunOnce(ctx context.Context) bool {
	if !r.mu.TryLock() {
		r.log.Debug("reconcile already in flight, skipping tick")
		return false
	}
	defer r.mu.Unlock()

	if err := r.rec.Reconcile(ctx, r.now()); err != nil {
		r.log.Warnf("reconcile failed, will retry next tick: %v", err)
	}
	return true
}
