package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"
	"signalhub/internal/service"
	"signalhub/pkg/logger"
)

// 交易员聚合缓存（读侧的客户端持有者）
// 一个活跃的交易员视图对应一个实例：拉一次信号集、拉一次权威统计，
// 支持手动刷新和固定周期自动刷新；Stop之后不再发生任何状态变更，
// 在途的拉取结果到达时直接丢弃

// ErrStopped 缓存已停止后再刷新
var ErrStopped = errors.New("trader cache is stopped")

type TraderAggregate struct {
	Signals   []entity.Signal
	Stats     model.TraderStats
	FetchedAt time.Time
}

type TraderCache struct {
	traderID  string
	signalDao dao.SignalDao
	stats     *service.StatsService
	interval  time.Duration

	mu      sync.RWMutex
	data    *TraderAggregate
	stopped bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTraderCache 创建一个交易员的聚合缓存，interval<=0时使用默认5分钟
func NewTraderCache(traderID string, signalDao dao.SignalDao, stats *service.StatsService, interval time.Duration) *TraderCache {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &TraderCache{
		traderID:  traderID,
		signalDao: signalDao,
		stats:     stats,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start 立即刷新一次，然后按周期自动刷新，直到Stop或ctx结束
func (c *TraderCache) Start(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil && !errors.Is(err, ErrStopped) {
		logger.Errorf("initial refresh failed for trader %s: %v", c.traderID, err)
	}
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Refresh(ctx); err != nil && !errors.Is(err, ErrStopped) {
					logger.Errorf("scheduled refresh failed for trader %s: %v", c.traderID, err)
				}
			}
		}
	}()
}

// Refresh 手动刷新：重新拉取信号集和统计
// 拉取是阻塞的；拉取期间如果发生了Stop，结果在写入前被丢弃
func (c *TraderCache) Refresh(ctx context.Context) error {
	if c.isStopped() {
		return ErrStopped
	}

	signals, err := c.signalDao.SignalGetAllByTrader(ctx, c.traderID)
	if err != nil {
		return err
	}
	stats, err := c.stats.StatsGet(ctx, c.traderID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		// 在途结果丢弃，不允许写入已卸载的消费者
		return ErrStopped
	}
	c.data = &TraderAggregate{
		Signals:   signals,
		Stats:     stats,
		FetchedAt: time.Now(),
	}
	return nil
}

// Snapshot 返回最近一次成功刷新的聚合数据
func (c *TraderCache) Snapshot() (*TraderAggregate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil, false
	}
	return c.data, true
}

// Stop 停止定时任务并标记失活，幂等
func (c *TraderCache) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		c.mu.Unlock()
		close(c.stopCh)
	})
}

func (c *TraderCache) isStopped() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopped
}
