package ratelimit

import (
	"context"
	"fmt"
	"time"

	"signalhub/conf"
	"signalhub/internal/dao"
	"signalhub/internal/model/entity"
	"signalhub/pkg/logger"
)

// 每个(凭证, 接口)维护两个独立的滑动窗口：1分钟和1小时
// 计数直接查rate_limit_records表，服务本身无状态，可水平扩展

type Result struct {
	Allowed bool
	Reason  string
}

type Limiter struct {
	dao         dao.RateLimitDao
	minuteLimit int
	hourLimit   int
}

func NewLimiter(d dao.RateLimitDao, cfg conf.RateLimitConfig) *Limiter {
	return &Limiter{
		dao:         d,
		minuteLimit: cfg.MinuteLimit,
		hourLimit:   cfg.HourLimit,
	}
}

type windowCount struct {
	name  string
	limit int
	count int64
	err   error
}

// Check 判断该凭证在该接口上是否放行
// 两个窗口的计数相互独立，并发查询；任一达到上限即拒绝
// 存储读失败时放行（fail open）：限流器故障不能拖垮入库链路
func (l *Limiter) Check(ctx context.Context, apiKeyID uint64, endpoint string) Result {
	now := time.Now()
	windows := []windowCount{
		{name: "minute", limit: l.minuteLimit},
		{name: "hour", limit: l.hourLimit},
	}
	durations := []time.Duration{time.Minute, time.Hour}

	done := make(chan int, len(windows))
	for i := range windows {
		go func(i int) {
			windows[i].count, windows[i].err = l.dao.RequestCountSince(ctx, apiKeyID, endpoint, now.Add(-durations[i]))
			done <- i
		}(i)
	}
	for range windows {
		<-done
	}

	for _, w := range windows {
		if w.err != nil {
			logger.Errorf("rate limit count failed (fail open): key=%d endpoint=%s window=%s err=%v",
				apiKeyID, endpoint, w.name, w.err)
			continue
		}
		if w.count >= int64(w.limit) {
			return Result{
				Allowed: false,
				Reason:  fmt.Sprintf("rate limit exceeded: more than %d requests per %s", w.limit, w.name),
			}
		}
	}

	return Result{Allowed: true}
}

// Log 记录一次已放行的请求
// fire-and-forget：写失败只打日志，不影响本次请求的结果
func (l *Limiter) Log(apiKeyID uint64, endpoint, sourceIP string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		record := &entity.RateLimitRecord{
			ApiKeyID:  apiKeyID,
			Endpoint:  endpoint,
			SourceIP:  sourceIP,
			CreatedAt: time.Now(),
		}
		if err := l.dao.RequestLogCreate(ctx, record); err != nil {
			logger.Errorf("failed to log rate limit record: key=%d endpoint=%s err=%v", apiKeyID, endpoint, err)
		}
	}()
}

// RunCleanup 周期性清理过期的请求记录
// 可选的运维扩展：interval为0时不启动，记录保留retention时长
func (l *Limiter) RunCleanup(ctx context.Context, interval, retention time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := l.dao.RequestLogDeleteBefore(ctx, time.Now().Add(-retention))
				if err != nil {
					logger.Errorf("rate limit cleanup failed: %v", err)
					continue
				}
				if deleted > 0 {
					logger.Infof("rate limit cleanup removed %d records", deleted)
				}
			}
		}
	}()
}
