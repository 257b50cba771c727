package dao

import (
	"context"
	"time"

	"signalhub/internal/model/entity"
)

type RateLimitDao interface {

	// 统计某个凭证在某个接口上晚于since的请求数，滑动窗口计数用
	RequestCountSince(ctx context.Context, apiKeyID uint64, endpoint string, since time.Time) (int64, error)
	// 记录一次已放行的请求，只插入不更新
	RequestLogCreate(ctx context.Context, record *entity.RateLimitRecord) error
	// 删除早于cutoff的请求记录，可选的运维清理任务用
	RequestLogDeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
