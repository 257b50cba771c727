package query

import (
	"context"
	"fmt"
	"time"

	"signalhub/internal/dao"
	"signalhub/internal/model/entity"

	"gorm.io/gorm"
)

type rateLimitDao struct {
	db *gorm.DB
}

func NewRateLimitDao(db *gorm.DB) dao.RateLimitDao {
	return &rateLimitDao{
		db: db,
	}
}

// RequestCountSince 滑动窗口计数：统计窗口起点之后的请求行数
func (r *rateLimitDao) RequestCountSince(ctx context.Context, apiKeyID uint64, endpoint string, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.RateLimitRecord{}).
		Where("api_key_id = ? AND endpoint = ? AND created_at >= ?", apiKeyID, endpoint, since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count rate limit records: %w", result.Error)
	}
	return count, nil
}

// RequestLogCreate 插入一条请求记录
func (r *rateLimitDao) RequestLogCreate(ctx context.Context, record *entity.RateLimitRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if result := r.db.WithContext(ctx).Create(record); result.Error != nil {
		return fmt.Errorf("failed to log rate limit record: %w", result.Error)
	}
	return nil
}

// RequestLogDeleteBefore 清理早于cutoff的请求记录
// 窗口计数只看时间范围，所以清理不影响限流正确性
func (r *rateLimitDao) RequestLogDeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&entity.RateLimitRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune rate limit records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
