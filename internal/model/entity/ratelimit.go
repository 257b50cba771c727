package entity

import (
	"time"
)

// RateLimitRecord 每个凭证每次请求一行，只插入不更新
// 滑动窗口计数通过时间范围查询实现，过期行由可选的清理任务删除
type RateLimitRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	ApiKeyID uint64 `gorm:"column:api_key_id;not null;index:idx_key_endpoint_time,priority:1"`
	Endpoint string `gorm:"type:varchar(64);not null;index:idx_key_endpoint_time,priority:2"`
	SourceIP string `gorm:"column:source_ip;type:varchar(45)"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null;index:idx_key_endpoint_time,priority:3"`
}

func (RateLimitRecord) TableName() string {
	return "rate_limit_records"
}
