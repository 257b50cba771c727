package entity

import (
	"time"
)

// Trader 被跟踪的交易员聚合
// 统计字段是入库成功后异步刷新的快照，与signals表是最终一致的
type Trader struct {
	ID       string `gorm:"primaryKey;type:varchar(64)"`
	Nickname string `gorm:"type:varchar(64)"`

	WinRate      float64 `gorm:"column:win_rate;type:decimal(5,2);not null;default:0"` // 胜率百分比 [0,100]
	PnlRatio     string  `gorm:"column:pnl_ratio;type:varchar(16);not null;default:'--'"`
	YieldRate    float64 `gorm:"column:yield_rate;type:decimal(10,4);not null;default:0"`
	TotalSignals int64   `gorm:"column:total_signals;not null;default:0"`
	ActiveDays   int64   `gorm:"column:active_days;not null;default:0"`

	StatsUpdatedAt *time.Time `gorm:"column:stats_updated_at;type:timestamp"` // 快照最后刷新时间

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Trader) TableName() string {
	return "traders"
}
