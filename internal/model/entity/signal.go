package entity

import (
	"time"
)

// Signal 交易员发布的一条信号（喊单）
// 价格一律以十进制字符串存储，避免浮点误差；
// 是否为历史信号只由EndedAt是否存在推导，入库时写入SignalType
type Signal struct {
	ID       int64  `gorm:"primaryKey"` // snowflake id
	TraderID string `gorm:"column:trader_id;type:varchar(64);not null;index:idx_trader_type,priority:1"`

	Pair      string `gorm:"type:varchar(30);not null"`           // 交易对
	Direction string `gorm:"type:varchar(10);not null"`           // 做多/做空
	OrderType string `gorm:"column:order_type;type:varchar(10);not null"` // 限价单/市价单

	EntryPrice  string `gorm:"column:entry_price;type:varchar(32);not null"`
	TakeProfit1 string `gorm:"column:take_profit_1;type:varchar(32)"` // 可选，空串表示未提供
	TakeProfit2 string `gorm:"column:take_profit_2;type:varchar(32)"` // 可选
	StopLoss    string `gorm:"column:stop_loss;type:varchar(32);not null"`

	// 建议盈亏比，格式 "X.X:1"，不可计算时为 "--"
	PnlRatio string `gorm:"column:pnl_ratio;type:varchar(16);not null"`

	ContractType string `gorm:"column:contract_type;type:varchar(20);not null"` // 默认 perpetual
	MarginMode   string `gorm:"column:margin_mode;type:varchar(20);not null"`   // 默认 cross

	// current / historical，入库时根据EndedAt推导
	SignalType string `gorm:"column:signal_type;type:varchar(12);not null;index:idx_trader_type,priority:2"`

	// 平仓状态，只允许 take-profit-close / stop-loss-close / manual-close，否则为NULL
	CloseStatus *string    `gorm:"column:close_status;type:varchar(24)"`
	ExitPrice   string     `gorm:"column:exit_price;type:varchar(32)"` // 实际离场价，可选
	RealizedPnl *float64   `gorm:"column:realized_pnl;type:decimal(20,8)"`
	EndedAt     *time.Time `gorm:"column:ended_at;type:timestamp"` // 平仓时间，历史信号必有

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null;index:idx_created"`
}

func (Signal) TableName() string {
	return "signals"
}
