package model

import "time"

// RawSignal 发布方提交的一条原始信号
// 除时间外全部是字符串，价格在入库前只做必填校验，数值解析交给下游
type RawSignal struct {
	Pair         string     `json:"pair"`
	Direction    string     `json:"direction"`  // 做多/做空
	EntryPrice   string     `json:"entry_price"`
	TakeProfit1  string     `json:"take_profit_1,omitempty"`
	TakeProfit2  string     `json:"take_profit_2,omitempty"`
	StopLoss     string     `json:"stop_loss"`
	OrderType    string     `json:"order_type"` // 限价单/市价单
	ContractType string     `json:"contract_type,omitempty"`
	MarginMode   string     `json:"margin_mode,omitempty"`
	Status       string     `json:"status,omitempty"`     // 平仓状态，仅历史信号有效
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	EndedAt      *time.Time `json:"ended_at,omitempty"` // 有值即为历史信号
}

// PublishSignalsReq POST /signals 请求体
type PublishSignalsReq struct {
	TraderID string      `json:"trader_id"`
	Signals  []RawSignal `json:"signals"`
}

// PublishSignalsRes 发布结果
// 部分信号入库失败时Errors逐条列出，调用方可只重提失败的
type PublishSignalsRes struct {
	Message          string   `json:"message"`
	ProcessedSignals int      `json:"processed_signals"`
	Errors           []string `json:"errors,omitempty"`
}

// Signal 信号列表项，直接从signals表扫描
type Signal struct {
	SignalID     int64      `gorm:"column:id" json:"signal_id"`
	TraderID     string     `gorm:"column:trader_id" json:"trader_id"`
	Pair         string     `gorm:"column:pair" json:"pair"`
	Direction    string     `gorm:"column:direction" json:"direction"`
	EntryPrice   string     `gorm:"column:entry_price" json:"entry_price"`
	TakeProfit1  string     `gorm:"column:take_profit_1" json:"take_profit_1,omitempty"`
	TakeProfit2  string     `gorm:"column:take_profit_2" json:"take_profit_2,omitempty"`
	StopLoss     string     `gorm:"column:stop_loss" json:"stop_loss"`
	PnlRatio     string     `gorm:"column:pnl_ratio" json:"pnl_ratio"`
	OrderType    string     `gorm:"column:order_type" json:"order_type"`
	ContractType string     `gorm:"column:contract_type" json:"contract_type"`
	MarginMode   string     `gorm:"column:margin_mode" json:"margin_mode"`
	SignalType   string     `gorm:"column:signal_type" json:"signal_type"`
	CloseStatus  *string    `gorm:"column:close_status" json:"close_status,omitempty"`
	ExitPrice    string     `gorm:"column:exit_price" json:"exit_price,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	EndedAt      *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
}

func (Signal) TableName() string {
	return "signals"
}

// Pagination 列表接口的分页信息
type Pagination struct {
	CurrentPage     int   `json:"current_page"`
	PageSize        int   `json:"page_size"`
	TotalItems      int64 `json:"total_items"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// SignalListRes 信号列表响应
type SignalListRes struct {
	Signals    []Signal   `json:"signals"`
	Pagination Pagination `json:"pagination"`
}

// TraderStats 统计引擎单趟计算出的不可变结果
type TraderStats struct {
	WinRate         float64 `json:"win_rate"`          // 胜率百分比，保留2位 [0,100]
	PnlRatio        string  `json:"pnl_ratio"`         // "R:1" / "--" / "∞"
	ActiveDays      int64   `json:"active_days"`       // 按UTC+8整天数，>=0
	TotalSignals    int64   `json:"total_signals"`     // 当前+历史
	HistoricalCount int64   `json:"historical_count"`
	CurrentCount    int64   `json:"current_count"`
}

// SignalEvent 入库成功后发往kafka和websocket订阅方的事件
type SignalEvent struct {
	Event     string    `json:"event"` // signal.ingested
	TraderID  string    `json:"trader_id"`
	Signal    Signal    `json:"signal"`
	Timestamp time.Time `json:"timestamp"`
}
