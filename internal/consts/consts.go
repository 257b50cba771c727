package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"
	// ApiKeyID 通过鉴权后写入context的凭证id
	ApiKeyID = "api_key_id"
	// ClientIP 请求来源ip
	ClientIP = "client_ip"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// 信号方向，与发布方的请求体保持一致
const (
	DirectionLong  = "做多"
	DirectionShort = "做空"
)

// 订单类型
const (
	OrderTypeLimit  = "限价单"
	OrderTypeMarket = "市价单"
)

// 平仓状态，只有历史信号才有
const (
	CloseStatusTakeProfit = "take-profit-close"
	CloseStatusStopLoss   = "stop-loss-close"
	CloseStatusManual     = "manual-close"
)

// AllowedCloseStatuses 允许的平仓状态集合，之外的值一律归为空
var AllowedCloseStatuses = map[string]struct{}{
	CloseStatusTakeProfit: {},
	CloseStatusStopLoss:   {},
	CloseStatusManual:     {},
}

// 信号类型：根据是否携带平仓时间在入库时推导，不信任调用方
const (
	SignalTypeCurrent    = "current"
	SignalTypeHistorical = "historical"
)

// 合约类型和保证金模式的默认值
const (
	DefaultContractType = "perpetual"
	DefaultMarginMode   = "cross"
)

// RatioUndefined 盈亏比无法计算时的哨兵值
const RatioUndefined = "--"

// RatioInfinite 有盈利且零亏损时的盈亏比
const RatioInfinite = "∞"

// StatsNotional 计算已实现盈亏使用的固定名义仓位（记账单位）
// 与交易员实际仓位无关，是统计口径上的简化
const StatsNotional = 1000.0

// StatsTimezoneOffset 统计活跃天数时使用的固定UTC+8偏移
const StatsTimezoneOffset = 8 * time.Hour

// redis key前缀
const (
	TraderStatsPrefix = "Trader_Stats_snapshot:"

	// RedisExrDefault 默认redis过期时间
	RedisExrDefault = time.Minute * 10
)

// 分页
const (
	PageSizeMax     = 100
	PageSizeDefault = 20
)
