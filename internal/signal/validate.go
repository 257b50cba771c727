package signal

import (
	"fmt"

	"signalhub/internal/consts"
	"signalhub/internal/model"
)

// 单条信号的字段校验
// 错误信息是面向调用方的提示，按 signal[i]: xxx 的格式逐条给出

// ValidateOne 校验一条原始信号，返回该条的全部错误
func ValidateOne(index int, raw model.RawSignal) []string {
	var errs []string
	appendErr := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf("signal[%d]: ", index)+fmt.Sprintf(format, args...))
	}

	if raw.Pair == "" {
		appendErr("pair is required")
	}
	switch raw.Direction {
	case "":
		appendErr("direction is required")
	case consts.DirectionLong, consts.DirectionShort:
	default:
		appendErr("direction must be %s or %s", consts.DirectionLong, consts.DirectionShort)
	}
	if raw.EntryPrice == "" {
		appendErr("entry_price is required")
	}
	if raw.StopLoss == "" {
		appendErr("stop_loss is required")
	}
	switch raw.OrderType {
	case "":
		appendErr("order_type is required")
	case consts.OrderTypeLimit, consts.OrderTypeMarket:
	default:
		appendErr("order_type must be %s or %s", consts.OrderTypeLimit, consts.OrderTypeMarket)
	}

	return errs
}

// ValidateBatch 校验整个批次
// 任何一条失败整批拒绝，不做部分接受；入库阶段的部分失败容忍在service层处理
func ValidateBatch(signals []model.RawSignal) []string {
	var errs []string
	for i, raw := range signals {
		errs = append(errs, ValidateOne(i, raw)...)
	}
	return errs
}

// NormalizeCloseStatus 过滤平仓状态
// 只有历史信号（带平仓时间）允许携带平仓状态，且必须在允许集合内，否则一律归为nil
func NormalizeCloseStatus(raw model.RawSignal) *string {
	if raw.EndedAt == nil || raw.Status == "" {
		return nil
	}
	if _, ok := consts.AllowedCloseStatuses[raw.Status]; !ok {
		return nil
	}
	status := raw.Status
	return &status
}
