package signal

import (
	"signalhub/internal/consts"

	"github.com/shopspring/decimal"
)

// 建议盈亏比计算
// 全部使用十进制字符串输入，解析失败或亏损侧不为正时返回 "--"

// SelectTarget 从两个可选止盈价里选出用于计算盈亏比的目标价
// 两个都有时取数值更大的那个（更激进的目标），都没有返回空串
func SelectTarget(tp1, tp2 string) string {
	switch {
	case tp1 == "" && tp2 == "":
		return ""
	case tp1 == "":
		return tp2
	case tp2 == "":
		return tp1
	}
	d1, err1 := decimal.NewFromString(tp1)
	d2, err2 := decimal.NewFromString(tp2)
	if err1 != nil {
		return tp2
	}
	if err2 != nil {
		return tp1
	}
	if d2.GreaterThan(d1) {
		return tp2
	}
	return tp1
}

// SuggestedRatio 根据入场价、目标价、止损价和方向计算建议盈亏比
//
//	做多: profit = target - entry, loss = entry - stop
//	做空: profit = entry - target, loss = stop - entry
//
// loss <= 0 或任一价格无法解析时盈亏比无定义，返回 "--"
// 否则返回保留1位小数的 "R:1"
func SuggestedRatio(entry, target, stop, direction string) string {
	if target == "" {
		return consts.RatioUndefined
	}
	entryD, err := decimal.NewFromString(entry)
	if err != nil {
		return consts.RatioUndefined
	}
	targetD, err := decimal.NewFromString(target)
	if err != nil {
		return consts.RatioUndefined
	}
	stopD, err := decimal.NewFromString(stop)
	if err != nil {
		return consts.RatioUndefined
	}

	var profit, loss decimal.Decimal
	switch direction {
	case consts.DirectionLong:
		profit = targetD.Sub(entryD)
		loss = entryD.Sub(stopD)
	case consts.DirectionShort:
		profit = entryD.Sub(targetD)
		loss = stopD.Sub(entryD)
	default:
		return consts.RatioUndefined
	}

	if loss.LessThanOrEqual(decimal.Zero) {
		return consts.RatioUndefined
	}

	ratio := profit.Div(loss).Round(1)
	return ratio.StringFixed(1) + ":1"
}
