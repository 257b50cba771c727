package service

import (
	"testing"
	"time"

	"signalhub/internal/consts"
	"signalhub/internal/model/entity"
)

func strPtr(s string) *string { return &s }

func historicalSignal(pair, direction, entry, tp1, tp2, stop, status string, createdAt time.Time) entity.Signal {
	ended := createdAt.Add(time.Hour)
	var cs *string
	if status != "" {
		cs = strPtr(status)
	}
	return entity.Signal{
		TraderID:    "t1",
		Pair:        pair,
		Direction:   direction,
		EntryPrice:  entry,
		TakeProfit1: tp1,
		TakeProfit2: tp2,
		StopLoss:    stop,
		SignalType:  consts.SignalTypeHistorical,
		CloseStatus: cs,
		CreatedAt:   createdAt,
		EndedAt:     &ended,
	}
}

func currentSignal(createdAt time.Time) entity.Signal {
	return entity.Signal{
		TraderID:   "t1",
		Pair:       "BTC/USDT",
		Direction:  consts.DirectionLong,
		EntryPrice: "45000",
		StopLoss:   "44000",
		SignalType: consts.SignalTypeCurrent,
		CreatedAt:  createdAt,
	}
}

func TestComputeTraderStatsEmpty(t *testing.T) {
	stats := ComputeTraderStats(nil, time.Now())
	if stats.WinRate != 0 {
		t.Fatalf("win rate should be 0 with no signals, got %v", stats.WinRate)
	}
	if stats.PnlRatio != consts.RatioUndefined {
		t.Fatalf("pnl ratio should be %s with no historical signals, got %s", consts.RatioUndefined, stats.PnlRatio)
	}
	if stats.ActiveDays != 0 || stats.TotalSignals != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestComputeTraderStatsOnlyCurrent(t *testing.T) {
	now := time.Now()
	signals := []entity.Signal{currentSignal(now), currentSignal(now)}

	stats := ComputeTraderStats(signals, now)
	if stats.TotalSignals != 2 || stats.CurrentCount != 2 || stats.HistoricalCount != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	// 没有历史信号：胜率0，盈亏比"--"，活跃天数0
	if stats.WinRate != 0 || stats.PnlRatio != consts.RatioUndefined || stats.ActiveDays != 0 {
		t.Fatalf("unexpected stats with zero historical: %+v", stats)
	}
}

func TestComputeTraderStatsWinRate(t *testing.T) {
	now := time.Now()
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusStopLoss, now.Add(-20*time.Hour)),
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "", "", "95", consts.CloseStatusManual, now.Add(-10*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	// 3条历史里1条止盈 → 33.33
	if stats.WinRate != 33.33 {
		t.Fatalf("expected win rate 33.33, got %v", stats.WinRate)
	}
	if stats.WinRate < 0 || stats.WinRate > 100 {
		t.Fatalf("win rate out of [0,100]: %v", stats.WinRate)
	}
}

func TestComputeTraderStatsPnlRatio(t *testing.T) {
	now := time.Now()
	// 止盈: entry=100, tp=110 → +10% * 1000 = +100
	// 止损: entry=100, sl=95  → -5% * 1000 = -50
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusStopLoss, now.Add(-23*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	if stats.PnlRatio != "2.0:1" {
		t.Fatalf("expected 2.0:1, got %s", stats.PnlRatio)
	}
}

func TestComputeTraderStatsPnlRatioInfinite(t *testing.T) {
	now := time.Now()
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	if stats.PnlRatio != consts.RatioInfinite {
		t.Fatalf("profit with zero loss should be %s, got %s", consts.RatioInfinite, stats.PnlRatio)
	}
}

func TestComputeTraderStatsTakeProfitUsesLargerTarget(t *testing.T) {
	now := time.Now()
	// tp2更大，离场价应取110: +100盈利；止损-50 → 2.0:1
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "105", "110", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "105", "110", "95", consts.CloseStatusStopLoss, now.Add(-23*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	if stats.PnlRatio != "2.0:1" {
		t.Fatalf("expected 2.0:1 with larger target, got %s", stats.PnlRatio)
	}
}

func TestComputeTraderStatsShortDirection(t *testing.T) {
	now := time.Now()
	// 做空止盈: entry=100, tp=90 → (90-100)/100 * -1 = +10% → |+100|
	// 做空止损: entry=100, sl=105 → (105-100)/100 * -1 = -5% → |-50|
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionShort, "100", "90", "", "105", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
		historicalSignal("BTC/USDT", consts.DirectionShort, "100", "90", "", "105", consts.CloseStatusStopLoss, now.Add(-23*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	if stats.PnlRatio != "2.0:1" {
		t.Fatalf("expected 2.0:1 for short signals, got %s", stats.PnlRatio)
	}
}

func TestComputeTraderStatsTakeProfitWithoutTarget(t *testing.T) {
	now := time.Now()
	// 止盈平仓但两个止盈价都缺失：离场价退回入场价，盈亏为0 → 双零 → "--"
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "", "", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	if stats.PnlRatio != consts.RatioUndefined {
		t.Fatalf("zero profit and zero loss should be %s, got %s", consts.RatioUndefined, stats.PnlRatio)
	}
	if stats.WinRate != 100 {
		t.Fatalf("the signal still counts as a win: %v", stats.WinRate)
	}
}

func TestComputeTraderStatsActiveDays(t *testing.T) {
	now := time.Now()
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(-73*time.Hour)), // 最早
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusStopLoss, now.Add(-24*time.Hour)),
	}

	stats := ComputeTraderStats(signals, now)
	// 73小时 → 向下取整3天
	if stats.ActiveDays != 3 {
		t.Fatalf("expected 3 active days, got %d", stats.ActiveDays)
	}
}

func TestComputeTraderStatsActiveDaysMonotonic(t *testing.T) {
	base := time.Now()
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, base.Add(-24*time.Hour)),
	}

	prev := int64(-1)
	for _, advance := range []time.Duration{0, 12 * time.Hour, 48 * time.Hour, 240 * time.Hour} {
		stats := ComputeTraderStats(signals, base.Add(advance))
		if stats.ActiveDays < prev {
			t.Fatalf("active days must be non-decreasing: prev=%d now=%d", prev, stats.ActiveDays)
		}
		if stats.ActiveDays < 0 {
			t.Fatalf("active days must be >= 0, got %d", stats.ActiveDays)
		}
		prev = stats.ActiveDays
	}
}

func TestComputeTraderStatsClockBehindSignal(t *testing.T) {
	now := time.Now()
	// 信号时间在"未来"（时钟偏差）：活跃天数夹到0
	signals := []entity.Signal{
		historicalSignal("BTC/USDT", consts.DirectionLong, "100", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(2*time.Hour)),
	}
	stats := ComputeTraderStats(signals, now)
	if stats.ActiveDays != 0 {
		t.Fatalf("active days must clamp to 0, got %d", stats.ActiveDays)
	}
}

func TestComputeTraderStatsUnparsableEntry(t *testing.T) {
	now := time.Now()
	// 入场价解析失败：该条盈亏记0，不影响其它统计
	bad := historicalSignal("BTC/USDT", consts.DirectionLong, "n/a", "110", "", "95", consts.CloseStatusTakeProfit, now.Add(-24*time.Hour))
	stats := ComputeTraderStats([]entity.Signal{bad}, now)
	if stats.PnlRatio != consts.RatioUndefined {
		t.Fatalf("unparsable entry yields zero pnl → %s, got %s", consts.RatioUndefined, stats.PnlRatio)
	}
	if stats.HistoricalCount != 1 {
		t.Fatalf("signal still counts as historical: %+v", stats)
	}
}
