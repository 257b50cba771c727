package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"signalhub/internal/consts"
	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"
	sig "signalhub/internal/signal"
	"signalhub/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// 统计引擎：对内存中的信号集做单趟纯计算，不做任何I/O
// 胜率、盈亏比、活跃天数、总数打包成一个不可变结果

// ComputeTraderStats 单趟计算交易员的全部统计指标
// 是否历史信号只看EndedAt是否存在，与入库时的分类口径一致
func ComputeTraderStats(signals []entity.Signal, now time.Time) model.TraderStats {
	var (
		historical int64
		wins       int64
		profitAbs  = decimal.Zero // 止盈平仓的|盈亏|累计
		lossAbs    = decimal.Zero // 止损平仓的|盈亏|累计
		earliest   *time.Time     // 最早的历史信号时间
	)

	for i := range signals {
		s := &signals[i]
		if s.EndedAt == nil {
			continue
		}
		historical++

		if earliest == nil || s.CreatedAt.Before(*earliest) {
			t := s.CreatedAt
			earliest = &t
		}

		if s.CloseStatus == nil {
			continue
		}
		pnl := realizedPnl(s)
		switch *s.CloseStatus {
		case consts.CloseStatusTakeProfit:
			wins++
			profitAbs = profitAbs.Add(pnl.Abs())
		case consts.CloseStatusStopLoss:
			lossAbs = lossAbs.Add(pnl.Abs())
		}
	}

	total := int64(len(signals))
	stats := model.TraderStats{
		TotalSignals:    total,
		HistoricalCount: historical,
		CurrentCount:    total - historical,
		PnlRatio:        consts.RatioUndefined,
	}

	if historical > 0 {
		rate := float64(wins) / float64(historical) * 100.0
		rate = math.Round(rate*100) / 100
		stats.WinRate = math.Min(math.Max(rate, 0), 100)
		stats.PnlRatio = formatRealizedRatio(profitAbs, lossAbs)
		stats.ActiveDays = activeDays(*earliest, now)
	}

	return stats
}

// realizedPnl 单条历史信号的已实现盈亏
// 离场价：止盈平仓取两个止盈价里更大的（没有则退回入场价，盈亏为0）；
// 止损平仓取止损价；其它状态盈亏为0
// 盈亏 = 固定名义仓位 * (离场-入场)/入场 * 方向
func realizedPnl(s *entity.Signal) decimal.Decimal {
	entry, err := decimal.NewFromString(s.EntryPrice)
	if err != nil || entry.IsZero() {
		return decimal.Zero
	}

	var exit decimal.Decimal
	switch {
	case s.CloseStatus != nil && *s.CloseStatus == consts.CloseStatusTakeProfit:
		target := sig.SelectTarget(s.TakeProfit1, s.TakeProfit2)
		if target == "" {
			target = s.EntryPrice
		}
		if exit, err = decimal.NewFromString(target); err != nil {
			return decimal.Zero
		}
	case s.CloseStatus != nil && *s.CloseStatus == consts.CloseStatusStopLoss:
		if exit, err = decimal.NewFromString(s.StopLoss); err != nil {
			return decimal.Zero
		}
	default:
		return decimal.Zero
	}

	direction := decimal.NewFromInt(1)
	if s.Direction == consts.DirectionShort {
		direction = decimal.NewFromInt(-1)
	}

	notional := decimal.NewFromFloat(consts.StatsNotional)
	return notional.Mul(exit.Sub(entry)).Div(entry).Mul(direction)
}

// formatRealizedRatio 已实现盈亏比
// 有盈利且零亏损为"∞"；双零视为不可计算；其余保留1位小数
func formatRealizedRatio(profitAbs, lossAbs decimal.Decimal) string {
	if lossAbs.IsZero() {
		if profitAbs.IsPositive() {
			return consts.RatioInfinite
		}
		return consts.RatioUndefined
	}
	return profitAbs.Div(lossAbs).Round(1).StringFixed(1) + ":1"
}

// activeDays 距最早历史信号的整天数
// 两端都换算到固定的UTC+8再做差，向下取整，最小为0
func activeDays(earliest, now time.Time) int64 {
	zone := time.FixedZone("UTC+8", int(consts.StatsTimezoneOffset/time.Second))
	diff := now.In(zone).Sub(earliest.In(zone))
	days := int64(math.Floor(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// StatsService 统计的读写入口
// 重算走signals全量 + 内存单趟；redis里放一份带TTL的快照给读侧加速
type StatsService struct {
	signalDao dao.SignalDao
	traderDao dao.TraderDao
	redis     *redis.Client // 可为nil，此时跳过快照
	ttl       time.Duration
}

func NewStatsService(signalDao dao.SignalDao, traderDao dao.TraderDao, rdb *redis.Client, ttl time.Duration) *StatsService {
	if ttl <= 0 {
		ttl = consts.RedisExrDefault
	}
	return &StatsService{
		signalDao: signalDao,
		traderDao: traderDao,
		redis:     rdb,
		ttl:       ttl,
	}
}

// StatsRecompute 重算统计并把快照写回traders行和redis
// 入库批次成功后调用；调用方负责吞掉错误（快照是尽力而为的缓存，不属于持久化契约）
func (s *StatsService) StatsRecompute(ctx context.Context, traderID string) (model.TraderStats, error) {
	signals, err := s.signalDao.SignalGetAllByTrader(ctx, traderID)
	if err != nil {
		return model.TraderStats{}, fmt.Errorf("failed to load signals for stats: %w", err)
	}

	stats := ComputeTraderStats(signals, time.Now())

	if err := s.traderDao.TraderUpdateStats(ctx, traderID, stats); err != nil {
		return stats, fmt.Errorf("failed to update trader stats snapshot: %w", err)
	}

	s.cacheSnapshot(ctx, traderID, stats)
	return stats, nil
}

// StatsGet 读侧入口：优先redis快照，未命中则现算（不回写traders行）
func (s *StatsService) StatsGet(ctx context.Context, traderID string) (model.TraderStats, error) {
	if stats, ok := s.loadSnapshot(ctx, traderID); ok {
		return stats, nil
	}

	signals, err := s.signalDao.SignalGetAllByTrader(ctx, traderID)
	if err != nil {
		return model.TraderStats{}, fmt.Errorf("failed to load signals for stats: %w", err)
	}
	stats := ComputeTraderStats(signals, time.Now())
	s.cacheSnapshot(ctx, traderID, stats)
	return stats, nil
}

func (s *StatsService) cacheSnapshot(ctx context.Context, traderID string, stats model.TraderStats) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, consts.TraderStatsPrefix+traderID, payload, s.ttl).Err(); err != nil {
		logger.Warnf("failed to cache stats snapshot for trader %s: %v", traderID, err)
	}
}

func (s *StatsService) loadSnapshot(ctx context.Context, traderID string) (model.TraderStats, bool) {
	if s.redis == nil {
		return model.TraderStats{}, false
	}
	payload, err := s.redis.Get(ctx, consts.TraderStatsPrefix+traderID).Bytes()
	if err != nil {
		return model.TraderStats{}, false
	}
	var stats model.TraderStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return model.TraderStats{}, false
	}
	return stats, true
}
