package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signalhub/internal/consts"
	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"
	sig "signalhub/internal/signal"
	"signalhub/pkg/errors"
	"signalhub/pkg/errors/ecode"
	"signalhub/pkg/kafka"
	"signalhub/pkg/logger"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/multierr"
)

// SignalBroadcaster 入库成功的信号推给websocket订阅方
type SignalBroadcaster interface {
	BroadcastSignal(event model.SignalEvent)
}

// IngestService 信号入库编排
// 凭证和限流在middleware完成，这里从载荷检查开始：
// trader_id/signals检查 → 交易员存在性 → 整批校验 → 逐条落库（容忍单条失败）→ 统计刷新
type IngestService struct {
	signalDao dao.SignalDao
	traderDao dao.TraderDao
	stats     *StatsService
	producer  kafka.ProducerService // 可为nil
	feed      SignalBroadcaster     // 可为nil
	node      *snowflake.Node
}

func NewIngestService(
	signalDao dao.SignalDao,
	traderDao dao.TraderDao,
	stats *StatsService,
	producer kafka.ProducerService,
	feed SignalBroadcaster,
	node *snowflake.Node,
) *IngestService {
	return &IngestService{
		signalDao: signalDao,
		traderDao: traderDao,
		stats:     stats,
		producer:  producer,
		feed:      feed,
		node:      node,
	}
}

// PublishSignals 处理一个信号批次
// 校验失败整批拒绝；落库阶段单条失败只记录并继续，绝不中断兄弟信号；
// 只要落库数>0就刷新统计快照，刷新失败吞掉（信号已持久化，不改变HTTP结果）
func (s *IngestService) PublishSignals(ctx context.Context, req model.PublishSignalsReq) (*model.PublishSignalsRes, error) {
	if req.TraderID == "" {
		return nil, errors.WithCode(ecode.MissingTraderIdErr, "")
	}
	if len(req.Signals) == 0 {
		return nil, errors.WithCode(ecode.MissingSignalsErr, "")
	}

	trader, err := s.traderDao.TraderGetByID(ctx, req.TraderID)
	if err != nil {
		return nil, errors.Wrap(err, ecode.DatabaseErr, "")
	}
	if trader == nil {
		return nil, errors.WithCode(ecode.TraderNotFoundErr, fmt.Sprintf("trader %s not found", req.TraderID))
	}

	if verrs := sig.ValidateBatch(req.Signals); len(verrs) > 0 {
		return nil, errors.WithCode(ecode.InvalidSignalDataErr, strings.Join(verrs, "; "))
	}

	// 逐条顺序落库：保证单条错误可以归因，也避免单批并发写放大
	var (
		processed  int
		itemErrs   []string
		persistErr error
	)
	for i := range req.Signals {
		record := s.buildRecord(req.TraderID, req.Signals[i])
		if err := s.signalDao.SignalCreate(ctx, record); err != nil {
			itemErrs = append(itemErrs, fmt.Sprintf("signal[%d]: failed to persist: %v", i, err))
			persistErr = multierr.Append(persistErr, err)
			continue
		}
		processed++
		s.publishEvent(record)
	}
	if persistErr != nil {
		logger.Errorf("trader %s batch had persistence failures: %v", req.TraderID, persistErr)
	}

	if processed > 0 {
		if _, err := s.stats.StatsRecompute(ctx, req.TraderID); err != nil {
			// 快照刷新是尽力而为的缓存，失败只记日志
			logger.Errorf("failed to refresh stats for trader %s: %v", req.TraderID, err)
		}
	}

	return &model.PublishSignalsRes{
		Message:          fmt.Sprintf("processed %d of %d signals", processed, len(req.Signals)),
		ProcessedSignals: processed,
		Errors:           itemErrs,
	}, nil
}

// buildRecord 把原始信号规整成可落库的记录
// current/historical只由ended_at是否存在推导，调用方给的类型字段一律不信
func (s *IngestService) buildRecord(traderID string, raw model.RawSignal) *entity.Signal {
	now := time.Now()
	createdAt := now
	if raw.CreatedAt != nil {
		createdAt = *raw.CreatedAt
	}

	signalType := consts.SignalTypeCurrent
	if raw.EndedAt != nil {
		signalType = consts.SignalTypeHistorical
	}

	contractType := raw.ContractType
	if contractType == "" {
		contractType = consts.DefaultContractType
	}
	marginMode := raw.MarginMode
	if marginMode == "" {
		marginMode = consts.DefaultMarginMode
	}

	target := sig.SelectTarget(raw.TakeProfit1, raw.TakeProfit2)

	return &entity.Signal{
		ID:           s.node.Generate().Int64(),
		TraderID:     traderID,
		Pair:         raw.Pair,
		Direction:    raw.Direction,
		OrderType:    raw.OrderType,
		EntryPrice:   raw.EntryPrice,
		TakeProfit1:  raw.TakeProfit1,
		TakeProfit2:  raw.TakeProfit2,
		StopLoss:     raw.StopLoss,
		PnlRatio:     sig.SuggestedRatio(raw.EntryPrice, target, raw.StopLoss, raw.Direction),
		ContractType: contractType,
		MarginMode:   marginMode,
		SignalType:   signalType,
		CloseStatus:  sig.NormalizeCloseStatus(raw),
		EndedAt:      raw.EndedAt,
		CreatedAt:    createdAt,
	}
}

// publishEvent 把入库成功的信号广播出去（kafka + websocket）
// fire-and-forget，失败只记日志
func (s *IngestService) publishEvent(record *entity.Signal) {
	event := model.SignalEvent{
		Event:     "signal.ingested",
		TraderID:  record.TraderID,
		Signal:    toSignalModel(record),
		Timestamp: time.Now(),
	}

	if s.feed != nil {
		s.feed.BroadcastSignal(event)
	}
	if s.producer != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.producer.Produce(ctx, []byte(event.TraderID), event); err != nil {
				logger.Errorf("failed to publish signal event for trader %s: %v", event.TraderID, err)
			}
		}()
	}
}

func toSignalModel(record *entity.Signal) model.Signal {
	return model.Signal{
		SignalID:     record.ID,
		TraderID:     record.TraderID,
		Pair:         record.Pair,
		Direction:    record.Direction,
		EntryPrice:   record.EntryPrice,
		TakeProfit1:  record.TakeProfit1,
		TakeProfit2:  record.TakeProfit2,
		StopLoss:     record.StopLoss,
		PnlRatio:     record.PnlRatio,
		OrderType:    record.OrderType,
		ContractType: record.ContractType,
		MarginMode:   record.MarginMode,
		SignalType:   record.SignalType,
		CloseStatus:  record.CloseStatus,
		ExitPrice:    record.ExitPrice,
		CreatedAt:    record.CreatedAt,
		EndedAt:      record.EndedAt,
	}
}
