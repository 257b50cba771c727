package dao

import (
	"context"

	"signalhub/internal/model"
	"signalhub/internal/model/entity"
)

type SignalDao interface {

	// 插入一条信号
	SignalCreate(ctx context.Context, signal *entity.Signal) error
	// 按信号类型分页获取某个交易员的信号，按创建时间倒序，同时返回总数
	SignalGetPage(ctx context.Context, traderID, signalType string, page, pageSize int) ([]model.Signal, int64, error)
	// 获取某个交易员的全部信号，供统计引擎在内存中单趟计算
	SignalGetAllByTrader(ctx context.Context, traderID string) ([]entity.Signal, error)
	// 精确统计某个交易员的信号总数
	SignalCountByTrader(ctx context.Context, traderID string) (int64, error)
}
