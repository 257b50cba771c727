package query

import (
	"context"
	"errors"
	"fmt"

	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"

	"gorm.io/gorm"
)

type signalDao struct {
	db *gorm.DB
}

func NewSignalDao(db *gorm.DB) dao.SignalDao {
	return &signalDao{
		db: db,
	}
}

// SignalCreate 插入一条信号
// 批次内逐条调用，单条失败由service层记录后继续处理下一条
func (r *signalDao) SignalCreate(ctx context.Context, signal *entity.Signal) error {
	if result := r.db.WithContext(ctx).Create(signal); result.Error != nil {
		return fmt.Errorf("failed to create signal for trader %s: %w", signal.TraderID, result.Error)
	}
	return nil
}

// SignalGetPage 按信号类型分页查询，按创建时间倒序
// 返回列表和精确总数，供分页块计算
func (r *signalDao) SignalGetPage(ctx context.Context, traderID, signalType string, page, pageSize int) ([]model.Signal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Signal{}).
		Where("trader_id = ? AND signal_type = ?", traderID, signalType).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count signals for trader %s: %w", traderID, err)
	}

	var signals []model.Signal
	result := r.db.WithContext(ctx).Model(&model.Signal{}).
		Where("trader_id = ? AND signal_type = ?", traderID, signalType).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&signals)

	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, 0, fmt.Errorf("failed to get signals for trader %s: %w", traderID, result.Error)
	}

	return signals, total, nil
}

// SignalGetAllByTrader 拉取交易员的全部信号
// 统计引擎是纯内存计算，需要完整信号集
func (r *signalDao) SignalGetAllByTrader(ctx context.Context, traderID string) ([]entity.Signal, error) {
	var signals []entity.Signal
	result := r.db.WithContext(ctx).
		Where("trader_id = ?", traderID).
		Order("created_at ASC").
		Find(&signals)

	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get signals for trader %s: %w", traderID, result.Error)
	}

	return signals, nil
}

// SignalCountByTrader 精确统计信号总数
func (r *signalDao) SignalCountByTrader(ctx context.Context, traderID string) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&entity.Signal{}).
		Where("trader_id = ?", traderID).
		Count(&total)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count signals for trader %s: %w", traderID, result.Error)
	}
	return total, nil
}
