package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"

	"gorm.io/gorm"
)

type traderDao struct {
	db *gorm.DB
}

func NewTraderDao(db *gorm.DB) dao.TraderDao {
	return &traderDao{
		db: db,
	}
}

// TraderGetByID 查找交易员，记录未找到时返回 nil, nil
func (r *traderDao) TraderGetByID(ctx context.Context, id string) (*entity.Trader, error) {
	var trader entity.Trader
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&trader)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trader %s: %w", id, result.Error)
	}

	return &trader, nil
}

// TraderUpdateStats 把统计快照写回交易员行
// 快照允许与signals表短暂不一致，这里不放进入库事务
func (r *traderDao) TraderUpdateStats(ctx context.Context, id string, stats model.TraderStats) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.Trader{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"win_rate":         stats.WinRate,
			"pnl_ratio":        stats.PnlRatio,
			"total_signals":    stats.TotalSignals,
			"active_days":      stats.ActiveDays,
			"stats_updated_at": &now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update stats for trader %s: %w", id, result.Error)
	}
	return nil
}
