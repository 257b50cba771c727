package dao

import (
	"context"

	"signalhub/internal/model"
	"signalhub/internal/model/entity"
)

type TraderDao interface {

	// 按id查找交易员，未找到返回 nil, nil
	TraderGetByID(ctx context.Context, id string) (*entity.Trader, error)
	// 将统计快照写到交易员行上，入库批次成功后异步调用
	TraderUpdateStats(ctx context.Context, id string, stats model.TraderStats) error
}
