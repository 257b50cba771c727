package service

import (
	"context"

	"signalhub/internal/consts"
	"signalhub/internal/dao"
	"signalhub/internal/model"
	"signalhub/pkg/errors"
	"signalhub/pkg/errors/ecode"
)

// SignalQueryService 信号列表的读侧
type SignalQueryService struct {
	signalDao dao.SignalDao
}

func NewSignalQueryService(signalDao dao.SignalDao) *SignalQueryService {
	return &SignalQueryService{
		signalDao: signalDao,
	}
}

// SignalGetCurrent 分页获取进行中的信号，按创建时间倒序
func (s *SignalQueryService) SignalGetCurrent(ctx context.Context, traderID string, page, pageSize int) (*model.SignalListRes, error) {
	return s.getPage(ctx, traderID, consts.SignalTypeCurrent, page, pageSize)
}

// SignalGetHistory 分页获取已平仓的信号，按创建时间倒序
func (s *SignalQueryService) SignalGetHistory(ctx context.Context, traderID string, page, pageSize int) (*model.SignalListRes, error) {
	return s.getPage(ctx, traderID, consts.SignalTypeHistorical, page, pageSize)
}

func (s *SignalQueryService) getPage(ctx context.Context, traderID, signalType string, page, pageSize int) (*model.SignalListRes, error) {
	signals, total, err := s.signalDao.SignalGetPage(ctx, traderID, signalType, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, ecode.DatabaseErr, "")
	}
	if signals == nil {
		signals = []model.Signal{}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &model.SignalListRes{
		Signals: signals,
		Pagination: model.Pagination{
			CurrentPage:     page,
			PageSize:        pageSize,
			TotalItems:      total,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}
