package signal

import (
	"signalhub/internal/consts"
	"signalhub/internal/model"
	"signalhub/internal/service"
	"signalhub/pkg/errors"
	"signalhub/pkg/errors/ecode"
	"signalhub/pkg/response"

	"github.com/spf13/cast"

	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	ingest *service.IngestService
	query  *service.SignalQueryService
	stats  *service.StatsService
}

func NewSignalHandler(ingest *service.IngestService, query *service.SignalQueryService, stats *service.StatsService) *SignalHandler {
	return &SignalHandler{
		ingest: ingest,
		query:  query,
		stats:  stats,
	}
}

// PublishSignals 第三方发布方批量推送交易信号
// 校验失败整批拒绝；单条落库失败不影响其它条，在errors里逐条报告
func (h *SignalHandler) PublishSignals() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.PublishSignalsReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.Fail(ctx, ecode.ValidateErr, "invalid request body")
			return
		}

		res, err := h.ingest.PublishSignals(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// SignalGetCurrent 分页获取进行中的信号
func (h *SignalHandler) SignalGetCurrent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		traderID := ctx.Query("trader_id")
		if traderID == "" {
			response.Fail(ctx, ecode.MissingTraderIdErr, "trader_id is required")
			return
		}
		page, pageSize, err := parsePagination(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}

		res, err := h.query.SignalGetCurrent(ctx, traderID, page, pageSize)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// SignalGetHistory 分页获取已平仓的信号
func (h *SignalHandler) SignalGetHistory() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		traderID := ctx.Query("trader_id")
		if traderID == "" {
			response.Fail(ctx, ecode.MissingTraderIdErr, "trader_id is required")
			return
		}
		page, pageSize, err := parsePagination(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}

		res, err := h.query.SignalGetHistory(ctx, traderID, page, pageSize)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// StatsGet 获取交易员的统计快照
func (h *SignalHandler) StatsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		traderID := ctx.Query("trader_id")
		if traderID == "" {
			response.Fail(ctx, ecode.MissingTraderIdErr, "trader_id is required")
			return
		}

		stats, err := h.stats.StatsGet(ctx, traderID)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, ""), nil)
			return
		}
		response.JSON(ctx, nil, stats)
	}
}

// parsePagination 解析分页参数
// page默认1且必须≥1；page_size默认20且必须在[1,100]内
func parsePagination(ctx *gin.Context) (int, int, error) {
	page := 1
	if v := ctx.Query("page"); v != "" {
		page = cast.ToInt(v)
		if page < 1 {
			return 0, 0, errors.WithCode(ecode.InvalidPageErr, "page must be a positive integer")
		}
	}

	pageSize := consts.PageSizeDefault
	if v := ctx.Query("page_size"); v != "" {
		pageSize = cast.ToInt(v)
		if pageSize < 1 || pageSize > consts.PageSizeMax {
			return 0, 0, errors.WithCode(ecode.InvalidPageSizeErr, "page_size must be between 1 and 100")
		}
	}

	return page, pageSize, nil
}
