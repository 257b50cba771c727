package main

import (
	"context"

	"signalhub/conf"
	"signalhub/internal/dao/query"
	"signalhub/internal/handler/feed"
	"signalhub/internal/handler/signal"
	"signalhub/internal/ratelimit"
	"signalhub/internal/router"
	"signalhub/internal/service"
	"signalhub/pkg/kafka"
	"signalhub/pkg/logger"

	"github.com/bwmarrin/snowflake"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, rdb *redis.Client, producer kafka.ProducerService) Router {
	appCfg := conf.AppConfig

	signalDao := query.NewSignalDao(db)
	traderDao := query.NewTraderDao(db)
	apiKeyDao := query.NewApiKeyDao(db)
	rateDao := query.NewRateLimitDao(db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		logger.Fatalf("failed to create snowflake node: %v", err)
	}

	// 滑动窗口限流，附带过期请求记录的周期清理
	limiter := ratelimit.NewLimiter(rateDao, appCfg.RateLimit)
	limiter.RunCleanup(context.Background(), appCfg.RateLimit.CleanupInterval, appCfg.RateLimit.RetentionPeriod)

	statsService := service.NewStatsService(signalDao, traderDao, rdb, appCfg.Stats.SnapshotTTL)
	queryService := service.NewSignalQueryService(signalDao)

	// websocket实时推送
	feedHandler := feed.NewHandler()

	ingestService := service.NewIngestService(signalDao, traderDao, statsService, producer, feedHandler, node)

	signalHandler := signal.NewSignalHandler(ingestService, queryService, statsService)

	return router.NewApiRouter(signalHandler, feedHandler, apiKeyDao, limiter)
}
