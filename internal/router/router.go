package router

import (
	"signalhub/internal/dao"
	"signalhub/internal/handler/feed"
	"signalhub/internal/handler/ping"
	"signalhub/internal/handler/signal"
	"signalhub/internal/middleware"
	"signalhub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	signalHandler *signal.SignalHandler
	feedHandler   *feed.Handler
	apiKeyDao     dao.ApiKeyDao
	limiter       *ratelimit.Limiter
}

func NewApiRouter(sh *signal.SignalHandler, fh *feed.Handler, keys dao.ApiKeyDao, limiter *ratelimit.Limiter) *ApiRouter {
	return &ApiRouter{
		signalHandler: sh,
		feedHandler:   fh,
		apiKeyDao:     keys,
		limiter:       limiter,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/ping", ping.Ping())

	// 凭证鉴权 + 凭证级滑动窗口限流
	auth := g.Group("", middleware.ApiKeyAuth(api.apiKeyDao), middleware.RateLimit(api.limiter))
	{
		// 第三方发布方批量推送信号
		auth.POST("/signals", api.signalHandler.PublishSignals())
		auth.GET("/signals/current", api.signalHandler.SignalGetCurrent())
		auth.GET("/signals/history", api.signalHandler.SignalGetHistory())
		auth.GET("/signals/stats", api.signalHandler.StatsGet())
	}

	// 防抖只挂在websocket入口，避免同一来源的重连风暴
	f := g.Group("/signal", middleware.AntiDuplicateMiddleware())
	{
		f.GET("/feed", api.feedHandler.ServeWS) // 通过websocket连接实时接收新信号
	}
}
