package main

import (
	"flag"

	"signalhub/conf"
	"signalhub/internal/middleware"
	"signalhub/pkg/cache"
	"signalhub/pkg/db"
	"signalhub/pkg/kafka"
	"signalhub/pkg/logger"
)

var configPath = flag.String("c", "config.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*configPath); err != nil {
		panic(err)
	}
	appCfg := &conf.AppConfig

	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	gormDB := db.Init(db.NewConfig(
		appCfg.Db.Username,
		appCfg.Db.Password,
		appCfg.Db.Host,
		appCfg.Db.Port,
		appCfg.Db.DbName,
	))

	cache.InitRedis(appCfg.Redis)
	rdb := cache.GetRedisClient()

	producer := kafka.NewKafkaProducer(appCfg.Kafka.Broker, appCfg.Kafka.Topic)

	server := NewServer(appCfg)
	server.RegisterOnShutdown(func() {
		producer.Close()
		cache.CloseRedis()
	})

	apiRouter := InitRouter(gormDB, rdb, producer)
	server.Run(middleware.NewMiddleware(), apiRouter)
}
