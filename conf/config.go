package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置加载（数据库、redis、kafka、限流等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type KafkaConfig struct {
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`
}

// RateLimitConfig 信号发布接口的滑动窗口限流配置
type RateLimitConfig struct {
	MinuteLimit     int           `yaml:"minute-limit"`     // 每分钟上限，默认60
	HourLimit       int           `yaml:"hour-limit"`       // 每小时上限，默认1000
	CleanupInterval time.Duration `yaml:"cleanup-interval"` // 过期请求记录清理周期，0表示不清理
	RetentionPeriod time.Duration `yaml:"retention-period"` // 请求记录保留时长
}

type StatsConfig struct {
	RefreshInterval time.Duration `yaml:"refresh-interval"` // 聚合缓存自动刷新周期，默认5分钟
	SnapshotTTL     time.Duration `yaml:"snapshot-ttl"`     // redis统计快照过期时间
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Db        `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Stats     StatsConfig     `yaml:"stats"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	applyDefaults(&AppConfig)
	return nil
}

// 未配置的限流和统计参数使用默认值
func applyDefaults(c *Config) {
	if c.RateLimit.MinuteLimit <= 0 {
		c.RateLimit.MinuteLimit = 60
	}
	if c.RateLimit.HourLimit <= 0 {
		c.RateLimit.HourLimit = 1000
	}
	if c.RateLimit.RetentionPeriod <= 0 {
		c.RateLimit.RetentionPeriod = 24 * time.Hour
	}
	if c.Stats.RefreshInterval <= 0 {
		c.Stats.RefreshInterval = 5 * time.Minute
	}
	if c.Stats.SnapshotTTL <= 0 {
		c.Stats.SnapshotTTL = 10 * time.Minute
	}
	if c.MaxPingCount <= 0 {
		c.MaxPingCount = 10
	}
}
