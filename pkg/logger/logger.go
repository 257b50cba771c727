package logger

import (
	"os"
	"path/filepath"

	"signalhub/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 基于zap的全局日志，支持lumberjack文件切割，可选输出到控制台

var l *zap.Logger

func init() {
	// 未初始化前使用默认配置，保证单测里也能打日志
	l, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
}

// InitLogger 根据配置初始化全局logger
func InitLogger(cfg *conf.LogConfig, appName string) {
	encCfg := zap.NewProductionEncoderConfig()
	if cfg.TimeFormat != "" {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	} else {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	fileName := cfg.FileName
	if fileName == "" {
		fileName = filepath.Join("logs", appName+".log")
	}
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter, level),
	}
	if cfg.Console {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	l = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		Named(appName)
}

// Default 返回底层的zap logger
func Default() *zap.Logger {
	return l
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { l.Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { l.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { l.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { l.Sugar().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { l.Sugar().Fatalf(format, args...) }

// Sync 刷新缓冲的日志，进程退出前调用
func Sync() {
	_ = l.Sync()
}
