package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string // debug / info / warn / error
	JSON  bool   // JSON 输出（生产），否则控制台格式

	// 文件切割，Filename 为空则只写 stdout
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New 构建 zap，返回的 cleanup 在进程退出前调用
func New(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if opt.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl),
	}
	if opt.Filename != "" {
		rot := &lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    maxInt(1, opt.MaxSizeMB),
			MaxBackups: maxInt(0, opt.MaxBackups),
			MaxAge:     maxInt(0, opt.MaxAgeDays),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rot), lvl))
	}

	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)
	l := zap.New(core, zap.AddCaller())
	return l, func() { _ = l.Sync() }
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
