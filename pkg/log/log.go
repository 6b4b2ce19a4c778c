package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func InitLog(lvl zap.AtomicLevel) *zap.Logger {
	return build(lvl, []string{"stdout"})
}

// InitWorkerLog builds the logger used inside worker processes. Stdout is
// reserved for the message channel, so everything goes to stderr.
func InitWorkerLog(lvl zap.AtomicLevel) *zap.Logger {
	return build(lvl, []string{"stderr"})
}

// ParseLevel returns the atomic level for s, falling back to info.
func ParseLevel(s string) zap.AtomicLevel {
	logLvl, err := zap.ParseAtomicLevel(s)
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return logLvl
}

func build(lvl zap.AtomicLevel, outputs []string) *zap.Logger {
	loggerCfg := &zap.Config{
		Level:    lvl,
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	plain, err := loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
	if err != nil {
		panic(err)
	}

	return plain
}
