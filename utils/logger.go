package utils

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

// InitLogger swaps the global logger for a production logger at level.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func GetLogger(ctx context.Context) *zap.Logger {
	return zap.L()
}

func GetPanicInfo() string {
	buf := make([]byte, 16384)
	l := runtime.Stack(buf, false)
	return string(buf[:l])
}

// RecoverToError must be deferred directly. It logs a recovered panic with its
// stack and stores it in *errp.
func RecoverToError(ctx context.Context, name string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	GetLogger(ctx).Error(name+" recover panic error!", zap.Any("err", r),
		zap.String("panic info", GetPanicInfo()))
	if errp != nil {
		*errp = fmt.Errorf("%s panic: %v", name, r)
	}
}
