package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap оборачивает *zap.Logger, чтобы пакеты принимали один тип логгера.
type Zap struct {
	*zap.Logger
}

// New создает логгер: env=prod - JSON в production-конфигурации, иначе консольный dev-вывод.
func New(env, level string) (*Zap, error) {
	var cfg zap.Config
	if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неверный уровень логирования %q: %w", level, err)
	}
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Zap{Logger: l}, nil
}

// Wrap оборачивает готовый *zap.Logger (например, zap.NewNop() в тестах).
func Wrap(l *zap.Logger) *Zap {
	return &Zap{Logger: l}
}
