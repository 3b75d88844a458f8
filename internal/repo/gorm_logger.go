package repo

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// zapWriter направляет вывод логгера GORM в zap.
type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

// NewGormLogger — логгер GORM поверх zap: только предупреждения, медленные
// запросы и ошибки; промах по ключу (record not found) штатный и не пишется.
func NewGormLogger(log *zap.SugaredLogger) logger.Interface {
	return logger.New(zapWriter{log: log.Named("gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
