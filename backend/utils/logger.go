package utils

import (
	"io"
	"log"
	"log/slog"
	"os"
)

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// text or json
	Format string
	// os.Stdout when nil
	Output io.Writer
	// Включить/выключить цвета для консоли
	EnableColors bool
}

// InitLogger инициализирует и возвращает логгер
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	// json: одна JSON-строка на запись {"time","level","msg","service"}
	if cfg.Format == "json" {
		handler := slog.NewJSONHandler(cfg.Output, nil).WithAttrs([]slog.Attr{slog.String("service", "senya")})
		return slog.NewLogLogger(handler, slog.LevelInfo)
	}

	prefix := "[Senya] "
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m"
	}
	return log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
}
