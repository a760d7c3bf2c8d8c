// Package logger содержит настройку логгера.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Форматы консольного вывода
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel используется, когда LOG_LEVEL не задан или не распознан
const DefaultLevel = zapcore.WarnLevel

// Options задает параметры логгера
type Options struct {
	Level  string
	Format string
	// Path включает дополнительную запись в файл с ротацией. Пусто - файл не пишется.
	Path string
	// Output консольный вывод, по умолчанию os.Stderr. Stdout занят результатами поиска.
	Output io.Writer
}

// New создает новый логгер. Нераспознанные уровень и формат не считаются
// ошибкой: используются значения по умолчанию, а логгер сообщает о замене.
func New(opts Options) *zap.Logger {
	// Настраиваем уровень логирования
	level, levelOK := getLogLevel(opts.Level)

	// Настраиваем кодировщик
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	formatOK := true
	switch opts.Format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case FormatConsole, "":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		formatOK = false
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	// Консольный вывод
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(output)), level)

	// Файловый вывод
	if opts.Path != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.Path,
				MaxSize:    100, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}),
			level,
		)
		core = zapcore.NewTee(core, fileCore)
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	if !levelOK {
		logger.Warn("Unknown LOG_LEVEL, using default",
			zap.String("value", opts.Level), zap.Stringer("level", level))
	}
	if !formatOK {
		logger.Warn("Unknown LOG_FORMAT, using default",
			zap.String("value", opts.Format), zap.String("format", FormatConsole))
	}

	return logger
}

// getLogLevel разбирает уровень логирования. Второе значение false, если
// уровень задан, но не распознан.
func getLogLevel(value string) (zapcore.Level, bool) {
	switch value {
	case "":
		return DefaultLevel, true
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return DefaultLevel, false
	}
}
