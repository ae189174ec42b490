package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger はアプリケーションのログインターフェース
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	WithFields(keysAndValues ...interface{}) Logger
}

// Config はロガーの設定
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// Option はロガーの設定オプション
type Option func(*Config)

func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithFormat は text（ランナーのログ向け）か json を選ぶ
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithOutput は出力先を設定する。stdout はコマンドの結果に使うため既定は stderr
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

// New は新しいロガーを作成する
func New(opts ...Option) (Logger, error) {
	cfg := &Config{Level: "info", Format: "text", Output: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	encoder, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(cfg.Output)), level)
	return wrap(core, zap.AddCaller()), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "time"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), nil
	case "text":
		// Actions のランナーが各行に時刻を付けるので text では出さない
		ec := zap.NewDevelopmentEncoderConfig()
		ec.TimeKey = ""
		ec.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// NewWithCore は任意のzapcore.Coreからロガーを作成する（テストでobserverを使う場合など）
func NewWithCore(core zapcore.Core) Logger {
	return wrap(core)
}

// NewNop は何も出力しないロガーを返す
func NewNop() Logger {
	return wrap(zapcore.NewNopCore())
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func wrap(core zapcore.Core, opts ...zap.Option) *zapLogger {
	opts = append(opts, zap.AddCallerSkip(1))
	return &zapLogger{sugar: zap.New(core, opts...).Sugar()}
}

// 値はすべて SanitizeArgs を通してから出力する

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, SanitizeArgs(keysAndValues...)...)
}

func (l *zapLogger) WithFields(keysAndValues ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(SanitizeArgs(keysAndValues...)...)}
}
