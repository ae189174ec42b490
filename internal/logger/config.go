package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
//
//	DEBUG      true/1/yes/on でdebugレベル
//	LOG_LEVEL  debug/info/warn/error（DEBUGより優先）
//	LOG_FORMAT text/json
func ConfigFromEnv() *Config {
	config := &Config{
		Level:  "info",
		Format: "text",
	}

	if isTrue(os.Getenv("DEBUG")) {
		config.Level = "debug"
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// NewFromEnv は環境変数の設定でロガーを作成する
func NewFromEnv(opts ...Option) (Logger, error) {
	config := ConfigFromEnv()
	return New(append([]Option{
		WithLevel(config.Level),
		WithFormat(config.Format),
	}, opts...)...)
}

func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
