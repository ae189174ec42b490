package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキー（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"token",
	"github_token",
	"authorization",
	"secret",
	"password",
	"credential",
	"access_token",
}

// GitHubのトークン形式とAuthorizationヘッダー形式
var sensitiveValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^gh[psuor]_[A-Za-z0-9]{36,}$`),
	regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`),
	regexp.MustCompile(`(?i)^Bearer\s+\S{20,}$`),
	regexp.MustCompile(`(?i)^token\s+\S{20,}$`),
}

// SanitizeValue はセンシティブな値をマスクする。文字列以外はそのまま返す
func SanitizeValue(value interface{}) interface{} {
	if isSensitiveValue(value) {
		return maskValue(value.(string))
	}
	return value
}

// SanitizeArgs はkey-valueペアの値をサニタイズしたコピーを返す
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		key, ok := sanitized[i].(string)
		if !ok {
			continue
		}
		switch {
		case isSensitiveValue(sanitized[i+1]):
			sanitized[i+1] = maskValue(sanitized[i+1].(string))
		case isSensitiveKey(key):
			sanitized[i+1] = masked
		}
	}

	return sanitized
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}
	for _, pattern := range sensitiveValuePatterns {
		if pattern.MatchString(str) {
			return true
		}
	}
	return false
}

// maskValue はトークン種別がわかるようにプレフィックスだけ残す
func maskValue(str string) string {
	for _, prefix := range []string{"ghp_", "ghs_", "ghu_", "gho_", "ghr_", "github_pat_"} {
		if strings.HasPrefix(str, prefix) {
			return prefix + masked
		}
	}
	if parts := strings.SplitN(str, " ", 2); len(parts) == 2 {
		return parts[0] + " " + masked
	}
	return masked
}
