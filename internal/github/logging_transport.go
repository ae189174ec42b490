package github

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/douhashi/triage/internal/logger"
)

const bodyPreviewLimit = 200

// loggingRoundTripper はHTTPリクエスト/レスポンスをdebugレベルで出力するラウンドトリッパー
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	rt.logRequest(req)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("github_api_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	rt.logResponse(resp, duration)
	return resp, nil
}

func (rt *loggingRoundTripper) logRequest(req *http.Request) {
	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
	}
	if auth := req.Header.Get("Authorization"); auth != "" {
		fields = append(fields, "auth_header", maskAuthHeader(auth))
	}
	if ua := req.Header.Get("User-Agent"); ua != "" {
		fields = append(fields, "user_agent", ua)
	}

	rt.logger.Debug("github_api_request", fields...)
}

func (rt *loggingRoundTripper) logResponse(resp *http.Response, duration time.Duration) {
	fields := []interface{}{
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		fields = append(fields, "rate_limit_remaining", remaining)
	}

	// エラーレスポンスのみボディを読む。成功時のボディはgo-githubにそのまま渡す
	if resp.StatusCode >= 400 && resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			rt.logger.Error("failed_to_read_response_body", "error", err.Error())
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			preview := string(bodyBytes)
			if len(preview) > bodyPreviewLimit {
				preview = preview[:bodyPreviewLimit] + "..."
			}
			fields = append(fields, "body_preview", preview)
		}
	}

	rt.logger.Debug("github_api_response", fields...)
}

// maskAuthHeader はスキーム（Bearer など）だけを残す
func maskAuthHeader(auth string) string {
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 {
		return parts[0] + " [REDACTED]"
	}
	return "[REDACTED]"
}
