package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/go-github/v67/github"
)

// GitHubErrorType represents the type of GitHub API error
type GitHubErrorType int

const (
	// ErrorTypeRateLimit indicates rate limit exceeded
	ErrorTypeRateLimit GitHubErrorType = iota
	// ErrorTypeNetworkTimeout indicates network timeout
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication indicates authentication failure
	ErrorTypeAuthentication
	// ErrorTypeNotFound indicates resource not found
	ErrorTypeNotFound
	// ErrorTypeServerError indicates server error (5xx)
	ErrorTypeServerError
	// ErrorTypeUnknown indicates unknown error type
	ErrorTypeUnknown
)

// String returns the string representation of the error type
func (t GitHubErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// GitHubError represents a classified GitHub API error
type GitHubError struct {
	Type        GitHubErrorType
	StatusCode  int
	Message     string
	RetryAfter  time.Duration
	OriginalErr error
}

func (e *GitHubError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error [%s %d]: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

func (e *GitHubError) Unwrap() error {
	return e.OriginalErr
}

var (
	// Fallbacks for errors that carry no HTTP response (transport errors, test doubles)
	rateLimitRegex  = regexp.MustCompile(`(?i)(rate limit|secondary rate limit)`)
	notFoundRegex   = regexp.MustCompile(`(?i)(not found|does not exist)`)
	authRegex       = regexp.MustCompile(`(?i)(unauthorized|bad credentials|requires authentication)`)
	networkRegex    = regexp.MustCompile(`(?i)(timeout|connection refused|connection reset|dial tcp)`)
	httpStatusRegex = regexp.MustCompile(`(?i)(?:HTTP|status)\s+(\d{3})`)
)

// ClassifyError converts err into a *GitHubError. nil stays nil and an
// already classified error is returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return err
	}

	classified := &GitHubError{
		Type:        ErrorTypeUnknown,
		Message:     err.Error(),
		OriginalErr: err,
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr):
		classified.Type = ErrorTypeRateLimit
		classified.StatusCode = statusOf(rateErr.Response)
		classified.RetryAfter = time.Until(rateErr.Rate.Reset.Time)
	case errors.As(err, &abuseErr):
		classified.Type = ErrorTypeRateLimit
		classified.StatusCode = statusOf(abuseErr.Response)
		classified.RetryAfter = abuseErr.GetRetryAfter()
	case errors.As(err, &respErr):
		classified.StatusCode = statusOf(respErr.Response)
		classified.Message = respErr.Message
		classified.Type = typeForStatus(classified.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		classified.Type = ErrorTypeNetworkTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		classified.Type = ErrorTypeNetworkTimeout
	default:
		classifyMessage(classified)
	}

	return classified
}

func classifyMessage(e *GitHubError) {
	if matches := httpStatusRegex.FindStringSubmatch(e.Message); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			e.StatusCode = code
		}
	}

	switch {
	case rateLimitRegex.MatchString(e.Message):
		e.Type = ErrorTypeRateLimit
	case networkRegex.MatchString(e.Message):
		// URL にIssue番号が含まれるため、他の判定より先に行う
		e.Type = ErrorTypeNetworkTimeout
	case authRegex.MatchString(e.Message):
		e.Type = ErrorTypeAuthentication
	case notFoundRegex.MatchString(e.Message):
		e.Type = ErrorTypeNotFound
		if e.StatusCode == 0 {
			e.StatusCode = http.StatusNotFound
		}
	default:
		e.Type = typeForStatus(e.StatusCode)
	}
}

func typeForStatus(code int) GitHubErrorType {
	switch {
	case code == http.StatusNotFound:
		return ErrorTypeNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorTypeAuthentication
	case code == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case code >= 500 && code < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}

// IsRateLimitError checks if the error is a rate limit error
func IsRateLimitError(err error) bool {
	return typeOf(err) == ErrorTypeRateLimit
}

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool {
	return typeOf(err) == ErrorTypeAuthentication
}

func typeOf(err error) GitHubErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}
	var ghErr *GitHubError
	if errors.As(ClassifyError(err), &ghErr) {
		return ghErr.Type
	}
	return ErrorTypeUnknown
}
