package provider

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/transport"
)

// defaultRetryAfter is used when a 429 carries no usable Retry-After header.
const defaultRetryAfter = 60 * time.Second

// Exchange is the shared plumbing injected into concrete providers: the
// transport primitive, the provider's rate-limit state and a logger. It owns
// the pre-flight checks and the failure classification every provider needs.
type Exchange struct {
	Transport transport.Doer
	Limit     *RateLimit
	Logger    *slog.Logger
}

func NewExchange(doer transport.Doer, limit *RateLimit, logger *slog.Logger) *Exchange {
	if limit == nil {
		limit = NewRateLimit(nil)
	}
	return &Exchange{Transport: doer, Limit: limit, Logger: logger}
}

// Guard runs the pre-flight checks: an armed cool-down rejects immediately
// with status 429 and no network call; a missing key rejects with status 0.
// On success it returns the API key and a nil result.
func (e *Exchange) Guard(settings models.Settings, slug string) (string, *models.GenerationResult) {
	if remaining, blocked := e.Limit.Blocked(); blocked {
		res := models.Failure(models.ErrorRateLimited, http.StatusTooManyRequests,
			fmt.Sprintf("rate limited, retry in %s", remaining.Round(time.Second)))
		res.Headers = map[string]string{
			"Retry-After": strconv.Itoa(int(remaining.Seconds()) + 1),
		}
		return "", &res
	}

	key := settings.APIKey(slug)
	if key == "" {
		res := models.Failure(models.ErrorMissingKey, 0, "no API key configured for provider "+slug)
		return "", &res
	}
	return key, nil
}

// Post issues the single bounded request through the transport.
func (e *Exchange) Post(url string, headers map[string]string, body any, timeout time.Duration) transport.Response {
	return e.Transport.Request(url, headers, body, timeout)
}

// ClassifyFailure maps a failed transport response to the error taxonomy.
// A 429 arms the cool-down from Retry-After before returning; everything
// else passes the transport's status and headers through verbatim.
func (e *Exchange) ClassifyFailure(resp transport.Response) models.GenerationResult {
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Headers)
		e.Limit.Block(retryAfter)
		if e.Logger != nil {
			e.Logger.Warn("provider rate limited", "retry_after", retryAfter)
		}
		res := models.Failure(models.ErrorRateLimited, resp.StatusCode,
			fmt.Sprintf("provider rate limited, retry after %s", retryAfter))
		res.Headers = resp.Headers
		return res
	}

	msg := "transport failure"
	if resp.Err != nil {
		msg = resp.Err.Error()
	}
	res := models.Failure(models.ErrorTransport, resp.StatusCode, msg)
	res.Headers = resp.Headers
	return res
}

// parseRetryAfter reads a Retry-After header as delay seconds or HTTP date.
func parseRetryAfter(headers map[string]string) time.Duration {
	raw, ok := headers["Retry-After"]
	if !ok || raw == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(raw); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return defaultRetryAfter
}
