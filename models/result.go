package models

// ErrorKind classifies generation failures. Failures are data, not panics;
// callers branch on the kind and decide whether to resubmit.
type ErrorKind string

const (
	ErrorNone        ErrorKind = ""
	ErrorMissingKey  ErrorKind = "missing_key"
	ErrorRateLimited ErrorKind = "rate_limited"
	ErrorTransport   ErrorKind = "transport_error"
	ErrorParse       ErrorKind = "parse_error"
	ErrorEmpty       ErrorKind = "empty_response"
)

// GenerationResult is the outcome of one generate or test-connection call.
// On transport failures StatusCode and Headers are passed through verbatim
// so callers can honor Retry-After.
type GenerationResult struct {
	Success    bool              `json:"success"`
	Schema     string            `json:"schema,omitempty"` // JSON-LD document
	StatusCode int               `json:"status_code,omitempty"`
	ErrorKind  ErrorKind         `json:"error_kind,omitempty"`
	Error      string            `json:"error,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Cached     bool              `json:"cached"`
}

// Failure builds an error result of the given kind.
func Failure(kind ErrorKind, statusCode int, msg string) GenerationResult {
	return GenerationResult{
		Success:    false,
		StatusCode: statusCode,
		ErrorKind:  kind,
		Error:      msg,
	}
}
