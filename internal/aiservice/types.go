package aiservice

import (
	"errors"
	"net/http"
	"time"
)

var (
	// ErrNotConfigured is returned without any network call when the
	// service was built without an API key.
	ErrNotConfigured = errors.New("AI service is not configured")
)

// UpstreamError wraps a failed generation call together with the
// user-facing category message chosen by classifyError. The raw cause is
// kept for logs only and must never reach a response body.
type UpstreamError struct {
	UserMessage string
	Err         error
}

func (e *UpstreamError) Error() string {
	return "ai upstream: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

const (
	defaultModel    = "gemini-1.5-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com"

	// The upstream call carries its own upper bound; no other gateway in
	// the application does.
	generateTimeout = 30 * time.Second
)

// AIService sends prompt+content payloads to a remote text-generation
// endpoint and post-processes the raw text.
type AIService struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithEndpoint(apiKey, defaultEndpoint)
}

// NewAIServiceWithEndpoint points the service at a non-default endpoint,
// for proxies and tests.
func NewAIServiceWithEndpoint(apiKey, endpoint string) *AIService {
	return &AIService{
		apiKey:   apiKey,
		model:    defaultModel,
		endpoint: endpoint,
		client:   &http.Client{Timeout: generateTimeout},
	}
}

// Enabled reports whether an API key is present. Checked at call time so
// a missing key degrades the AI features only.
func (s *AIService) Enabled() bool {
	return s.apiKey != ""
}
