package aiservice

import "strings"

// User-facing categories for upstream failures. The lower-cased error
// text is matched against known signatures; the substrings below are the
// contract with the upstream error vocabulary and are admittedly
// brittle, so keep them in sync with what the provider actually emits.
const (
	msgAuthFailure      = "AI service authentication failed. Please check your API key."
	msgQuotaOrForbidden = "You have exceeded your API quota or lack permissions."
	msgModelUnavailable = "The configured AI model is not available. Please contact support."
	msgGenericFailure   = "An unexpected error occurred with the AI service."
)

func classifyError(err error) string {
	text := strings.ToLower(err.Error())

	switch {
	case strings.Contains(text, "api_key") || strings.Contains(text, "api key not valid"):
		return msgAuthFailure
	case strings.Contains(text, "permission_denied") || strings.Contains(text, "quota"):
		return msgQuotaOrForbidden
	case strings.Contains(text, "model") && strings.Contains(text, "not found"):
		return msgModelUnavailable
	default:
		return msgGenericFailure
	}
}
