package aiservice

import (
	"context"
	"strings"

	"github.com/wrenlet/inkwell/internal/common"
)

const (
	headlinePrompt = "Generate 5 engaging, concise, and SEO-friendly blog post headlines for the following content. Return only the headlines, each on a new line."
	summaryPrompt  = "Summarize this blog post in 2-3 concise sentences, capturing the main points."
	keywordsPrompt = "Suggest 5-7 relevant SEO keywords for this blog post. Return them as a single, comma-separated list."
	improvePrompt  = "Improve this blog content for better readability, engagement, and clarity. Fix any grammatical errors and enhance the flow, but retain the original meaning."
)

func validateContent(v *common.Validator, content string) {
	v.Check(strings.TrimSpace(content) != "", "content", "must be provided")
}

// SuggestHeadlines returns the ordered list of non-empty, trimmed lines
// of the generated text.
func (s *AIService) SuggestHeadlines(ctx context.Context, blogContent string) ([]string, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	v := common.NewValidator()
	validateContent(v, blogContent)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	text, err := s.generate(ctx, headlinePrompt, blogContent)
	if err != nil {
		return nil, err
	}

	var headlines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			headlines = append(headlines, line)
		}
	}

	return headlines, nil
}

// GenerateSummary returns the generated text trimmed, verbatim.
func (s *AIService) GenerateSummary(ctx context.Context, blogContent string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	v := common.NewValidator()
	validateContent(v, blogContent)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	text, err := s.generate(ctx, summaryPrompt, blogContent)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// SuggestKeywords returns the ordered list of non-empty, trimmed
// comma-separated tokens of the generated text.
func (s *AIService) SuggestKeywords(ctx context.Context, blogContent string) ([]string, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	v := common.NewValidator()
	validateContent(v, blogContent)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	text, err := s.generate(ctx, keywordsPrompt, blogContent)
	if err != nil {
		return nil, err
	}

	var keywords []string
	for _, token := range strings.Split(strings.TrimSpace(text), ",") {
		if token = strings.TrimSpace(token); token != "" {
			keywords = append(keywords, token)
		}
	}

	return keywords, nil
}

// ImproveContent returns the rewritten content trimmed, verbatim.
func (s *AIService) ImproveContent(ctx context.Context, blogContent string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	v := common.NewValidator()
	validateContent(v, blogContent)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	text, err := s.generate(ctx, improvePrompt, blogContent)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
