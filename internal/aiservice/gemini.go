package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// generate sends a fixed instruction prompt concatenated with the user
// content upstream and returns the raw generated text.
func (s *AIService) generate(ctx context.Context, prompt, userContent string) (string, error) {
	return s.generateRaw(ctx, fmt.Sprintf("%s\n\n---\n\n%s", prompt, userContent))
}

// generateRaw sends one fully assembled text payload upstream. Failures
// come back as *UpstreamError carrying the classified user-facing
// message.
func (s *AIService) generateRaw(ctx context.Context, text string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: text}}},
		},
	}

	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.endpoint, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return "", s.upstreamError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", s.upstreamError(err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", s.upstreamError(fmt.Errorf("malformed response: %w", err))
	}

	if res.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(raw))
		if decoded.Error != nil {
			message = decoded.Error.Status + " " + decoded.Error.Message
		}
		return "", s.upstreamError(fmt.Errorf("status %d: %s", res.StatusCode, message))
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", s.upstreamError(errors.New("empty response"))
	}

	generated := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(generated) == "" {
		return "", s.upstreamError(errors.New("empty response"))
	}

	return generated, nil
}

func (s *AIService) upstreamError(err error) error {
	return &UpstreamError{UserMessage: classifyError(err), Err: err}
}
