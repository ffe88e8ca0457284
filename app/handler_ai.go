package main

import (
	"errors"
	"net/http"

	"github.com/wrenlet/inkwell/internal/aiservice"
	"github.com/wrenlet/inkwell/internal/common"
)

type aiContentRequest struct {
	Content string `json:"content"`
}

// handleAISuggestion wraps the shared boundary of the four suggestion
// endpoints: parse, dispatch, classify failures.
func (app *application) handleAISuggestion(w http.ResponseWriter, r *http.Request, generate func(content string) (envelope, error)) {
	var input aiContentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := generate(input.Content)
	if err != nil {
		var upstreamErr *aiservice.UpstreamError
		switch {
		case errors.Is(err, aiservice.ErrNotConfigured):
			app.serviceUnavailableErrorResponse(w, r, "AI assistance is not configured")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.As(err, &upstreamErr):
			app.logError(r, err)
			app.writeErrorResponse(w, r, http.StatusBadGateway, upstreamErr.UserMessage)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, result, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) suggestHeadlineHandler(w http.ResponseWriter, r *http.Request) {
	app.handleAISuggestion(w, r, func(content string) (envelope, error) {
		headlines, err := app.aiService.SuggestHeadlines(r.Context(), content)
		if err != nil {
			return nil, err
		}
		return envelope{"headlines": headlines}, nil
	})
}

func (app *application) generateSummaryHandler(w http.ResponseWriter, r *http.Request) {
	app.handleAISuggestion(w, r, func(content string) (envelope, error) {
		summary, err := app.aiService.GenerateSummary(r.Context(), content)
		if err != nil {
			return nil, err
		}
		return envelope{"summary": summary}, nil
	})
}

func (app *application) suggestKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	app.handleAISuggestion(w, r, func(content string) (envelope, error) {
		keywords, err := app.aiService.SuggestKeywords(r.Context(), content)
		if err != nil {
			return nil, err
		}
		return envelope{"keywords": keywords}, nil
	})
}

func (app *application) improveContentHandler(w http.ResponseWriter, r *http.Request) {
	app.handleAISuggestion(w, r, func(content string) (envelope, error) {
		improved, err := app.aiService.ImproveContent(r.Context(), content)
		if err != nil {
			return nil, err
		}
		return envelope{"improved_content": improved}, nil
	})
}

type chatbotRequest struct {
	Message string `json:"message"`
}

func (app *application) chatbotHandler(w http.ResponseWriter, r *http.Request) {
	var input chatbotRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.currentUser(r)
	chatUser := aiservice.ChatUser{
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}

	reply, err := app.aiService.Chat(r.Context(), chatUser, input.Message)
	if err != nil {
		switch {
		case errors.Is(err, aiservice.ErrNotConfigured):
			app.serviceUnavailableErrorResponse(w, r, "AI assistance is not configured")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.writeErrorResponse(w, r, http.StatusBadRequest, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"response": reply.Response, "status": reply.Status}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
