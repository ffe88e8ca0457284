package aiservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenlet/inkwell/internal/common"
)

const (
	ChatStatusSuccess  = "success"
	ChatStatusFallback = "fallback"
)

// ChatUser is the requester context prepended to every chat prompt.
type ChatUser struct {
	Name    string
	Email   string
	IsAdmin bool
}

// ChatReply is the normal response shape of the assistant. Status is
// "success" only when the upstream call produced text; "fallback" marks
// a locally selected canned response masking an upstream failure.
type ChatReply struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

const chatPromptFormat = `You are an AI assistant for a blog platform called "Inkwell". You are helping %s.

User Context:
- Name: %s
- Email: %s
- Role: %s

Platform Features Available:
- Create and edit blog posts with AI assistance
- AI-powered content suggestions (headlines, summaries, SEO keywords)
- Dashboard to manage posts and profile
- Admin features (if admin): user management, post moderation

Your Role:
- Be helpful, friendly, and concise
- Provide specific guidance about using the platform
- Offer writing tips and content creation advice
- Help with navigation and feature discovery
- Keep responses under 150 words unless detailed explanation is needed

User's message: %s

Provide a helpful, personalized response:`

// Keyword-matched canned responses, consulted in order when the upstream
// call fails. The first keyword contained in the lower-cased message
// wins.
var fallbackResponses = []struct {
	keyword  string
	response func(user ChatUser) string
}{
	{
		keyword: "help",
		response: func(user ChatUser) string {
			return fmt.Sprintf("Hi %s! I can help you with:\n\n- Writing better blog posts\n- Using AI features for content creation\n- Navigating the platform\n- Tips for engaging content\n\nWhat would you like to know more about?", user.Name)
		},
	},
	{
		keyword: "write",
		response: func(ChatUser) string {
			return "Here are some writing tips:\n\n- Start with a compelling headline\n- Use short paragraphs for readability\n- Include relevant images\n- End with a call-to-action\n- Use our AI suggestions for improvement!"
		},
	},
	{
		keyword: "dashboard",
		response: func(ChatUser) string {
			return "Your dashboard shows:\n\n- Your published and draft posts\n- Writing statistics\n- Profile management\n- AI writing tools\n\nNeed help with any specific feature?"
		},
	},
	{
		keyword: "ai",
		response: func(ChatUser) string {
			return "Our AI features include:\n\n- Headline suggestions\n- Content improvement\n- SEO keyword generation\n- Content summaries\n\nTry them when creating or editing posts!"
		},
	},
}

func genericFallback(user ChatUser) string {
	return fmt.Sprintf("Thanks for your message, %s! I'm having some technical difficulties right now, but I'm here to help with writing, platform navigation, and content creation. What specific area would you like assistance with?", user.Name)
}

// Chat performs one stateless assistant turn. An upstream failure is
// never surfaced as an error: the reply degrades to a canned fallback
// with Status "fallback". The only error returns are an unconfigured
// service and an empty message.
func (s *AIService) Chat(ctx context.Context, user ChatUser, message string) (*ChatReply, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(message) != "", "message", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	role := "Regular User"
	if user.IsAdmin {
		role = "Admin"
	}

	prompt := fmt.Sprintf(chatPromptFormat, user.Name, user.Name, user.Email, role, message)

	text, err := s.generateRaw(ctx, prompt)
	if err != nil {
		return s.fallbackReply(user, message), nil
	}

	return &ChatReply{Response: strings.TrimSpace(text), Status: ChatStatusSuccess}, nil
}

func (s *AIService) fallbackReply(user ChatUser, message string) *ChatReply {
	lower := strings.ToLower(message)
	for _, fallback := range fallbackResponses {
		if strings.Contains(lower, fallback.keyword) {
			return &ChatReply{Response: fallback.response(user), Status: ChatStatusFallback}
		}
	}

	return &ChatReply{Response: genericFallback(user), Status: ChatStatusFallback}
}
