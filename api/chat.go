package api

import (
	"context"
	"fmt"
)

// API endpoints
const (
	EndpointChat       = "/chat"
	EndpointVision     = "/vision/analyze-upload"
	EndpointTranscribe = "/audio/transcribe"
)

// Message roles understood by the backend
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry of the history sent to the backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is the backend's reply to a chat completion.
type ChatResponse struct {
	Reply string         `json:"reply"`
	Model string         `json:"model"`
	Usage map[string]any `json:"usage,omitempty"`
}

// Chat sends the conversation history to the backend and returns its reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("chat request requires at least one message")
	}

	var resp ChatResponse
	if err := c.postJSON(ctx, EndpointChat, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
