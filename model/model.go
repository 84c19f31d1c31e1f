package model

import (
	"context"
	"fmt"
	"strings"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role Role
	Text string
}

// Request captures the normalized model input.
type Request struct {
	System   string
	Messages []Message
}

// Usage captures token accounting for one response.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the completed model output.
type Response struct {
	Text  string
	Usage Usage
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string
	Provider string // "anthropic", "openai", "mock"
}

// Model is the minimal interface the agent app needs to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// Mock is a deterministic in-memory Model for tests and keyless demo runs.
type Mock struct {
	info      Info
	responses map[string]string
	fallback  string
}

// NewMock constructs a Mock with an optional fallback completion returned
// for prompts without a canned response.
func NewMock(fallback string) *Mock {
	return &Mock{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: make(map[string]string),
		fallback:  fallback,
	}
}

// AddResponse registers a canned completion for an exact prompt.
func (m *Mock) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Generate implements Model using the canned responses.
func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	prompt := req.Messages[len(req.Messages)-1].Text
	text, ok := m.responses[prompt]
	if !ok {
		text = m.fallback
	}
	if text == "" {
		return nil, fmt.Errorf("no canned response for prompt %q", prompt)
	}
	return &Response{
		Text: text,
		Usage: Usage{
			InputTokens:  int64(len(strings.Fields(prompt))),
			OutputTokens: int64(len(strings.Fields(text))),
		},
	}, nil
}

// Info implements Model.
func (m *Mock) Info() Info { return m.info }
