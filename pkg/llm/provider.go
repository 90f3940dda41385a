package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// StreamChunk is one piece of streamed model output. After a chunk with
// Done or Err set, the channel is closed and no further chunks arrive.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Complete sends a single prompt to the model and returns the response
	Complete(ctx context.Context, prompt string, options ...Option) (string, error)

	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Stream sends a single prompt and yields partial output as it arrives.
	// Cancelling the context stops the stream promptly; the channel is
	// closed and no further chunks are delivered.
	Stream(ctx context.Context, prompt string, options ...Option) (<-chan StreamChunk, error)
}
