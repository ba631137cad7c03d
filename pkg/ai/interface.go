package ai

import (
	"context"
	"time"
)

// EmailInput is the raw email content handed to a summarizer.
type EmailInput struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SummarizeResult is what every summarizer returns: a short summary and
// one category from the fixed set in the email domain package.
type SummarizeResult struct {
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// SummarizerService is the interface for AI email summarization.
// Implement this interface to add new providers (OpenAI, Ollama, Gemini, etc.)
type SummarizerService interface {
	// SummarizeEmail produces a 2-3 sentence summary and a category for
	// the given email. Malformed model output is absorbed into a fallback
	// result; only configuration and transport failures return an error.
	SummarizeEmail(ctx context.Context, input EmailInput) (SummarizeResult, error)
}

// Summarization outcomes reported to an Observer.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Observer receives the outcome and duration of each summarization call.
type Observer interface {
	ObserveSummarization(outcome string, duration time.Duration)
}
