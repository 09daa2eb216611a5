package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// QuestionMarker prefixes the user's own words inside a composed prompt.
const QuestionMarker = "Question:"
