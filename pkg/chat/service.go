// Package chat answers questions about an owner's CV library.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/llm"
	"github.com/artem13815/cvdesk/pkg/nlp"
)

var ErrEmptyMessage = errors.New("message is empty")

const maxMessageLen = 2000

// UseCase describes the chat assistant.
type UseCase interface {
	Ask(ctx context.Context, ownerID uuid.UUID, message string) (string, error)
}

type service struct {
	model     llm.ChatModel
	dashboard cv.DashboardUseCase
	library   cv.LibraryUseCase
}

func NewService(model llm.ChatModel, dashboard cv.DashboardUseCase, library cv.LibraryUseCase) UseCase {
	if model == nil {
		model = llm.NewMock()
	}
	return &service{model: model, dashboard: dashboard, library: library}
}

const systemPrompt = "You are a recruiting assistant. Answer using only the library summary provided. Be concise."

func (s *service) Ask(ctx context.Context, ownerID uuid.UUID, message string) (string, error) {
	if ownerID == uuid.Nil {
		return "", cv.ErrUnauthenticated
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	message = nlp.Truncate(message, maxMessageLen)
	stats, err := s.dashboard.Stats(ctx, ownerID)
	if err != nil {
		return "", err
	}
	facets, err := s.library.Facets(ctx, ownerID)
	if err != nil {
		return "", err
	}
	answer, err := s.model.Ask(ctx, systemPrompt, Prompt(stats, facets, message))
	if err != nil {
		return "", fmt.Errorf("ask model: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Prompt renders the library summary followed by the question.
func Prompt(stats cv.Stats, facets cv.Facets, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Library: %d CVs, %d processed.\n", stats.TotalCVs, stats.ProcessedCVs)
	if len(facets.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(facets.Tags, ", "))
	}
	if len(facets.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(facets.Skills, ", "))
	}
	b.WriteString(llm.QuestionMarker + " ")
	b.WriteString(message)
	return b.String()
}
