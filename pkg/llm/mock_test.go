package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRouting(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Question: any FRONTEND people?", "frontend tag"},
		{"Question: need a backend dev", "backend tag"},
		{"Question: fullstack please, frontend and backend", "fullstack candidates"},
		{"Tags: backend, frontend\nQuestion: hello", "CV assistant"},
		{"what can you do", "CV assistant"},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			got, err := NewMock().Ask(context.Background(), "", tt.prompt)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}
