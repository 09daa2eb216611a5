package llm

import (
	"context"
	"strings"
)

// Mock answers by keyword without calling any provider.
type Mock struct{}

func NewMock() Mock { return Mock{} }

const helpAnswer = "I'm your CV assistant and can help you find candidates based on skills, experience, or other criteria. You can ask me questions like:\n\n" +
	"- Who has experience with React?\n" +
	"- Find candidates with over 5 years of experience\n" +
	"- Which developers know both Python and JavaScript?\n\n" +
	"Use the filters on the CV list to narrow results by tag, skill or years of experience."

var routes = []struct {
	keyword string
	answer  string
}{
	{"fullstack", "For fullstack candidates, look for CVs tagged both frontend and backend. Combine a frontend skill filter such as React with a backend one such as Node.js or Go."},
	{"frontend", "For frontend candidates, filter your library by the frontend tag or by skills such as React, Vue, Angular or TypeScript."},
	{"backend", "For backend candidates, filter your library by the backend tag or by skills such as Go, Java, Python or PostgreSQL."},
}

func (Mock) Ask(_ context.Context, _, userPrompt string) (string, error) {
	q := userPrompt
	if i := strings.LastIndex(q, QuestionMarker); i >= 0 {
		q = q[i+len(QuestionMarker):]
	}
	q = strings.ToLower(q)
	for _, r := range routes {
		if strings.Contains(q, r.keyword) {
			return r.answer, nil
		}
	}
	return helpAnswer, nil
}
