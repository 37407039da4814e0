package ai

import (
	"context"
	"fmt"
	"strings"
)

// MatchProfile кандидат для подбора совпадений.
type MatchProfile struct {
	Name          string   `json:"name"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}

// MatchRequest запрос на подбор совпадений.
type MatchRequest struct {
	SkillsOffered []string       `json:"skillsOffered"`
	SkillsWanted  []string       `json:"skillsWanted"`
	Profiles      []MatchProfile `json:"profiles"`
}

// SuggestMatches просит языковую модель назвать три лучших совпадения среди
// кандидатов. Ответ модели возвращается как есть, без разбора и ранжирования.
func (c *Client) SuggestMatches(ctx context.Context, req MatchRequest) (string, error) {
	prompt := buildMatchPrompt(req)

	messages := []map[string]string{
		{"role": "system", "content": "You are a smart skill-matching assistant."},
		{"role": "user", "content": prompt},
	}

	return c.chatCompletion(ctx, messages)
}

// buildMatchPrompt собирает текст запроса: желаемые навыки и нумерованный
// список кандидатов с их навыками.
func buildMatchPrompt(req MatchRequest) string {
	var candidates strings.Builder
	for i, p := range req.Profiles {
		if i > 0 {
			candidates.WriteString("\n")
		}
		candidates.WriteString(fmt.Sprintf(
			"%d. %s (Offers: %s, Wants: %s)",
			i+1,
			p.Name,
			strings.Join(p.SkillsOffered, ", "),
			strings.Join(p.SkillsWanted, ", "),
		))
	}

	return fmt.Sprintf(`You are an intelligent skill-matching AI.
Find users from this list who best match the needs below.

Skills Offered: %s
Skills Wanted: %s

Candidates:
%s

Give the best 3 matches.`,
		strings.Join(req.SkillsOffered, ", "),
		strings.Join(req.SkillsWanted, ", "),
		candidates.String(),
	)
}
