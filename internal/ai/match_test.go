package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubServer поднимает OpenAI-совместимую заглушку и возвращает клиент,
// направленный на неё. capture получает тело последнего запроса.
func newStubServer(t *testing.T, reply string, capture *map[string]any) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if capture != nil {
			*capture = body
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))

	return NewClient(server.URL, "test-model"), server
}

func TestSuggestMatches_ReturnsModelReplyVerbatim(t *testing.T) {
	reply := "1. Bob — offers Guitar, wants Go\n2. Carol\n3. Dave"
	client, server := newStubServer(t, reply, nil)
	defer server.Close()

	result, err := client.SuggestMatches(context.Background(), MatchRequest{
		SkillsOffered: []string{"Go"},
		SkillsWanted:  []string{"Guitar"},
		Profiles: []MatchProfile{
			{Name: "Bob", SkillsOffered: []string{"Guitar"}, SkillsWanted: []string{"Go"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, reply, result)
}

func TestSuggestMatches_PromptContainsSkillsAndCandidates(t *testing.T) {
	var captured map[string]any
	client, server := newStubServer(t, "ok", &captured)
	defer server.Close()

	_, err := client.SuggestMatches(context.Background(), MatchRequest{
		SkillsOffered: []string{"Go", "SQL"},
		SkillsWanted:  []string{"Guitar"},
		Profiles: []MatchProfile{
			{Name: "Bob", SkillsOffered: []string{"Guitar"}, SkillsWanted: []string{"Go"}},
			{Name: "Carol", SkillsOffered: []string{"Yoga"}, SkillsWanted: []string{"SQL"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)

	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "You are a smart skill-matching assistant.", system["content"])

	user := messages[1].(map[string]any)
	prompt := user["content"].(string)
	assert.Contains(t, prompt, "Skills Offered: Go, SQL")
	assert.Contains(t, prompt, "Skills Wanted: Guitar")
	assert.Contains(t, prompt, "1. Bob (Offers: Guitar, Wants: Go)")
	assert.Contains(t, prompt, "2. Carol (Offers: Yoga, Wants: SQL)")
	assert.True(t, strings.HasSuffix(prompt, "Give the best 3 matches."))
}

func TestSuggestMatches_EmptyChoicesIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model")
	_, err := client.SuggestMatches(context.Background(), MatchRequest{})

	assert.Error(t, err)
}

func TestSuggestMatches_ServerErrorIsPropagated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model")
	_, err := client.SuggestMatches(context.Background(), MatchRequest{})

	assert.Error(t, err)
}

func TestBuildMatchPrompt_NoCandidates(t *testing.T) {
	prompt := buildMatchPrompt(MatchRequest{
		SkillsOffered: []string{"Go"},
		SkillsWanted:  []string{"Guitar"},
	})

	assert.Contains(t, prompt, "Candidates:\n\n")
	assert.Contains(t, prompt, "Give the best 3 matches.")
}
