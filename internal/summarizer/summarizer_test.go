package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swfdigest/internal/store"
)

func TestBuildPromptIncludesDocumentFields(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	docs := []store.Document{
		{
			Title:       "Mubadala backs data centre venture",
			Source:      "gulf-business",
			Content:     "Mubadala announced a new deal worth $2bn.",
			PublishedAt: &ts,
		},
		{
			Title:   "QIA eyes logistics",
			Source:  "reuters",
			Content: "QIA is in talks.",
		},
	}

	prompt := BuildPrompt(docs)

	assert.Contains(t, prompt, "2 news articles")
	assert.Contains(t, prompt, "--- Article 1 ---")
	assert.Contains(t, prompt, "--- Article 2 ---")
	assert.Contains(t, prompt, "Date: 2025-03-10")
	assert.Contains(t, prompt, "Source: gulf-business")
	assert.Contains(t, prompt, "Title: Mubadala backs data centre venture")
	assert.Contains(t, prompt, "Content: Mubadala announced a new deal worth $2bn.")
	assert.Contains(t, prompt, "Title: QIA eyes logistics")
}

func TestBuildPromptTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", maxContentRunes+500)
	docs := []store.Document{{Title: "t", Content: long}}

	prompt := BuildPrompt(docs)

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, strings.Repeat("x", maxContentRunes))
}

func TestBuildPromptOmitsDateWhenMissing(t *testing.T) {
	prompt := BuildPrompt([]store.Document{{Title: "t", Content: "c"}})
	assert.NotContains(t, prompt, "Date:")
}

func TestTruncateCountsRunes(t *testing.T) {
	s := strings.Repeat("م", 10)
	assert.Equal(t, strings.Repeat("م", 4), truncate(s, 4))
	assert.Equal(t, s, truncate(s, 10))
	assert.Equal(t, s, truncate(s, 100))
}
