package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"swfdigest/internal/store"
)

// ErrSummarization indicates the language-model call failed. Fatal for the
// run; the pipeline does not retry.
var ErrSummarization = errors.New("summarization failed")

// Summarizer produces a prose summary of a filtered document set.
type Summarizer interface {
	Summarize(ctx context.Context, docs []store.Document) (string, error)
}

// maxContentRunes caps each document's content in the prompt to stay inside
// the upstream token budget.
const maxContentRunes = 3000

const systemPrompt = `You are a financial news analyst focused on Middle East sovereign wealth fund and pension fund investment activity. You track funds such as Mubadala, ADIA, ADIC, PIF, QIA, and OIA. Given a set of news articles, write a concise summary of the key investment developments: transactions, stakes, fund strategy shifts, and notable statements. Group related items, name the funds and counterparties involved, and include amounts where reported. Write plain prose with short section headers.`

// BuildPrompt renders the filtered documents into a single prompt. It is a
// pure function so tests cover it without network access.
func BuildPrompt(docs []store.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Summarize the investment developments in the following %d news articles.\n\n", len(docs)))

	for i, d := range docs {
		sb.WriteString(fmt.Sprintf("--- Article %d ---\n", i+1))
		if d.PublishedAt != nil {
			sb.WriteString(fmt.Sprintf("Date: %s\n", d.PublishedAt.Format("2006-01-02")))
		}
		sb.WriteString(fmt.Sprintf("Source: %s\n", d.Source))
		sb.WriteString(fmt.Sprintf("Title: %s\n", d.Title))
		sb.WriteString(fmt.Sprintf("Content: %s\n\n", truncate(d.Content, maxContentRunes)))
	}

	return sb.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
