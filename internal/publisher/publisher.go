package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"swfdigest/internal/daterange"
)

// Report is the rendered output of one run.
type Report struct {
	Collection    string
	Range         daterange.Range
	Summary       string
	DocumentCount int
	GeneratedAt   time.Time
	Markdown      bool
}

// Publisher delivers a report to some output destination.
type Publisher interface {
	Publish(ctx context.Context, rep *Report) error
}

// Filename derives the deterministic output name from the collection and the
// range's month/day boundaries.
func Filename(rep *Report) string {
	ext := "txt"
	if rep.Markdown {
		ext = "md"
	}
	return fmt.Sprintf("investment_news_summary_%s_%d_%d_%d_to_%d_%d.%s",
		rep.Collection,
		rep.Range.Start.Year(),
		int(rep.Range.Start.Month()), rep.Range.Start.Day(),
		int(rep.Range.End.Month()), rep.Range.End.Day(),
		ext,
	)
}

// Render formats the report header and summary body, wrapping section
// headers in markdown syntax when the markdown flag is set.
func Render(rep *Report) string {
	var sb strings.Builder

	title := fmt.Sprintf("Investment News Summary: %s", rep.Collection)
	period := rep.Range.String()

	if rep.Markdown {
		sb.WriteString(fmt.Sprintf("# %s\n\n", title))
		sb.WriteString(fmt.Sprintf("**Period:** %s  \n", period))
		sb.WriteString(fmt.Sprintf("**Articles:** %d  \n", rep.DocumentCount))
		sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04 MST")))
		sb.WriteString("## Summary\n\n")
		sb.WriteString(rep.Summary)
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")
	sb.WriteString(fmt.Sprintf("Period:    %s\n", period))
	sb.WriteString(fmt.Sprintf("Articles:  %d\n", rep.DocumentCount))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04 MST")))
	sb.WriteString("Summary\n")
	sb.WriteString(strings.Repeat("-", len("Summary")) + "\n\n")
	sb.WriteString(rep.Summary)
	sb.WriteString("\n")
	return sb.String()
}
