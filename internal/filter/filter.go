// Package filter narrows a fetched document set by publication date and
// keyword relevance. Both filters preserve retrieval order and treat an
// empty result as a reportable outcome rather than a defect.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"swfdigest/internal/daterange"
	"swfdigest/internal/store"
)

// ErrNoRelevantDocuments reports that no document in range mentioned any of
// the configured keywords.
var ErrNoRelevantDocuments = errors.New("no documents matched the keyword set")

// NoDocumentsError reports an empty result after date filtering. Earliest
// and Latest span the normalized timestamps actually seen across the input
// (nil when no document had a parseable timestamp) so an operator can tell
// whether the range or the collection is at fault.
type NoDocumentsError struct {
	Range    daterange.Range
	Earliest *time.Time
	Latest   *time.Time
}

func (e *NoDocumentsError) Error() string {
	if e.Earliest == nil {
		return fmt.Sprintf("no documents in range %s (no parseable timestamps in collection)", e.Range)
	}
	return fmt.Sprintf("no documents in range %s (collection spans %s to %s)",
		e.Range,
		e.Earliest.Format(time.RFC3339),
		e.Latest.Format(time.RFC3339),
	)
}

// ByRange keeps documents whose normalized timestamp lies within r,
// inclusive on both ends. Documents without a parseable timestamp are
// excluded. An empty result returns a *NoDocumentsError carrying the min and
// max timestamps seen.
func ByRange(docs []store.Document, r daterange.Range) ([]store.Document, error) {
	var kept []store.Document
	for _, d := range docs {
		if d.PublishedAt == nil {
			continue
		}
		if r.Contains(*d.PublishedAt) {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		e := &NoDocumentsError{Range: r}
		for _, d := range docs {
			if d.PublishedAt == nil {
				continue
			}
			if e.Earliest == nil || d.PublishedAt.Before(*e.Earliest) {
				ts := *d.PublishedAt
				e.Earliest = &ts
			}
			if e.Latest == nil || d.PublishedAt.After(*e.Latest) {
				ts := *d.PublishedAt
				e.Latest = &ts
			}
		}
		return nil, e
	}
	return kept, nil
}

// ByKeywords keeps documents whose title or content contains at least one of
// the keywords, case-insensitively. Matching is substring-based: a keyword
// inside a larger word still counts.
func ByKeywords(docs []store.Document, keywords []string) ([]store.Document, error) {
	var kept []store.Document
	for _, d := range docs {
		if matchesAny(d, keywords) {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoRelevantDocuments
	}
	return kept, nil
}

func matchesAny(d store.Document, keywords []string) bool {
	title := strings.ToLower(d.Title)
	content := strings.ToLower(d.Content)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
