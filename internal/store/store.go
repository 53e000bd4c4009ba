package store

import (
	"context"
	"errors"
	"time"
)

// ErrConnection indicates the document store is unreachable or rejected the
// run's credentials. It is fatal for the run; nothing retries it.
var ErrConnection = errors.New("document store connection failed")

// dateFields are probed in priority order when normalizing a document's
// publication time.
var dateFields = []string{
	"date_publish",
	"date_published",
	"published_date",
	"publishedDate",
	"date",
	"timestamp",
}

// contentFields are probed in order for the article body; collections from
// different scrapers disagree on the field name.
var contentFields = []string{"content", "text", "body", "article", "description"}

var sourceFields = []string{"source", "article_url", "url"}

// Document is one news record with its publication time normalized.
type Document struct {
	ID      string
	Title   string
	Content string
	Source  string
	// PublishedAt is nil when no recognized timestamp field parsed.
	PublishedAt *time.Time
	// DateField names the field that supplied PublishedAt, "" when unparseable.
	DateField string
}

// FieldStats counts which timestamp fields supplied the normalized time
// across a fetch. Observational only; logged to aid operator diagnosis.
type FieldStats struct {
	ByField     map[string]int
	Unparseable int
}

// RunRecord is the processed output of one run, written back to the archive
// collection when configured.
type RunRecord struct {
	Collection    string    `firestore:"collection"`
	Summary       string    `firestore:"summary"`
	RangeStart    time.Time `firestore:"range_start"`
	RangeEnd      time.Time `firestore:"range_end"`
	DocumentCount int       `firestore:"document_count"`
	GeneratedAt   time.Time `firestore:"generated_at"`
}

// Store is a remote collection of news documents.
type Store interface {
	FetchAll(ctx context.Context, collection string) ([]Document, *FieldStats, error)
	ArchiveSummary(ctx context.Context, collection string, rec RunRecord) error
}

// timeLayouts accepted for string-valued timestamp fields, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize builds a Document from raw field data, resolving the publication
// time and article body via prioritized field probing. The first recognized
// field whose value parses becomes authoritative.
func Normalize(id string, data map[string]interface{}) Document {
	doc := Document{ID: id}
	doc.Title = stringField(data, "title")
	for _, f := range sourceFields {
		if v := stringField(data, f); v != "" {
			doc.Source = v
			break
		}
	}
	for _, f := range contentFields {
		if v := stringField(data, f); v != "" {
			doc.Content = v
			break
		}
	}
	for _, f := range dateFields {
		raw, ok := data[f]
		if !ok {
			continue
		}
		if ts, ok := parseTimestamp(raw); ok {
			doc.PublishedAt = &ts
			doc.DateField = f
			break
		}
	}
	return doc
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// parseTimestamp accepts native time values, ISO-8601 strings (timezone
// offsets respected), and unix-epoch seconds.
func parseTimestamp(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts, true
			}
		}
	case int64:
		return time.Unix(v, 0), true
	case float64:
		return time.Unix(int64(v), 0), true
	}
	return time.Time{}, false
}
