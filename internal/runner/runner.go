package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"swfdigest/internal/daterange"
	"swfdigest/internal/filter"
	"swfdigest/internal/publisher"
	"swfdigest/internal/store"
	"swfdigest/internal/summarizer"
)

// Runner orchestrates the fetch -> filter -> summarize -> publish pipeline.
type Runner struct {
	collection        string
	archiveCollection string
	keywords          []string
	markdown          bool
	store             store.Store
	summarizer        summarizer.Summarizer
	publishers        []publisher.Publisher
	log               *logrus.Logger
}

type Options struct {
	Collection        string
	ArchiveCollection string
	Keywords          []string
	Markdown          bool
}

func New(opts Options, st store.Store, s summarizer.Summarizer, pubs []publisher.Publisher, log *logrus.Logger) *Runner {
	return &Runner{
		collection:        opts.Collection,
		archiveCollection: opts.ArchiveCollection,
		keywords:          opts.Keywords,
		markdown:          opts.Markdown,
		store:             st,
		summarizer:        s,
		publishers:        pubs,
		log:               log,
	}
}

// Run executes the full pipeline once over the given date range.
func (r *Runner) Run(ctx context.Context, rng daterange.Range) error {
	r.log.WithFields(logrus.Fields{
		"collection": r.collection,
		"range":      rng.String(),
	}).Info("Starting pipeline")

	docs, _, err := r.store.FetchAll(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("runner: fetch failed: %w", err)
	}

	inRange, err := filter.ByRange(docs, rng)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	r.log.WithField("documents", len(inRange)).Info("Date filter applied")

	relevant, err := filter.ByKeywords(inRange, r.keywords)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	r.log.WithField("documents", len(relevant)).Info("Keyword filter applied")

	summary, err := r.summarizer.Summarize(ctx, relevant)
	if err != nil {
		return fmt.Errorf("runner: summarize failed: %w", err)
	}
	r.log.WithField("length", len(summary)).Info("Summary generated")

	rep := &publisher.Report{
		Collection:    r.collection,
		Range:         rng,
		Summary:       summary,
		DocumentCount: len(relevant),
		GeneratedAt:   time.Now(),
		Markdown:      r.markdown,
	}

	// Continue with the remaining publishers even if one fails.
	var publishErrors []error
	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, rep); err != nil {
			publishErrors = append(publishErrors, fmt.Errorf("publish via %T failed: %w", pub, err))
			r.log.WithError(err).Warnf("Publish via %T failed", pub)
		}
	}
	if len(r.publishers) > 0 && len(publishErrors) == len(r.publishers) {
		return fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}

	if r.archiveCollection != "" {
		rec := store.RunRecord{
			Collection:    r.collection,
			Summary:       summary,
			RangeStart:    rng.Start,
			RangeEnd:      rng.End,
			DocumentCount: len(relevant),
			GeneratedAt:   rep.GeneratedAt,
		}
		if err := r.store.ArchiveSummary(ctx, r.archiveCollection, rec); err != nil {
			r.log.WithError(err).Warn("Archiving summary failed")
		}
	}

	r.log.Info("Pipeline completed")
	return nil
}
