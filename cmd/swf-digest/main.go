package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"swfdigest/internal/config"
	"swfdigest/internal/daterange"
	"swfdigest/internal/filter"
	"swfdigest/internal/logger"
	"swfdigest/internal/publisher"
	"swfdigest/internal/runner"
	"swfdigest/internal/store"
	"swfdigest/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	collection := flag.String("collection", "", "document collection to summarize (overrides config)")
	year := flag.Int("year", 0, "year of the date range (0 = current year)")
	month := flag.Int("month", 0, "month of the date range, 1-12")
	startDay := flag.Int("start-day", 0, "first day of the date range")
	endDay := flag.Int("end-day", 0, "last day of the date range")
	markdown := flag.Bool("markdown", false, "write the summary as markdown")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *collection != "" {
		cfg.Collection = *collection
	}
	if *markdown {
		cfg.Output.Markdown = true
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.NewFirestore(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsFile, log)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer st.Close()

	s := summarizer.NewOpenAISummarizer(
		cfg.Summarizer.APIKey,
		cfg.Summarizer.Model,
		cfg.Summarizer.MaxTokens,
	)

	pubs := []publisher.Publisher{
		publisher.NewStdoutPublisher(),
		publisher.NewFilePublisher(cfg.Output.Dir, log),
	}
	if cfg.Output.Email.Enabled {
		pubs = append(pubs, publisher.NewEmailPublisher(
			cfg.Output.Email.SMTPHost,
			cfg.Output.Email.SMTPPort,
			cfg.Output.Email.Username,
			cfg.Output.Email.Password,
			cfg.Output.Email.From,
			cfg.Output.Email.To,
		))
	}

	r := runner.New(runner.Options{
		Collection:        cfg.Collection,
		ArchiveCollection: cfg.ArchiveCollection,
		Keywords:          cfg.Keywords,
		Markdown:          cfg.Output.Markdown,
	}, st, s, pubs, log)

	runOnce := func(y, m, sd, ed int) int {
		rng, err := daterange.Resolve(y, m, sd, ed, loc)
		if err != nil {
			log.Errorf("Invalid date range: %v", err)
			return 1
		}
		err = r.Run(ctx, rng)
		if err == nil {
			return 0
		}
		// Empty result sets are expected outcomes, reported but not fatal.
		var noDocs *filter.NoDocumentsError
		if errors.As(err, &noDocs) || errors.Is(err, filter.ErrNoRelevantDocuments) {
			log.Warnf("Nothing to summarize: %v", err)
			return 0
		}
		log.Errorf("Pipeline failed: %v", err)
		return 1
	}

	// Explicit date flags imply a single run.
	if *once || *year != 0 || *month != 0 || *startDay != 0 || *endDay != 0 {
		code := runOnce(*year, *month, *startDay, *endDay)
		st.Close()
		os.Exit(code)
	}

	if cfg.RunOnStart {
		log.Info("Running initial digest")
		runOnce(0, 0, 0, 0)
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Info("Cron triggered, running digest")
		runOnce(0, 0, 0, 0)
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Infof("Scheduled digest with cron expression: %s", cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("Received signal %v, shutting down", sig)

	cancel()
	c.Stop()
}
