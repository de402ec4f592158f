package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/wellplan/internal/cli"
	"github.com/alexanderramin/wellplan/internal/config"
	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/lifequality"
	"github.com/alexanderramin/wellplan/internal/llm"
	"github.com/alexanderramin/wellplan/internal/planner"
	"github.com/alexanderramin/wellplan/internal/privacy"
	"github.com/alexanderramin/wellplan/internal/repository"
	"github.com/alexanderramin/wellplan/internal/retrieval"
	"github.com/alexanderramin/wellplan/internal/service"
	"github.com/alexanderramin/wellplan/internal/signals"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; anything else is a broken file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	dialect := db.DialectFor(cfg.DSN)
	database, err := db.OpenDB(cfg.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	conn := db.Bind(dialect, database)
	sessionRepo := repository.NewSQLSessionRepo(conn)
	stepRepo := repository.NewSQLStepRepo(conn)
	planRepo := repository.NewSQLPlanRepo(conn)
	metricsRepo := repository.NewSQLMetricsRepo(conn)
	lifeQualityRepo := repository.NewSQLLifeQualityRepo(conn)
	uow := db.NewUnitOfWork(database, dialect)

	policy, err := privacy.NewPolicy(cfg.Privacy, time.Now())
	if err != nil {
		return err
	}

	// Backends are chosen once here and stay fixed for the process.
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, provider := llm.NewClient(ctx, cfg.LLM, policy.LocalOnly(), observer, logger)

	sentiment, err := signals.SelectSentimentBackend(ctx, cfg.Sentiment, logger)
	if err != nil {
		return err
	}

	corpus, err := retrieval.LoadCorpus(cfg.ContentPath)
	if err != nil {
		return err
	}
	index, err := retrieval.NewIndex(ctx, corpus, retrieval.SelectVectorizer(ctx, cfg.Embeddings, logger), logger)
	if err != nil {
		return err
	}

	useCases := service.NewLogUseCaseObserver(logger)

	retention := service.NewRetentionService(uow, time.Now, useCases)
	if _, err := retention.Purge(ctx, cfg.RetentionDays); err != nil {
		logger.Warn("retention purge failed", "error", err)
	}

	app := &cli.App{
		Plan: service.NewPlanService(service.PlanDeps{
			Extractor:   signals.NewExtractor(sentiment),
			Ranker:      retrieval.NewRanker(index),
			Assembler:   planner.NewAssembler(llm.NewGenerator(client, provider), logger),
			LifeQuality: lifequality.NewEngine(lifeQualityRepo, logger),
			Steps:       stepRepo,
			Plans:       planRepo,
			UoW:         uow,
			Privacy:     policy,
			Logger:      logger,
		}, useCases),
		History: service.NewHistoryService(sessionRepo, stepRepo, metricsRepo, lifeQualityRepo, policy, useCases),
	}

	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
