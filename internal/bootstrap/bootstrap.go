package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/pitchdeck-parser/internal/config"
	"github.com/kirillkom/pitchdeck-parser/internal/core/ports"
	"github.com/kirillkom/pitchdeck-parser/internal/core/summary"
	"github.com/kirillkom/pitchdeck-parser/internal/core/usecase"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/extractor/pdfsource"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/fetch"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/fundslist"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/queue/nats"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/resilience"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue       ports.MessageQueue
	Repo        ports.DeckRepository
	IngestUC    ports.DeckIngestor
	ProcessUC   ports.DeckProcessor
	FundraiseUC ports.FundraiseRunner

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDeckRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	keywords, err := summary.LoadSectorKeywords(cfg.SectorKeywordsPath)
	if err != nil {
		return nil, fmt.Errorf("load sector keywords: %w", err)
	}
	engine := summary.NewEngine(keywords)

	source := pdfsource.NewExtractor()
	fetcher := fetch.New(fetch.Options{
		Timeout:            time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		MaxBytes:           cfg.FetchMaxBytes,
		ResilienceExecutor: executor,
	})
	fundsParser := fundslist.NewParser()

	ingestUC := usecase.NewIngestDeckUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDeckUseCase(repo, storage, source, engine)
	fundraiseUC := usecase.NewFundraiseUseCase(repo, fetcher, source, fundsParser, engine)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:    ingestUC,
		ProcessUC:   processUC,
		FundraiseUC: fundraiseUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
