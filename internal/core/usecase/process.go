package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/core/ports"
	"github.com/kirillkom/pitchdeck-parser/internal/core/summary"
)

type ProcessDeckUseCase struct {
	repo    ports.DeckRepository
	storage ports.ObjectStorage
	source  ports.PageTextSource
	engine  *summary.Engine
}

func NewProcessDeckUseCase(
	repo ports.DeckRepository,
	storage ports.ObjectStorage,
	source ports.PageTextSource,
	engine *summary.Engine,
) *ProcessDeckUseCase {
	return &ProcessDeckUseCase{
		repo:    repo,
		storage: storage,
		source:  source,
		engine:  engine,
	}
}

func (uc *ProcessDeckUseCase) ProcessByID(ctx context.Context, deckID string) error {
	if err := uc.markStatus(ctx, deckID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	deck, record, blob, err := uc.extractPipeline(ctx, deckID)
	if err != nil {
		if failErr := uc.markFailed(ctx, deckID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.persistExtraction(ctx, deck, record, blob); err != nil {
		if failErr := uc.markFailed(ctx, deckID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, deckID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDeckUseCase) extractPipeline(ctx context.Context, deckID string) (*domain.Deck, domain.DeckSummary, string, error) {
	deck, err := uc.repo.GetByID(ctx, deckID)
	if err != nil {
		return nil, domain.DeckSummary{}, "", fmt.Errorf("fetch deck by id: %w", err)
	}

	pages, err := uc.loadPageTexts(ctx, deck)
	if err != nil {
		return nil, domain.DeckSummary{}, "", err
	}

	rawText := summary.MarkPages(pages)
	if rawText == "" {
		return nil, domain.DeckSummary{}, "", domain.WrapError(domain.ErrEmptyText, "extract page text", errors.New("document yielded no text"))
	}

	record := uc.engine.Extract(summary.Normalize(rawText), len(pages))
	blob := summary.Encode(record)
	return deck, record, blob, nil
}

func (uc *ProcessDeckUseCase) loadPageTexts(ctx context.Context, deck *domain.Deck) ([]string, error) {
	reader, err := uc.storage.Open(ctx, deck.StoragePath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDocumentOpen, "open stored deck", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDocumentOpen, "read stored deck", err)
	}

	pages, err := uc.source.PageTexts(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("extract page texts: %w", err)
	}
	return pages, nil
}

func (uc *ProcessDeckUseCase) persistExtraction(ctx context.Context, deck *domain.Deck, record domain.DeckSummary, blob string) error {
	extractedAt := time.Now().UTC()
	if err := uc.repo.SaveExtraction(ctx, deck.ID, record, blob, extractedAt); err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	if err := uc.storage.Save(ctx, deck.ID+"_summary.txt", strings.NewReader(blob)); err != nil {
		return fmt.Errorf("save summary blob: %w", err)
	}
	return nil
}

func (uc *ProcessDeckUseCase) markStatus(ctx context.Context, deckID string, status domain.DeckStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, deckID, status, errMessage)
}

func (uc *ProcessDeckUseCase) markFailed(ctx context.Context, deckID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, deckID, domain.StatusFailed, processErr.Error())
}
