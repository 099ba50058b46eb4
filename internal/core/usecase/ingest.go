package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/core/ports"
)

type IngestDeckUseCase struct {
	repo    ports.DeckRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestDeckUseCase(
	repo ports.DeckRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestDeckUseCase {
	return &IngestDeckUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *IngestDeckUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Deck, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("only PDF files are allowed"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	deck := &domain.Deck{
		ID:               id,
		OriginalFilename: filename,
		StoragePath:      storageKey,
		Status:           domain.StatusUploaded,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.repo.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("create deck record: %w", err)
	}

	if err := uc.queue.PublishDeckIngested(ctx, deck.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return deck, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "deck.pdf"
	}
	return base
}
