package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

// DeckRepository persists and reads pitch-deck records.
type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id string) (*domain.Deck, error)
	List(ctx context.Context, limit int) ([]domain.Deck, error)
	UpdateStatus(ctx context.Context, id string, status domain.DeckStatus, errMessage string) error
	SaveExtraction(ctx context.Context, id string, summary domain.DeckSummary, rawSummary string, extractedAt time.Time) error
	Ping(ctx context.Context) error
}

// ObjectStorage stores source PDFs and generated summary blobs.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes deck ingestion events.
type MessageQueue interface {
	PublishDeckIngested(ctx context.Context, deckID string) error
	SubscribeDeckIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// PageTextSource yields the per-page plain text of a deck document.
// One entry per page, in order; pages whose text cannot be read come back
// as empty strings rather than failing the whole document.
type PageTextSource interface {
	PageTexts(ctx context.Context, r io.ReaderAt, size int64) ([]string, error)
}

// RemoteFetcher downloads a remote file into memory.
type RemoteFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FundsListParser decodes a funds-list file into header-keyed rows.
type FundsListParser interface {
	Parse(filename string, data []byte) ([]domain.Fund, error)
}
