package ports

import (
	"context"
	"io"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

// DeckIngestor is the inbound contract for pitch-deck upload orchestration.
type DeckIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Deck, error)
}

// DeckProcessor is the inbound contract for asynchronous deck extraction.
type DeckProcessor interface {
	ProcessByID(ctx context.Context, deckID string) error
}

// FundraiseRunner executes the synchronous fundraise workflow over two
// remote links.
type FundraiseRunner interface {
	Run(ctx context.Context, pitchDeckLink, fundsListLink string) (*domain.FundraiseResult, error)
}
