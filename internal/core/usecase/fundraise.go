package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/core/ports"
	"github.com/kirillkom/pitchdeck-parser/internal/core/summary"
)

// FundraiseUseCase runs the synchronous workflow: fetch a pitch deck and a
// funds list by URL, extract the business summary, and persist one record.
// Storage failure does not fail the workflow; the result reports Stored=false.
type FundraiseUseCase struct {
	repo    ports.DeckRepository
	fetcher ports.RemoteFetcher
	source  ports.PageTextSource
	funds   ports.FundsListParser
	engine  *summary.Engine
}

func NewFundraiseUseCase(
	repo ports.DeckRepository,
	fetcher ports.RemoteFetcher,
	source ports.PageTextSource,
	funds ports.FundsListParser,
	engine *summary.Engine,
) *FundraiseUseCase {
	return &FundraiseUseCase{
		repo:    repo,
		fetcher: fetcher,
		source:  source,
		funds:   funds,
		engine:  engine,
	}
}

func (uc *FundraiseUseCase) Run(ctx context.Context, pitchDeckLink, fundsListLink string) (*domain.FundraiseResult, error) {
	if strings.TrimSpace(pitchDeckLink) == "" || strings.TrimSpace(fundsListLink) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate fundraise request", errors.New("both links are required"))
	}

	deckData, err := uc.fetcher.Fetch(ctx, pitchDeckLink)
	if err != nil {
		return nil, fmt.Errorf("download pitch deck: %w", err)
	}
	fundsData, err := uc.fetcher.Fetch(ctx, fundsListLink)
	if err != nil {
		return nil, fmt.Errorf("download funds list: %w", err)
	}

	pages, err := uc.source.PageTexts(ctx, bytes.NewReader(deckData), int64(len(deckData)))
	if err != nil {
		return nil, fmt.Errorf("extract page texts: %w", err)
	}
	rawText := summary.MarkPages(pages)
	if rawText == "" {
		return nil, domain.WrapError(domain.ErrEmptyText, "extract page text", errors.New("pitch deck yielded no text"))
	}

	record := uc.engine.Extract(summary.Normalize(rawText), len(pages))
	blob := summary.Encode(record)

	fundRows := uc.parseFunds(fundsListLink, fundsData)

	now := time.Now().UTC()
	deck := &domain.Deck{
		ID:               uuid.NewString(),
		SourceLink:       pitchDeckLink,
		FundsListLink:    fundsListLink,
		OriginalFilename: path.Base(pitchDeckLink),
		Summary:          record,
		TotalFunds:       len(fundRows),
		RawSummary:       blob,
		Status:           domain.StatusReady,
		ExtractedAt:      &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	stored := true
	if err := uc.repo.Create(ctx, deck); err != nil {
		// The extraction result is still worth returning.
		slog.Warn("fundraise_store_failed", "deck_id", deck.ID, "error", err)
		stored = false
	}

	result := &domain.FundraiseResult{
		WorkflowID:    deck.ID,
		Summary:       record,
		TotalFunds:    len(fundRows),
		PitchDeckLink: pitchDeckLink,
		FundsListLink: fundsListLink,
		Stored:        stored,
	}
	if len(fundRows) > 0 {
		result.SampleFund = fundRows[0]
	}
	return result, nil
}

// parseFunds is lenient like the rest of the workflow: an unparseable funds
// list degrades to a single raw_content row instead of failing the request.
func (uc *FundraiseUseCase) parseFunds(link string, data []byte) []domain.Fund {
	rows, err := uc.funds.Parse(path.Base(link), data)
	if err != nil {
		slog.Warn("funds_list_parse_failed", "link", link, "error", err)
		return []domain.Fund{{"raw_content": string(data)}}
	}
	return rows
}
