package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/core/summary"
)

type fetcherFake struct {
	payloads map[string][]byte
	err      error
}

func (f *fetcherFake) Fetch(_ context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.payloads[url]
	if !ok {
		return nil, domain.WrapError(domain.ErrRemoteFetch, "fetch "+url, errors.New("not found"))
	}
	return data, nil
}

type fundsParserFake struct {
	rows []domain.Fund
	err  error
}

func (f *fundsParserFake) Parse(string, []byte) ([]domain.Fund, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestFundraiseRunHappyPath(t *testing.T) {
	repo := &repoFake{}
	fetcher := &fetcherFake{payloads: map[string][]byte{
		"https://cdn.example.com/acme.pdf":  []byte("%PDF-1.4"),
		"https://cdn.example.com/funds.csv": []byte("Fund Name,Focus\nAlpha Capital,Fintech\n"),
	}}
	source := &sourceFake{pages: []string{"Company: Acme Corp\nFunding: $2.5 Million Seed Round"}}
	funds := &fundsParserFake{rows: []domain.Fund{
		{"Fund Name": "Alpha Capital", "Focus": "Fintech"},
		{"Fund Name": "Beta Ventures", "Focus": "Real Estate"},
	}}

	uc := NewFundraiseUseCase(repo, fetcher, source, funds, summary.NewEngine(nil))
	result, err := uc.Run(context.Background(), "https://cdn.example.com/acme.pdf", "https://cdn.example.com/funds.csv")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Stored {
		t.Fatalf("expected Stored=true")
	}
	if result.TotalFunds != 2 {
		t.Fatalf("total_funds = %d, want 2", result.TotalFunds)
	}
	if result.SampleFund["Fund Name"] != "Alpha Capital" {
		t.Fatalf("sample fund = %v", result.SampleFund)
	}
	if got := result.Summary.CompanyName.String(); got != "Acme Corp" {
		t.Fatalf("company_name = %q", got)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored deck, got %d", len(repo.created))
	}
	if repo.created[0].Status != domain.StatusReady {
		t.Fatalf("stored status = %q, want %q", repo.created[0].Status, domain.StatusReady)
	}
	if repo.created[0].OriginalFilename != "acme.pdf" {
		t.Fatalf("original filename = %q", repo.created[0].OriginalFilename)
	}
}

func TestFundraiseRunRequiresBothLinks(t *testing.T) {
	uc := NewFundraiseUseCase(&repoFake{}, &fetcherFake{}, &sourceFake{}, &fundsParserFake{}, summary.NewEngine(nil))

	_, err := uc.Run(context.Background(), "https://cdn.example.com/acme.pdf", "  ")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind, got %v", err)
	}
}

func TestFundraiseRunSucceedsWhenStoreFails(t *testing.T) {
	repo := &repoFake{createErr: errors.New("connection refused")}
	fetcher := &fetcherFake{payloads: map[string][]byte{
		"https://cdn.example.com/acme.pdf":  []byte("%PDF-1.4"),
		"https://cdn.example.com/funds.csv": []byte("data"),
	}}
	source := &sourceFake{pages: []string{"Company: Acme Corp"}}

	uc := NewFundraiseUseCase(repo, fetcher, source, &fundsParserFake{}, summary.NewEngine(nil))
	result, err := uc.Run(context.Background(), "https://cdn.example.com/acme.pdf", "https://cdn.example.com/funds.csv")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stored {
		t.Fatalf("expected Stored=false when persistence fails")
	}
}

func TestFundraiseRunDegradesOnFundsParseError(t *testing.T) {
	fetcher := &fetcherFake{payloads: map[string][]byte{
		"https://cdn.example.com/acme.pdf":  []byte("%PDF-1.4"),
		"https://cdn.example.com/funds.bin": []byte("garbled bytes"),
	}}
	source := &sourceFake{pages: []string{"Company: Acme Corp"}}
	funds := &fundsParserFake{err: errors.New("unsupported format")}

	uc := NewFundraiseUseCase(&repoFake{}, fetcher, source, funds, summary.NewEngine(nil))
	result, err := uc.Run(context.Background(), "https://cdn.example.com/acme.pdf", "https://cdn.example.com/funds.bin")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.TotalFunds != 1 {
		t.Fatalf("total_funds = %d, want 1 raw-content row", result.TotalFunds)
	}
	if !strings.Contains(result.SampleFund["raw_content"], "garbled bytes") {
		t.Fatalf("sample fund = %v, want raw_content fallback", result.SampleFund)
	}
}

func TestFundraiseRunFailsOnFetchError(t *testing.T) {
	fetcher := &fetcherFake{err: domain.WrapError(domain.ErrRemoteFetch, "fetch", errors.New("dns failure"))}
	uc := NewFundraiseUseCase(&repoFake{}, fetcher, &sourceFake{}, &fundsParserFake{}, summary.NewEngine(nil))

	_, err := uc.Run(context.Background(), "https://a.example.com/x.pdf", "https://a.example.com/y.csv")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrRemoteFetch) {
		t.Fatalf("expected remote-fetch kind, got %v", err)
	}
}
