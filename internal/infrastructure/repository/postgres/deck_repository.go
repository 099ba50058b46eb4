package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

type DeckRepository struct {
	db *sql.DB
}

func NewDeckRepository(db *sql.DB) *DeckRepository {
	return &DeckRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DeckRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS pitch_decks (
	id TEXT PRIMARY KEY,
	source_link TEXT,
	funds_list_link TEXT,
	original_filename TEXT NOT NULL,
	storage_path TEXT,
	company_name TEXT,
	description TEXT,
	problem TEXT,
	solution TEXT,
	funding_info TEXT,
	industry_sectors TEXT,
	pages_processed INTEGER NOT NULL DEFAULT 0,
	text_extracted_chars INTEGER NOT NULL DEFAULT 0,
	total_funds INTEGER NOT NULL DEFAULT 0,
	raw_summary TEXT,
	status TEXT NOT NULL,
	error_message TEXT,
	extracted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pitch_decks_status ON pitch_decks(status);
CREATE INDEX IF NOT EXISTS idx_pitch_decks_created_at ON pitch_decks(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DeckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO pitch_decks (
	id, source_link, funds_list_link, original_filename, storage_path,
	company_name, description, problem, solution, funding_info, industry_sectors,
	pages_processed, text_extracted_chars, total_funds, raw_summary,
	status, error_message, extracted_at, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
`,
		deck.ID, deck.SourceLink, deck.FundsListLink, deck.OriginalFilename, deck.StoragePath,
		deck.Summary.CompanyName.String(), deck.Summary.Description.String(), deck.Summary.Problem.String(),
		deck.Summary.Solution.String(), deck.Summary.FundingInfo.String(), deck.Summary.IndustrySectors.String(),
		deck.Summary.PagesProcessed, deck.Summary.TextExtractedChars, deck.TotalFunds, deck.RawSummary,
		string(deck.Status), deck.Error, deck.ExtractedAt, deck.CreatedAt, deck.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pitch deck: %w", err)
	}
	return nil
}

func (r *DeckRepository) GetByID(ctx context.Context, id string) (*domain.Deck, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, source_link, funds_list_link, original_filename, storage_path,
	company_name, description, problem, solution, funding_info, industry_sectors,
	pages_processed, text_extracted_chars, total_funds, raw_summary,
	status, error_message, extracted_at, created_at, updated_at
FROM pitch_decks
WHERE id = $1
`, id)

	deck, err := scanDeck(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDeckNotFound, "get deck by id", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan pitch deck: %w", err)
	}
	return deck, nil
}

func (r *DeckRepository) List(ctx context.Context, limit int) ([]domain.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, source_link, funds_list_link, original_filename, storage_path,
	company_name, description, problem, solution, funding_info, industry_sectors,
	pages_processed, text_extracted_chars, total_funds, raw_summary,
	status, error_message, extracted_at, created_at, updated_at
FROM pitch_decks
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pitch decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pitch deck row: %w", err)
		}
		decks = append(decks, *deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pitch deck rows: %w", err)
	}
	return decks, nil
}

func (r *DeckRepository) UpdateStatus(ctx context.Context, id string, status domain.DeckStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE pitch_decks
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update deck status: %w", err)
	}
	return notFoundIfNoRows(res, id)
}

func (r *DeckRepository) SaveExtraction(ctx context.Context, id string, record domain.DeckSummary, rawSummary string, extractedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE pitch_decks
SET company_name = $2, description = $3, problem = $4, solution = $5,
	funding_info = $6, industry_sectors = $7, pages_processed = $8,
	text_extracted_chars = $9, raw_summary = $10, extracted_at = $11, updated_at = $12
WHERE id = $1
`,
		id, record.CompanyName.String(), record.Description.String(), record.Problem.String(),
		record.Solution.String(), record.FundingInfo.String(), record.IndustrySectors.String(),
		record.PagesProcessed, record.TextExtractedChars, rawSummary, extractedAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	return notFoundIfNoRows(res, id)
}

func (r *DeckRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var companyName, description, problem, solution, fundingInfo, industrySectors string
	var sourceLink, fundsListLink, storagePath, rawSummary, errMessage sql.NullString
	var extractedAt sql.NullTime
	var status string

	err := row.Scan(
		&deck.ID, &sourceLink, &fundsListLink, &deck.OriginalFilename, &storagePath,
		&companyName, &description, &problem, &solution, &fundingInfo, &industrySectors,
		&deck.Summary.PagesProcessed, &deck.Summary.TextExtractedChars, &deck.TotalFunds, &rawSummary,
		&status, &errMessage, &extractedAt, &deck.CreatedAt, &deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	deck.SourceLink = sourceLink.String
	deck.FundsListLink = fundsListLink.String
	deck.StoragePath = storagePath.String
	deck.RawSummary = rawSummary.String
	deck.Error = errMessage.String
	deck.Status = domain.DeckStatus(status)
	if extractedAt.Valid {
		t := extractedAt.Time
		deck.ExtractedAt = &t
	}

	deck.Summary.CompanyName = domain.ParseField(companyName)
	deck.Summary.Description = domain.ParseField(description)
	deck.Summary.Problem = domain.ParseField(problem)
	deck.Summary.Solution = domain.ParseField(solution)
	deck.Summary.FundingInfo = domain.ParseField(fundingInfo)
	deck.Summary.IndustrySectors = domain.ParseField(industrySectors)
	return &deck, nil
}

func notFoundIfNoRows(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDeckNotFound, "update deck", fmt.Errorf("id %s", id))
	}
	return nil
}
