package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/pitchdeck-parser/internal/config"
	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/core/ports"
	"github.com/kirillkom/pitchdeck-parser/internal/core/summary"
	"github.com/kirillkom/pitchdeck-parser/internal/observability/metrics"
)

const serviceName = "pitchdeck-api"

type Router struct {
	cfg       config.Config
	ingest    ports.DeckIngestor
	fundraise ports.FundraiseRunner
	repo      ports.DeckRepository
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DeckIngestor,
	fundraise ports.FundraiseRunner,
	repo ports.DeckRepository,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		ingest:    ingest,
		fundraise: fundraise,
		repo:      repo,
		metrics:   serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/healthz/storage", rt.storageHealth)
	mux.HandleFunc("/v1/decks", rt.decksCollection)
	mux.HandleFunc("/v1/decks/", rt.deckByID)
	mux.HandleFunc("/v1/fundraise", rt.runFundraise)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) storageHealth(w http.ResponseWriter, r *http.Request) {
	if err := rt.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) decksCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDeck(w, r)
	case http.MethodGet:
		rt.listDecks(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDeck(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	deck, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName)
	}
	writeJSON(w, http.StatusAccepted, deck)
}

func (rt *Router) listDecks(w http.ResponseWriter, r *http.Request) {
	limit := rt.cfg.ListDefaultLimit
	if limit <= 0 {
		limit = 100
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	decks, err := rt.repo.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if decks == nil {
		decks = []domain.Deck{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"decks": decks,
		"count": len(decks),
	})
}

func (rt *Router) deckByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/decks/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "deck id is required"})
		return
	}

	deck, err := rt.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	switch sub {
	case "":
		writeJSON(w, http.StatusOK, deck)
	case "summary":
		rt.deckSummary(w, deck)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) deckSummary(w http.ResponseWriter, deck *domain.Deck) {
	if deck.RawSummary == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "summary not available for deck " + deck.ID})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deck_id": deck.ID,
		"summary": summary.Decode(deck.RawSummary),
		"raw":     deck.RawSummary,
	})
}

func (rt *Router) runFundraise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		PitchDeckLink string `json:"pitch_deck_link"`
		FundsListLink string `json:"funds_list_link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.fundraise.Run(r.Context(), req.PitchDeckLink, req.FundsListLink)
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordFundraiseRun(serviceName, "error", -1)
		}
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordFundraiseRun(serviceName, "success", result.TotalFunds)
		rt.metrics.RecordSummaryFields(serviceName, countFoundFields(result.Summary))
	}
	writeJSON(w, http.StatusOK, result)
}

func countFoundFields(record domain.DeckSummary) int {
	found := 0
	for _, field := range []domain.Field{
		record.CompanyName,
		record.Description,
		record.Problem,
		record.Solution,
		record.FundingInfo,
		record.IndustrySectors,
	} {
		if field.Found() {
			found++
		}
	}
	return found
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
