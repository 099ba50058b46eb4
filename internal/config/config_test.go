package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("STORAGE_PATH", "")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "")
	t.Setenv("FETCH_MAX_BYTES", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("LIST_DEFAULT_LIMIT", "")

	cfg := Load()
	if cfg.NATSSubject != "decks.ingest" {
		t.Fatalf("expected default subject decks.ingest, got %q", cfg.NATSSubject)
	}
	if cfg.StoragePath != "./data/decks" {
		t.Fatalf("expected default storage path ./data/decks, got %q", cfg.StoragePath)
	}
	if cfg.FetchTimeoutSeconds != 30 {
		t.Fatalf("expected default fetch timeout 30, got %d", cfg.FetchTimeoutSeconds)
	}
	if cfg.FetchMaxBytes != 50<<20 {
		t.Fatalf("expected default fetch max bytes 50MiB, got %d", cfg.FetchMaxBytes)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected default rate limit 20 rps, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.ListDefaultLimit != 100 {
		t.Fatalf("expected default list limit 100, got %d", cfg.ListDefaultLimit)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "decks.ingest.staging")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "10")
	t.Setenv("FETCH_MAX_BYTES", "1048576")
	t.Setenv("API_MAX_IN_FLIGHT", "8")

	cfg := Load()
	if cfg.NATSSubject != "decks.ingest.staging" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
	if cfg.FetchTimeoutSeconds != 10 {
		t.Fatalf("expected fetch timeout 10, got %d", cfg.FetchTimeoutSeconds)
	}
	if cfg.FetchMaxBytes != 1048576 {
		t.Fatalf("expected fetch max bytes 1048576, got %d", cfg.FetchMaxBytes)
	}
	if cfg.APIMaxInFlight != 8 {
		t.Fatalf("expected max in flight 8, got %d", cfg.APIMaxInFlight)
	}
}

func TestLoadFallsBackOnBadInt(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.FetchTimeoutSeconds != 30 {
		t.Fatalf("expected fallback timeout 30, got %d", cfg.FetchTimeoutSeconds)
	}
}
