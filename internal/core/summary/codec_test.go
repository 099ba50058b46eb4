package summary

import (
	"strings"
	"testing"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

func sampleSummary() domain.DeckSummary {
	return domain.DeckSummary{
		CompanyName:        domain.NewField("TokenEstate"),
		Description:        domain.NewField("A marketplace for tokenized property"),
		Problem:            domain.NewField("The market is broken."),
		Solution:           domain.NewField("We tokenize buildings."),
		FundingInfo:        domain.NewField("$2.5 Million Seed Round"),
		IndustrySectors:    domain.NewField("Real Estate, Blockchain"),
		PagesProcessed:     12,
		TextExtractedChars: 3456,
	}
}

func TestEncodeLayoutIsByteExact(t *testing.T) {
	got := Encode(sampleSummary())
	want := "PITCH DECK BUSINESS SUMMARY\n" +
		strings.Repeat("=", 50) + "\n\n" +
		"Company Name: TokenEstate\n\n" +
		"Description: A marketplace for tokenized property\n\n" +
		"Problem: The market is broken.\n\n" +
		"Solution: We tokenize buildings.\n\n" +
		"Funding Info: $2.5 Million Seed Round\n\n" +
		"Industry Sectors: Real Estate, Blockchain\n\n" +
		"Total pages processed: 12\n" +
		"Total text extracted: 3456 characters\n"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeAbsentFieldsUseSentinel(t *testing.T) {
	blob := Encode(domain.DeckSummary{})
	if !strings.Contains(blob, "Company Name: Not specified\n") {
		t.Fatalf("expected sentinel for absent company name, got %q", blob)
	}
}

func TestDecodeRoundTripsEncode(t *testing.T) {
	rec := sampleSummary()
	fields := Decode(Encode(rec))

	want := map[string]string{
		"Company Name":          "TokenEstate",
		"Description":           "A marketplace for tokenized property",
		"Problem":               "The market is broken.",
		"Solution":              "We tokenize buildings.",
		"Funding Info":          "$2.5 Million Seed Round",
		"Industry Sectors":      "Real Estate, Blockchain",
		"Total pages processed": "12",
		"Total text extracted":  "3456 characters",
	}
	if len(fields) != len(want) {
		t.Fatalf("decoded %d keys, want %d: %+v", len(fields), len(want), fields)
	}
	for key, value := range want {
		if fields[key] != value {
			t.Fatalf("field %q = %q, want %q", key, fields[key], value)
		}
	}
}

func TestDecodeMultiLineValue(t *testing.T) {
	blob := "Description: first line\nsecond line\nthird line\n\nProblem: x.\n"
	fields := Decode(blob)
	if got := fields["Description"]; got != "first line\nsecond line\nthird line" {
		t.Fatalf("Description = %q", got)
	}
	if got := fields["Problem"]; got != "x." {
		t.Fatalf("Problem = %q", got)
	}
}

func TestDecodeConsecutiveLabelsCommitEmptyValue(t *testing.T) {
	blob := "Company Name:\nDescription: something\n"
	fields := Decode(blob)
	value, ok := fields["Company Name"]
	if !ok {
		t.Fatalf("expected empty Company Name key to be committed: %+v", fields)
	}
	if value != "" {
		t.Fatalf("Company Name = %q, want empty", value)
	}
}

func TestDecodeDropsUnrecognizedLinesOutsideBlocks(t *testing.T) {
	blob := "PITCH DECK BUSINESS SUMMARY\n==========\nnoise without colon\nCompany Name: Acme\n"
	fields := Decode(blob)
	if len(fields) != 1 || fields["Company Name"] != "Acme" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

// A value line containing a recognized label plus a colon is treated as a
// new key boundary. The lenient substring contract keeps this behavior.
func TestDecodeLabelSubstringInValueSplitsBlock(t *testing.T) {
	blob := "Description: intro\nsee the Problem: section below\n"
	fields := Decode(blob)
	if got := fields["Description"]; got != "intro" {
		t.Fatalf("Description = %q, want %q", got, "intro")
	}
	if got := fields["see the Problem"]; got != "section below" {
		t.Fatalf("split key = %q, want %q", got, "section below")
	}
}
