// Package summary holds the deterministic text pipeline for pitch decks:
// page-text normalization, heuristic field extraction, and the summary
// blob codec. Everything here is pure and allocation-local; callers may
// run extractions concurrently without coordination.
package summary

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	pageMarkerPattern = regexp.MustCompile(`--- Page \d+ ---`)
	bulletPattern     = regexp.MustCompile(`[•●◆■□]\s*`)
	spaceRunPattern   = regexp.MustCompile(`[ \t]+`)
	blankRunPattern   = regexp.MustCompile(`\n{2,}`)
)

// MarkPages assembles raw per-page text into a single marked document.
// Empty pages are skipped but keep their 1-based page numbers.
func MarkPages(pages []string) string {
	blocks := make([]string, 0, len(pages))
	for i, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("--- Page %d ---\n%s\n", i+1, page))
	}
	return strings.Join(blocks, "\n")
}

// Normalize cleans marked page text for extraction: page markers go first
// (so their own newlines collapse with the rest), bullet glyphs become a
// dash form, horizontal whitespace runs shrink to one space, and blank-line
// runs shrink to a single paragraph break. Idempotent and total.
func Normalize(text string) string {
	text = pageMarkerPattern.ReplaceAllString(text, "")
	text = bulletPattern.ReplaceAllString(text, "- ")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
