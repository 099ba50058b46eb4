package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

// maxVerbatimSectorLen guards the free-form sector label path against
// swallowing a whole paragraph.
const maxVerbatimSectorLen = 50

// DefaultSectorKeywords are the bare keyword detectors used when no
// override file is configured.
var DefaultSectorKeywords = []string{"real estate", "blockchain", "fintech", "technology"}

// strategy is one candidate in a field cascade. Cascades are ordered from
// the most explicit label to the loosest heuristic fallback; the first
// strategy yielding a non-empty value wins.
type strategy struct {
	pattern *regexp.Regexp
	post    func(string) string
}

type sectorKeyword struct {
	pattern   *regexp.Regexp
	canonical string
}

// Engine extracts a DeckSummary from normalized deck text. It never fails:
// fields with no matching pattern degrade to the absent marker.
type Engine struct {
	company     []strategy
	description []strategy
	problem     []strategy
	solution    []strategy
	funding     []strategy

	sectorLabels   []*regexp.Regexp
	sectorKeywords []sectorKeyword
	canonicalByKey map[string]string
}

func NewEngine(sectorKeywords []string) *Engine {
	if len(sectorKeywords) == 0 {
		sectorKeywords = DefaultSectorKeywords
	}

	e := &Engine{
		company: []strategy{
			{pattern: regexp.MustCompile(`(?i)Company:\s*([^\n]+)`)},
			{pattern: regexp.MustCompile(`(?i)Company Name:\s*([^\n]+)`)},
			{pattern: regexp.MustCompile(`(?i)([A-Z][a-z]+(?:[A-Z][a-z]+)*)\s*Company`)},
			{pattern: regexp.MustCompile(`(?i)Company:\s*([A-Z][a-z]+(?:[A-Z][a-z]+)*)`)},
			// Loose fallback: first camel-style capitalized token, matched
			// case-sensitively so lowercase prose does not qualify.
			{pattern: regexp.MustCompile(`[A-Z][a-z]+(?:[A-Z][a-z]+)*`)},
		},
		description: []strategy{
			{pattern: regexp.MustCompile(`(?i)(?:About|Description|Overview|What we do):\s*([^\n]+(?:\n[^\n]+)*)`)},
			{pattern: regexp.MustCompile(`(?i)We\s+are\s+([^.]*\.)`)},
			{pattern: regexp.MustCompile(`(?i)Our\s+mission\s+is\s+([^.]*\.)`)},
		},
		problem: []strategy{
			{pattern: regexp.MustCompile(`(?i)Problem:\s*([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)Challenge:\s*([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)The\s+traditional\s+([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)Current\s+market\s+([^.]*\.)`), post: firstSentence},
		},
		solution: []strategy{
			{pattern: regexp.MustCompile(`(?i)Solution:\s*([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)How\s+it\s+Works:\s*([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)Our\s+solution\s+is\s+([^.]*\.)`), post: firstSentence},
			{pattern: regexp.MustCompile(`(?i)We\s+enable\s+([^.]*\.)`), post: firstSentence},
		},
		funding: []strategy{
			{pattern: regexp.MustCompile(`(?i)Funding\s+Request:\s*([^\n]+)`), post: tightenFunding},
			{pattern: regexp.MustCompile(`(?i)Seed\s+Round:\s*([^\n]+)`), post: tightenFunding},
			{pattern: regexp.MustCompile(`(?i)Series\s+[A-Z]:\s*([^\n]+)`), post: tightenFunding},
			{pattern: regexp.MustCompile(`(?i)\$([0-9]+(?:\.[0-9]+)?)\s*(?:Million|M|Billion|B)`), post: tightenFunding},
			{pattern: regexp.MustCompile(`(?i)Funding:\s*([^\n]+)`), post: tightenFunding},
		},
		sectorLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Industry:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Sector:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Market:\s*([^\n]+)`),
		},
		canonicalByKey: make(map[string]string, len(sectorKeywords)),
	}

	for _, keyword := range sectorKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		canonical := titleCase(keyword)
		e.sectorKeywords = append(e.sectorKeywords, sectorKeyword{
			pattern:   regexp.MustCompile(`(?i)` + strings.Join(strings.Fields(regexp.QuoteMeta(keyword)), `\s+`)),
			canonical: canonical,
		})
		e.canonicalByKey[keyword] = canonical
	}

	return e
}

// Extract runs every field cascade over normalized text and assembles the
// immutable summary record. pageCount is supplied by the document source.
func (e *Engine) Extract(text string, pageCount int) domain.DeckSummary {
	return domain.DeckSummary{
		CompanyName:        firstMatch(text, e.company),
		Description:        firstMatch(text, e.description),
		Problem:            firstMatch(text, e.problem),
		Solution:           firstMatch(text, e.solution),
		FundingInfo:        firstMatch(text, e.funding),
		IndustrySectors:    e.sectors(text),
		PagesProcessed:     pageCount,
		TextExtractedChars: utf8.RuneCountInString(text),
	}
}

func firstMatch(text string, cascade []strategy) domain.Field {
	for _, st := range cascade {
		m := st.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		value = strings.TrimSpace(value)
		if st.post != nil {
			value = st.post(value)
		}
		if value == "" {
			continue
		}
		return domain.NewField(value)
	}
	return domain.Field{}
}

// firstSentence truncates problem/solution statements to their first
// sentence and restores the trailing period.
func firstSentence(s string) string {
	head, _, _ := strings.Cut(s, ".")
	return strings.TrimSpace(head) + "."
}

var fundingAmountPattern = regexp.MustCompile(
	`(?i)(\$[0-9]+(?:\.[0-9]+)?\s*(?:Million|M|Billion|B)?\s*(?:Seed|Series\s+[A-Z])?\s*Round?)`)

// tightenFunding isolates "$<amount> <magnitude> <round> Round" from a
// matched funding line; failing that, it keeps the head of a hyphenated
// description.
func tightenFunding(s string) string {
	if m := fundingAmountPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	head, _, _ := strings.Cut(s, "-")
	return strings.TrimSpace(head)
}

// sectors gathers every label and keyword match rather than stopping at the
// first. Known keywords are canonicalized to title case before dedup; free
// label captures are kept verbatim, so differently-cased variants of the
// same sector can survive side by side. That gap is part of the contract.
func (e *Engine) sectors(text string) domain.Field {
	var candidates []string
	for _, label := range e.sectorLabels {
		for _, m := range label.FindAllStringSubmatch(text, -1) {
			candidates = append(candidates, m[1])
		}
	}
	for _, kw := range e.sectorKeywords {
		candidates = append(candidates, kw.pattern.FindAllString(text, -1)...)
	}

	seen := make(map[string]bool, len(candidates))
	values := make([]string, 0, len(candidates))
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		values = append(values, v)
	}

	for _, candidate := range candidates {
		if canonical, ok := e.canonicalByKey[strings.ToLower(candidate)]; ok {
			add(canonical)
			continue
		}
		if utf8.RuneCountInString(candidate) < maxVerbatimSectorLen {
			add(strings.TrimSpace(candidate))
		}
	}

	if len(values) == 0 {
		return domain.Field{}
	}
	return domain.NewField(strings.Join(values, ", "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
