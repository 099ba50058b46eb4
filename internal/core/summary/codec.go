package summary

import (
	"fmt"
	"strings"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

const summaryHeader = "PITCH DECK BUSINESS SUMMARY"

// recognizedLabels is the declared key set for Decode. A line opens a new
// block when it contains a colon and any of these substrings; exact-match
// keys are deliberately not required.
var recognizedLabels = []string{
	"Company Name",
	"Description",
	"Problem",
	"Solution",
	"Funding Info",
	"Industry Sectors",
	"Total pages",
	"Total text",
}

// Encode renders the summary blob other tools parse byte-for-byte: header,
// rule, six labeled blocks in fixed order, then the metadata footer.
func Encode(s domain.DeckSummary) string {
	var b strings.Builder
	b.WriteString(summaryHeader + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Company Name: %s\n\n", s.CompanyName)
	fmt.Fprintf(&b, "Description: %s\n\n", s.Description)
	fmt.Fprintf(&b, "Problem: %s\n\n", s.Problem)
	fmt.Fprintf(&b, "Solution: %s\n\n", s.Solution)
	fmt.Fprintf(&b, "Funding Info: %s\n\n", s.FundingInfo)
	fmt.Fprintf(&b, "Industry Sectors: %s\n\n", s.IndustrySectors)

	fmt.Fprintf(&b, "Total pages processed: %d\n", s.PagesProcessed)
	fmt.Fprintf(&b, "Total text extracted: %d characters\n", s.TextExtractedChars)
	return b.String()
}

// Decode parses a summary blob back into a label→value mapping with a small
// line state machine. Blank lines are skipped; a recognized-label line
// closes the open block (committing even an empty value) and opens a new
// one; any other non-blank line extends the open value. Unrecognized lines
// outside a block are dropped. Lenient by contract: malformed input never
// fails, and a value line that happens to contain a label plus a colon will
// be misread as a key boundary.
func Decode(blob string) map[string]string {
	out := make(map[string]string)

	var key string
	var acc []string
	open := false

	commit := func() {
		if !open {
			return
		}
		out[key] = strings.TrimSpace(strings.Join(acc, "\n"))
		open = false
		acc = nil
	}

	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isLabelLine(line) {
			commit()
			head, rest, _ := strings.Cut(line, ":")
			key = strings.TrimSpace(head)
			open = true
			if rest = strings.TrimSpace(rest); rest != "" {
				acc = append(acc, rest)
			}
			continue
		}
		if open {
			acc = append(acc, line)
		}
	}
	commit()
	return out
}

func isLabelLine(line string) bool {
	if !strings.Contains(line, ":") {
		return false
	}
	for _, label := range recognizedLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}
