package pdfsource

import (
	"context"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

// Extractor reads per-page plain text from PDF data using
// github.com/ledongthuc/pdf. Pages whose text cannot be decoded come back
// as empty strings so one bad page does not sink the document.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) PageTexts(ctx context.Context, r io.ReaderAt, size int64) ([]string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDocumentOpen, "parse pdf", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, pageText(reader, i))
	}
	return pages, nil
}

func pageText(reader *pdf.Reader, num int) string {
	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
