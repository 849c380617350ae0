// Package pdftext acquires plain text from PDF documents. It reads the
// embedded text layer first and falls back to per-page OCR only when the
// native pass yields too little signal, since OCR is 5-10x slower.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	pdfcpuapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/ports"
)

// DefaultMinTextChars is the decision gate between the native pass and the
// OCR fallback, and the floor below which extraction counts as exhausted.
const DefaultMinTextChars = 100

type Extractor struct {
	ocr      ports.OCREngine
	minChars int

	nativePages func(data []byte) ([]string, error)
	pageImages  func(data []byte) ([][]byte, error)
}

func NewExtractor(ocr ports.OCREngine, minChars int) *Extractor {
	if minChars <= 0 {
		minChars = DefaultMinTextChars
	}
	return &Extractor{
		ocr:         ocr,
		minChars:    minChars,
		nativePages: nativePages,
		pageImages:  pageImages,
	}
}

// Acquire returns the page-ordered text of the document. The native result
// is accepted as soon as it exceeds the minimum-length gate; otherwise every
// page is OCRed independently, with page-level failures contributing empty
// strings. When both stages stay at or below the gate the document is
// reported as unreadable, never fed onward as degenerate text.
func (e *Extractor) Acquire(ctx context.Context, pdfData []byte) (domain.AcquiredText, error) {
	if len(pdfData) == 0 {
		return domain.AcquiredText{}, domain.WrapError(domain.ErrInvalidInput, "acquire text", errors.New("empty document"))
	}

	pages, err := e.nativePages(pdfData)
	if err != nil {
		return domain.AcquiredText{}, domain.WrapError(domain.ErrInvalidInput, "native extraction", err)
	}

	nativeText := joinPages(pages)
	if len(nativeText) > e.minChars {
		return domain.AcquiredText{
			Text:   nativeText,
			Pages:  len(pages),
			Method: domain.ExtractionNative,
		}, nil
	}

	slog.Info("native_text_below_gate", "chars", len(nativeText), "gate", e.minChars)

	ocrText, ocrPages, err := e.acquireOCR(ctx, pdfData)
	if err != nil {
		return domain.AcquiredText{}, err
	}

	text := nativeText
	method := domain.ExtractionNative
	pageCount := len(pages)
	if len(ocrText) > len(text) {
		text = ocrText
		method = domain.ExtractionOCR
		pageCount = ocrPages
	}

	if len(text) <= e.minChars {
		return domain.AcquiredText{}, domain.WrapError(
			domain.ErrExtractionExhausted,
			"acquire text",
			fmt.Errorf("native %d and ocr %d chars, both at or below %d", len(nativeText), len(ocrText), e.minChars),
		)
	}

	return domain.AcquiredText{Text: text, Pages: pageCount, Method: method}, nil
}

// acquireOCR recognizes each page image independently. A page that fails to
// yield an image or to recognize contributes an empty string; only context
// cancellation aborts the document.
func (e *Extractor) acquireOCR(ctx context.Context, pdfData []byte) (string, int, error) {
	images, err := e.pageImages(pdfData)
	if err != nil {
		slog.Warn("page_image_extraction_failed", "error", err)
		return "", 0, nil
	}

	texts := make([]string, 0, len(images))
	for idx, image := range images {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		if len(image) == 0 {
			texts = append(texts, "")
			continue
		}
		pageText, err := e.ocr.Recognize(ctx, image)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", 0, err
			}
			slog.Warn("ocr_page_failed", "page", idx+1, "error", err)
			texts = append(texts, "")
			continue
		}
		texts = append(texts, cleanPageText(pageText))
	}

	return joinPages(texts), len(images), nil
}

// nativePages extracts the embedded text layer page by page. The upstream
// parser panics on some malformed files; that is converted into a regular
// error so a broken upload never takes the process down.
func nativePages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for pageNr := 1; pageNr <= total; pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, cleanPageText(text))
	}
	return pages, nil
}

// pageImages returns one encoded image per page, picking the largest asset
// on each page (scanned documents embed the scan as a single full-page
// image). Images live only in memory for the duration of the call.
func pageImages(data []byte) ([][]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.EXTRACTIMAGES
	pdfCtx, err := pdfcpuapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf for image extraction: %w", err)
	}

	images := make([][]byte, 0, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageAssets, err := pdfcpu.ExtractPageImages(pdfCtx, pageNr, false)
		if err != nil {
			images = append(images, nil)
			continue
		}
		var best []byte
		for _, asset := range pageAssets {
			if asset.Reader == nil {
				continue
			}
			raw, err := io.ReadAll(asset.Reader)
			if err != nil {
				continue
			}
			if len(raw) > len(best) {
				best = raw
			}
		}
		images = append(images, best)
	}
	return images, nil
}

func cleanPageText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func joinPages(pages []string) string {
	var b strings.Builder
	for _, page := range pages {
		if page == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(page)
	}
	return b.String()
}
