package pdftext

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

type ocrFake struct {
	calls   int
	perCall map[int]string
	err     error
	failOn  int
}

func (f *ocrFake) Recognize(_ context.Context, _ []byte) (string, error) {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return "", errors.New("recognition failed")
	}
	if f.err != nil {
		return "", f.err
	}
	if text, ok := f.perCall[f.calls]; ok {
		return text, nil
	}
	return "", nil
}

func (f *ocrFake) Close() error { return nil }

func newTestExtractor(ocr *ocrFake, native []string, images [][]byte) *Extractor {
	e := NewExtractor(ocr, 100)
	e.nativePages = func([]byte) ([]string, error) { return native, nil }
	e.pageImages = func([]byte) ([][]byte, error) { return images, nil }
	return e
}

func TestAcquireNativeAboveGateSkipsOCR(t *testing.T) {
	ocr := &ocrFake{}
	native := []string{strings.Repeat("texto de la petición ", 10), "segunda página"}
	e := newTestExtractor(ocr, native, nil)

	got, err := e.Acquire(context.Background(), []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got.Method != domain.ExtractionNative {
		t.Fatalf("expected native method, got %s", got.Method)
	}
	if ocr.calls != 0 {
		t.Fatalf("OCR must not run when native text exceeds the gate, got %d calls", ocr.calls)
	}
	if !strings.Contains(got.Text, "segunda página") {
		t.Fatalf("expected page-ordered concatenation, got %q", got.Text)
	}
}

func TestAcquireFallsBackToOCRPerPage(t *testing.T) {
	long := strings.Repeat("solicitud escaneada ", 10)
	ocr := &ocrFake{perCall: map[int]string{1: long, 2: long, 3: long}}
	images := [][]byte{[]byte("img1"), []byte("img2"), []byte("img3")}
	e := newTestExtractor(ocr, []string{"", "", ""}, images)

	got, err := e.Acquire(context.Background(), []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got.Method != domain.ExtractionOCR {
		t.Fatalf("expected ocr method, got %s", got.Method)
	}
	if ocr.calls != len(images) {
		t.Fatalf("expected OCR on every page, got %d calls for %d pages", ocr.calls, len(images))
	}
	if got.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", got.Pages)
	}
}

func TestAcquireToleratesPageLevelOCRFailure(t *testing.T) {
	long := strings.Repeat("contenido reconocido ", 10)
	ocr := &ocrFake{perCall: map[int]string{1: long, 3: long}, failOn: 2}
	images := [][]byte{[]byte("img1"), []byte("img2"), []byte("img3")}
	e := newTestExtractor(ocr, nil, images)

	got, err := e.Acquire(context.Background(), []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("one failed page must not fail the document: %v", err)
	}
	if ocr.calls != 3 {
		t.Fatalf("expected OCR attempted on all pages, got %d", ocr.calls)
	}
	if !strings.Contains(got.Text, "contenido reconocido") {
		t.Fatalf("expected text from surviving pages, got %q", got.Text)
	}
}

func TestAcquireExhaustedWhenBothStagesBelowGate(t *testing.T) {
	ocr := &ocrFake{perCall: map[int]string{1: "corto"}}
	e := newTestExtractor(ocr, []string{"poco"}, [][]byte{[]byte("img1")})

	_, err := e.Acquire(context.Background(), []byte("%PDF-1.4"))
	if !domain.IsKind(err, domain.ErrExtractionExhausted) {
		t.Fatalf("expected extraction exhausted, got %v", err)
	}
}

func TestAcquireRejectsEmptyInput(t *testing.T) {
	e := newTestExtractor(&ocrFake{}, nil, nil)
	_, err := e.Acquire(context.Background(), nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAcquireStopsOnCancellation(t *testing.T) {
	ocr := &ocrFake{}
	images := [][]byte{[]byte("img1"), []byte("img2")}
	e := newTestExtractor(ocr, nil, images)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Acquire(ctx, []byte("%PDF-1.4"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if ocr.calls != 0 {
		t.Fatalf("no OCR work expected after cancellation, got %d calls", ocr.calls)
	}
}

func TestAcquireMalformedPDFIsDeclaredFailure(t *testing.T) {
	e := NewExtractor(&ocrFake{}, 100)
	e.nativePages = func([]byte) ([]string, error) { return nil, errors.New("pdf parser panic: bad xref") }

	_, err := e.Acquire(context.Background(), []byte("not a pdf"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed pdf, got %v", err)
	}
}

func TestAcquireIsDeterministic(t *testing.T) {
	long := strings.Repeat("mismo resultado ", 10)
	images := [][]byte{[]byte("img1")}

	run := func() domain.AcquiredText {
		ocr := &ocrFake{perCall: map[int]string{1: long}}
		e := newTestExtractor(ocr, []string{""}, images)
		got, err := e.Acquire(context.Background(), []byte("%PDF-1.4"))
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		return got
	}

	first, second := run(), run()
	if first != second {
		t.Fatalf("identical input produced different results: %+v vs %+v", first, second)
	}
}
