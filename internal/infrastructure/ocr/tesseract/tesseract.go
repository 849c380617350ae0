// Package tesseract recognizes text in page images through the Tesseract
// engine. Requires the tesseract shared library plus the trained data for
// the configured language (spa by default).
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const (
	DefaultLanguage = "spa"
	DefaultDPI      = 300
)

type Engine struct {
	language string
	dpi      int

	clientFactory func() *gosseract.Client
}

func NewEngine(language string, dpi int) *Engine {
	if language == "" {
		language = DefaultLanguage
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Engine{
		language:      language,
		dpi:           dpi,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize runs OCR on a single encoded page image. A fresh client per call
// keeps recognitions independent across concurrent requests.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := e.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("set language %q: %w", e.language, err)
	}
	if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(e.dpi)); err != nil {
		return "", fmt.Errorf("set dpi: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (e *Engine) Close() error { return nil }
