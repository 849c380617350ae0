package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/ports"
)

const previewChars = 200

// ClassifyPetitionUseCase runs the full per-document flow: text acquisition,
// local input gating, one oracle call, verdict validation, metadata. The two
// stages are strictly sequential and no state survives the request.
type ClassifyPetitionUseCase struct {
	acquirer  ports.TextAcquirer
	oracle    ports.PetitionClassifier
	knowledge ports.KnowledgeBase
}

func NewClassifyPetitionUseCase(
	acquirer ports.TextAcquirer,
	oracle ports.PetitionClassifier,
	knowledge ports.KnowledgeBase,
) *ClassifyPetitionUseCase {
	return &ClassifyPetitionUseCase{
		acquirer:  acquirer,
		oracle:    oracle,
		knowledge: knowledge,
	}
}

func (uc *ClassifyPetitionUseCase) ClassifyPetition(ctx context.Context, filename string, pdfData []byte) (*domain.ClassificationResult, error) {
	acquired, err := uc.acquirer.Acquire(ctx, pdfData)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(acquired.Text)
	if text == "" {
		// Rejected locally; degenerate text never spends an oracle call.
		return nil, domain.WrapError(domain.ErrExtractionExhausted, "classify petition", errors.New("whitespace-only extracted text"))
	}

	verdict, err := uc.classify(ctx, text)
	if err != nil {
		return nil, err
	}

	return &domain.ClassificationResult{
		Filename:       filename,
		Classification: verdict,
		Metadata: domain.Metadata{
			Model:       uc.oracle.ModelID(),
			TextLength:  len(text),
			TextPreview: preview(text),
			Language:    detectLanguage(text),
			Extraction:  string(acquired.Method),
			Pages:       acquired.Pages,
		},
	}, nil
}

func (uc *ClassifyPetitionUseCase) classify(ctx context.Context, text string) (domain.Verdict, error) {
	referenceContext := ""
	if uc.knowledge != nil {
		referenceContext = uc.knowledge.ReferenceContext()
	}
	return uc.oracle.Classify(ctx, text, referenceContext)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars]) + "..."
}

func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6393()
}
