package ports

import (
	"context"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

// TextAcquirer turns raw PDF bytes into the best available plain text,
// trying the embedded text layer before OCR.
type TextAcquirer interface {
	Acquire(ctx context.Context, pdfData []byte) (domain.AcquiredText, error)
}

// OCREngine recognizes text in a single page image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// PetitionClassifier is the external classification oracle. One call per
// petition; referenceContext may be empty.
type PetitionClassifier interface {
	Classify(ctx context.Context, text, referenceContext string) (domain.Verdict, error)
	ModelID() string
}

// KnowledgeBase stores the official dependencies reference document used to
// enrich the oracle instruction payload.
type KnowledgeBase interface {
	Upload(ctx context.Context, filename, description string, pdfData []byte) (domain.KnowledgeBaseInfo, error)
	ReferenceContext() string
	Info() domain.KnowledgeBaseInfo
	Clear() error
}

// ContractIndex searches the contract workbook by name or identification.
type ContractIndex interface {
	Search(term string) (domain.ContractSearchResult, error)
	Reload() error
}

// ReportRenderer renders a contract search result as a downloadable PDF.
type ReportRenderer interface {
	Render(result domain.ContractSearchResult) ([]byte, error)
}
