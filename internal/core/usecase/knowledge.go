package usecase

import (
	"context"
	"errors"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/ports"
)

// KnowledgeUseCase manages the official dependencies reference document that
// enriches the oracle instruction payload.
type KnowledgeUseCase struct {
	kb ports.KnowledgeBase
}

func NewKnowledgeUseCase(kb ports.KnowledgeBase) *KnowledgeUseCase {
	return &KnowledgeUseCase{kb: kb}
}

func (uc *KnowledgeUseCase) Upload(ctx context.Context, filename, description string, pdfData []byte) (domain.KnowledgeBaseInfo, error) {
	if len(pdfData) == 0 {
		return domain.KnowledgeBaseInfo{}, domain.WrapError(domain.ErrInvalidInput, "upload reference document", errors.New("empty file"))
	}
	return uc.kb.Upload(ctx, filename, description, pdfData)
}

func (uc *KnowledgeUseCase) Info() domain.KnowledgeBaseInfo {
	return uc.kb.Info()
}

func (uc *KnowledgeUseCase) Clear() error {
	return uc.kb.Clear()
}
