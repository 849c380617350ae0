package usecase

import (
	"errors"
	"strings"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/ports"
)

// ContractLookupUseCase searches the contract workbook and optionally
// renders the matches as a downloadable report.
type ContractLookupUseCase struct {
	index    ports.ContractIndex
	renderer ports.ReportRenderer
}

func NewContractLookupUseCase(index ports.ContractIndex, renderer ports.ReportRenderer) *ContractLookupUseCase {
	return &ContractLookupUseCase{index: index, renderer: renderer}
}

func (uc *ContractLookupUseCase) Search(term string) (domain.ContractSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.ContractSearchResult{}, domain.WrapError(domain.ErrInvalidInput, "search contracts", errors.New("empty search term"))
	}
	return uc.index.Search(term)
}

func (uc *ContractLookupUseCase) SearchPDF(term string) ([]byte, error) {
	result, err := uc.Search(term)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(result)
}

func (uc *ContractLookupUseCase) Reload() error {
	return uc.index.Reload()
}
