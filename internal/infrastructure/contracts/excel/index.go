// Package excel indexes the institutional contract workbook and serves
// name and identification lookups over it.
package excel

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

var (
	nameHeaderHints = []string{"nombre", "razon", "razón", "contratista", "beneficiario"}
	idHeaderHints   = []string{"identificacion", "identificación", "cedula", "cédula", "nit", "documento"}
)

type Index struct {
	path string

	mu      sync.RWMutex
	columns []string
	records []domain.ContractRecord
}

func New(path string) (*Index, error) {
	idx := &Index{path: path}
	if err := idx.Reload(); err != nil {
		return nil, err
	}
	return idx, nil
}

// NewEmpty builds an index with no loaded workbook. Searches answer not
// found until a Reload succeeds against the configured path.
func NewEmpty(path string) *Index {
	return &Index{path: path}
}

// Reload re-reads the workbook from disk, replacing the in-memory index
// atomically. The first sheet's first row is taken as the header.
func (idx *Index) Reload() error {
	if _, err := os.Stat(idx.path); err != nil {
		return domain.WrapError(domain.ErrNotFound, "open contract workbook", err)
	}

	f, err := excelize.OpenFile(idx.path)
	if err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "open contract workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "read contract workbook", fmt.Errorf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "read contract workbook", err)
	}
	if len(rows) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "read contract workbook", fmt.Errorf("workbook sheet %q is empty", sheets[0]))
	}

	columns := make([]string, 0, len(rows[0]))
	for _, header := range rows[0] {
		columns = append(columns, strings.TrimSpace(header))
	}

	records := make([]domain.ContractRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.ContractRecord, len(columns))
		empty := true
		for i, column := range columns {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			if value != "" {
				empty = false
			}
			record[column] = value
		}
		if !empty {
			records = append(records, record)
		}
	}

	idx.mu.Lock()
	idx.columns = columns
	idx.records = records
	idx.mu.Unlock()
	return nil
}

// Search matches the term case-insensitively against name and
// identification columns. When the header carries no recognizable
// name or identification column, every column is searched.
func (idx *Index) Search(term string) (domain.ContractSearchResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.columns) == 0 {
		return domain.ContractSearchResult{}, domain.WrapError(domain.ErrNotFound, "search contracts", fmt.Errorf("contract workbook not loaded"))
	}

	searchable := idx.searchableColumns()
	needle := strings.ToLower(strings.TrimSpace(term))

	result := domain.ContractSearchResult{
		Query:   strings.TrimSpace(term),
		Columns: append([]string(nil), idx.columns...),
		Records: []domain.ContractRecord{},
	}
	for _, record := range idx.records {
		for _, column := range searchable {
			if strings.Contains(strings.ToLower(record[column]), needle) {
				result.Records = append(result.Records, record)
				break
			}
		}
	}
	return result, nil
}

func (idx *Index) searchableColumns() []string {
	var matched []string
	for _, column := range idx.columns {
		lower := strings.ToLower(column)
		for _, hint := range append(append([]string{}, nameHeaderHints...), idHeaderHints...) {
			if strings.Contains(lower, hint) {
				matched = append(matched, column)
				break
			}
		}
	}
	if len(matched) == 0 {
		return idx.columns
	}
	return matched
}
