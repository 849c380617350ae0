package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "contratos.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func testRows() [][]string {
	return [][]string{
		{"No. Contrato", "Nombre del Contratista", "Identificación", "Objeto"},
		{"C-001", "María Fernanda López", "1047381234", "Interventoría fondo Cartagena"},
		{"C-002", "Carlos Pérez Gómez", "73124567", "Soporte plataforma de pagos"},
		{"C-003", "López y Asociados SAS", "900123456", "Asesoría jurídica"},
	}
}

func TestSearchByNameSubstringCaseInsensitive(t *testing.T) {
	idx, err := New(writeWorkbook(t, testRows()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := idx.Search("lópez")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(result.Records), result.Records)
	}
	if result.Records[0]["No. Contrato"] != "C-001" || result.Records[1]["No. Contrato"] != "C-003" {
		t.Fatalf("expected workbook order preserved, got %v", result.Records)
	}
}

func TestSearchByIdentification(t *testing.T) {
	idx, err := New(writeWorkbook(t, testRows()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := idx.Search("73124567")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.Records))
	}
	if result.Records[0]["Nombre del Contratista"] != "Carlos Pérez Gómez" {
		t.Fatalf("unexpected record: %v", result.Records[0])
	}
}

func TestSearchNoMatchesReturnsEmptyResult(t *testing.T) {
	idx, err := New(writeWorkbook(t, testRows()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := idx.Search("inexistente")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no matches, got %v", result.Records)
	}
	if len(result.Columns) != 4 {
		t.Fatalf("column order must survive an empty result, got %v", result.Columns)
	}
}

func TestSearchDoesNotMatchUnrelatedColumns(t *testing.T) {
	idx, err := New(writeWorkbook(t, testRows()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := idx.Search("plataforma")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("object column must not be searched when name columns exist, got %v", result.Records)
	}
}

func TestNewMissingWorkbook(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-such.xlsx"))
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReloadPicksUpNewRows(t *testing.T) {
	path := writeWorkbook(t, testRows())
	idx, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	updated := append(testRows(), []string{"C-004", "Ana López Ruiz", "45761234", "Auditoría"})
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range updated {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	if err := idx.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	result, err := idx.Search("lópez")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected 3 matches after reload, got %d", len(result.Records))
	}
}
