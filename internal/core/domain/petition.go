package domain

// ExtractionMethod records which pipeline stage produced the text.
type ExtractionMethod string

const (
	ExtractionNative ExtractionMethod = "native"
	ExtractionOCR    ExtractionMethod = "ocr"
)

// AcquiredText is the output of the text acquisition pipeline: the
// page-ordered concatenation of per-page text.
type AcquiredText struct {
	Text   string
	Pages  int
	Method ExtractionMethod
}

// Metadata carries observability fields alongside a verdict. These are
// passthrough values and are not re-validated.
type Metadata struct {
	Model       string `json:"model"`
	TextLength  int    `json:"text_length"`
	TextPreview string `json:"text_preview"`
	Language    string `json:"language,omitempty"`
	Extraction  string `json:"extraction,omitempty"`
	Pages       int    `json:"pages,omitempty"`
}

// ClassificationResult is the full response for one classified petition.
type ClassificationResult struct {
	Filename       string   `json:"filename"`
	Classification Verdict  `json:"classification"`
	Metadata       Metadata `json:"metadata"`
}

// KnowledgeBaseInfo describes the stored reference document, if any.
type KnowledgeBaseInfo struct {
	HasReferenceDocument bool   `json:"has_reference_document"`
	Filename             string `json:"filename,omitempty"`
	FileHash             string `json:"file_hash,omitempty"`
	Description          string `json:"description,omitempty"`
	TextLength           int    `json:"text_length"`
	UploadDate           string `json:"upload_date,omitempty"`
}

// ContractRecord is one row of the contract workbook, keyed by header.
type ContractRecord map[string]string

// ContractSearchResult preserves workbook column order for rendering.
type ContractSearchResult struct {
	Query   string           `json:"query"`
	Columns []string         `json:"columns"`
	Records []ContractRecord `json:"records"`
}
