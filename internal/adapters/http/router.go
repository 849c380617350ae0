package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/usecase"
	"github.com/radicado-io/petition-classifier/internal/observability/metrics"
)

const maxUploadBytes = 20 << 20

type Router struct {
	service     string
	classifyUC  *usecase.ClassifyPetitionUseCase
	knowledgeUC *usecase.KnowledgeUseCase
	lookupUC    *usecase.ContractLookupUseCase
	metrics     *metrics.HTTPServerMetrics
}

func NewRouter(
	service string,
	classifyUC *usecase.ClassifyPetitionUseCase,
	knowledgeUC *usecase.KnowledgeUseCase,
	lookupUC *usecase.ContractLookupUseCase,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		service:     service,
		classifyUC:  classifyUC,
		knowledgeUC: knowledgeUC,
		lookupUC:    lookupUC,
		metrics:     m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/petitions/classify", rt.classifyPetition)
	mux.HandleFunc("/v1/dependencies", rt.listDependencies)
	mux.HandleFunc("/v1/knowledge-base", rt.knowledgeBase)
	mux.HandleFunc("/v1/contracts/search", rt.searchContracts)
	mux.HandleFunc("/v1/contracts/reload", rt.reloadContracts)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) classifyPetition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	filename, data, ok := rt.readPDFUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.classifyUC.ClassifyPetition(r.Context(), filename, data)
	if rt.metrics != nil {
		rt.metrics.RecordClassification(rt.service, err, time.Since(start))
	}
	if err != nil {
		writeError(w, "classify petition", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordExtraction(rt.service, result.Metadata.Extraction, result.Metadata.TextLength, result.Metadata.Pages)
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) listDependencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dependencies": domain.Dependencies()})
}

func (rt *Router) knowledgeBase(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, rt.knowledgeUC.Info())
	case http.MethodPost:
		filename, data, ok := rt.readPDFUpload(w, r)
		if !ok {
			return
		}
		info, err := rt.knowledgeUC.Upload(r.Context(), filename, r.FormValue("description"), data)
		if err != nil {
			writeError(w, "upload reference document", err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	case http.MethodDelete:
		if err := rt.knowledgeUC.Clear(); err != nil {
			writeError(w, "clear reference document", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) searchContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	term := r.URL.Query().Get("q")
	if r.URL.Query().Get("format") == "pdf" {
		report, err := rt.lookupUC.SearchPDF(term)
		if err != nil {
			writeError(w, "search contracts", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="contratos.pdf"`)
		_, _ = w.Write(report)
		return
	}

	result, err := rt.lookupUC.Search(term)
	if err != nil {
		writeError(w, "search contracts", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordContractSearch(rt.service, len(result.Records))
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) reloadContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := rt.lookupUC.Reload(); err != nil {
		writeError(w, "reload contract workbook", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

// readPDFUpload pulls the multipart "file" field, enforces the size cap and
// verifies the content is actually a PDF by sniffing, not by extension.
func (rt *Router) readPDFUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read uploaded file"})
		return "", nil, false
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "uploaded file is empty"})
		return "", nil, false
	}

	if detected := mimetype.Detect(data); !detected.Is("application/pdf") {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "only PDF files are accepted, got " + detected.String(),
		})
		return "", nil, false
	}

	filename := strings.TrimSpace(fileHeader.Filename)
	if filename == "" {
		filename = "document.pdf"
	}
	return filename, data, true
}

func writeError(w http.ResponseWriter, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		slog.Error(operation, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
