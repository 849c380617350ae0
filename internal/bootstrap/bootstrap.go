package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "github.com/radicado-io/petition-classifier/internal/adapters/http"
	"github.com/radicado-io/petition-classifier/internal/config"
	"github.com/radicado-io/petition-classifier/internal/core/usecase"
	"github.com/radicado-io/petition-classifier/internal/infrastructure/contracts/excel"
	"github.com/radicado-io/petition-classifier/internal/infrastructure/extractor/pdftext"
	"github.com/radicado-io/petition-classifier/internal/infrastructure/knowledge/localfs"
	"github.com/radicado-io/petition-classifier/internal/infrastructure/llm/openai"
	"github.com/radicado-io/petition-classifier/internal/infrastructure/ocr/tesseract"
	reportfpdf "github.com/radicado-io/petition-classifier/internal/infrastructure/report/fpdf"
	"github.com/radicado-io/petition-classifier/internal/observability/metrics"
)

const ServiceName = "petition-classifier"

type App struct {
	Config config.Config

	Router  *httpadapter.Router
	Metrics *metrics.HTTPServerMetrics

	closeFn func()
}

func New(cfg config.Config) (*App, error) {
	ocr := tesseract.NewEngine(cfg.OCRLanguage, cfg.OCRDPI)
	acquirer := pdftext.NewExtractor(ocr, cfg.MinTextChars)

	oracle := openai.New(openai.Config{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.OpenAIModel,
		Temperature:    cfg.OracleTemperature,
		MaxPromptChars: cfg.MaxPromptChars,
		Timeout:        time.Duration(cfg.OracleTimeoutSeconds) * time.Second,
	})

	kb, err := localfs.New(cfg.KnowledgeBasePath, acquirer, cfg.MaxContextChars)
	if err != nil {
		return nil, fmt.Errorf("init knowledge base: %w", err)
	}

	index, err := excel.New(cfg.ExcelFilePath)
	if err != nil {
		// The classification service stays up without the workbook; lookups
		// answer 404 until a reload succeeds.
		slog.Warn("contract_workbook_unavailable", "path", cfg.ExcelFilePath, "error", err)
		index = excel.NewEmpty(cfg.ExcelFilePath)
	}
	renderer := reportfpdf.NewRenderer("")

	classifyUC := usecase.NewClassifyPetitionUseCase(acquirer, oracle, kb)
	knowledgeUC := usecase.NewKnowledgeUseCase(kb)
	lookupUC := usecase.NewContractLookupUseCase(index, renderer)

	serverMetrics := metrics.NewHTTPServerMetrics(ServiceName)
	router := httpadapter.NewRouter(ServiceName, classifyUC, knowledgeUC, lookupUC, serverMetrics)

	return &App{
		Config:  cfg,
		Router:  router,
		Metrics: serverMetrics,

		closeFn: func() {
			_ = ocr.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
