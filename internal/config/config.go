package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	OracleTemperature    float64
	OracleTimeoutSeconds int
	MaxPromptChars       int

	MinTextChars int
	OCRLanguage  string
	OCRDPI       int

	KnowledgeBasePath string
	MaxContextChars   int

	ExcelFilePath string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OpenAIAPIKey:         mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        mustEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:          mustEnv("OPENAI_MODEL", "gpt-4-turbo"),
		OracleTemperature:    mustEnvFloat("ORACLE_TEMPERATURE", 0.3),
		OracleTimeoutSeconds: mustEnvInt("ORACLE_TIMEOUT_SECONDS", 60),
		MaxPromptChars:       mustEnvInt("MAX_PROMPT_CHARS", 8000),

		MinTextChars: mustEnvInt("MIN_TEXT_CHARS", 100),
		OCRLanguage:  mustEnv("OCR_LANGUAGE", "spa"),
		OCRDPI:       mustEnvInt("OCR_DPI", 300),

		KnowledgeBasePath: mustEnv("KNOWLEDGE_BASE_PATH", "./data/knowledge_base"),
		MaxContextChars:   mustEnvInt("MAX_CONTEXT_CHARS", 8000),

		ExcelFilePath: mustEnv("EXCEL_FILE_PATH", "./data/contratos.xlsx"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
