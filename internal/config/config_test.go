package config

import "testing"

func TestLoadPipelineDefaults(t *testing.T) {
	t.Setenv("MIN_TEXT_CHARS", "")
	t.Setenv("OCR_LANGUAGE", "")
	t.Setenv("OCR_DPI", "")
	t.Setenv("ORACLE_TEMPERATURE", "")

	cfg := Load()
	if cfg.MinTextChars != 100 {
		t.Fatalf("expected default text gate 100, got %d", cfg.MinTextChars)
	}
	if cfg.OCRLanguage != "spa" {
		t.Fatalf("expected default OCR language spa, got %q", cfg.OCRLanguage)
	}
	if cfg.OCRDPI != 300 {
		t.Fatalf("expected default OCR dpi 300, got %d", cfg.OCRDPI)
	}
	if cfg.OracleTemperature != 0.3 {
		t.Fatalf("expected default temperature 0.3, got %v", cfg.OracleTemperature)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MIN_TEXT_CHARS", "250")
	t.Setenv("OCR_DPI", "600")
	t.Setenv("ORACLE_TEMPERATURE", "0.1")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg := Load()
	if cfg.MinTextChars != 250 {
		t.Fatalf("expected text gate 250, got %d", cfg.MinTextChars)
	}
	if cfg.OCRDPI != 600 {
		t.Fatalf("expected OCR dpi 600, got %d", cfg.OCRDPI)
	}
	if cfg.OracleTemperature != 0.1 {
		t.Fatalf("expected temperature 0.1, got %v", cfg.OracleTemperature)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("expected model override, got %q", cfg.OpenAIModel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MIN_TEXT_CHARS", "muchos")
	t.Setenv("ORACLE_TEMPERATURE", "tibia")

	cfg := Load()
	if cfg.MinTextChars != 100 {
		t.Fatalf("malformed int must fall back to default, got %d", cfg.MinTextChars)
	}
	if cfg.OracleTemperature != 0.3 {
		t.Fatalf("malformed float must fall back to default, got %v", cfg.OracleTemperature)
	}
}
