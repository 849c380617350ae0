package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Verdict is the validated classification returned to the caller. Field
// names follow the oracle's Spanish output contract.
type Verdict struct {
	Dependencia   string   `json:"dependencia"`
	Confianza     string   `json:"confianza"`
	Motivo        string   `json:"motivo"`
	PalabrasClave []string `json:"palabras_clave"`
}

var verdictFields = []string{"dependencia", "confianza", "motivo", "palabras_clave"}

// ParseVerdict decodes and validates a raw oracle payload. Any structural
// defect — missing field, unknown dependency, confidence outside [0,100],
// scalar palabras_clave — is a malformed-verdict error, kept distinct from
// transport failures so operators can tell "unreachable" from "garbage".
// Out-of-range confidence is rejected, never clamped.
func ParseVerdict(raw []byte) (Verdict, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "decode verdict", err)
	}

	for _, name := range verdictFields {
		if _, ok := fields[name]; !ok {
			return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("missing field %q", name))
		}
	}

	var verdict Verdict
	if err := json.Unmarshal(fields["dependencia"], &verdict.Dependencia); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("dependencia: %w", err))
	}
	if err := json.Unmarshal(fields["confianza"], &verdict.Confianza); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("confianza: %w", err))
	}
	if err := json.Unmarshal(fields["motivo"], &verdict.Motivo); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("motivo: %w", err))
	}
	if err := json.Unmarshal(fields["palabras_clave"], &verdict.PalabrasClave); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("palabras_clave must be an array: %w", err))
	}
	if verdict.PalabrasClave == nil {
		verdict.PalabrasClave = []string{}
	}

	if !ValidDependency(verdict.Dependencia) {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", fmt.Errorf("unknown dependency %q", verdict.Dependencia))
	}
	if _, err := ParseConfidence(verdict.Confianza); err != nil {
		return Verdict{}, WrapError(ErrMalformedVerdict, "validate verdict", err)
	}

	return verdict, nil
}

// ParseConfidence parses a "96%"-style confidence value into [0,100].
// A missing percent marker is tolerated; a value outside the range is not.
func ParseConfidence(s string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if trimmed == "" {
		return 0, errors.New("empty confidence value")
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("confidence %q is not numeric: %w", s, err)
	}
	if math.IsNaN(value) || value < 0 || value > 100 {
		return 0, fmt.Errorf("confidence %v outside [0,100]", value)
	}
	return value, nil
}
