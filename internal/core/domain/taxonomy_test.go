package domain

import "testing"

func TestTaxonomyHasTwelveDependencies(t *testing.T) {
	if got := len(Dependencies()); got != 12 {
		t.Fatalf("expected 12 dependencies, got %d", got)
	}
}

func TestValidDependency(t *testing.T) {
	if !ValidDependency("Vicepresidencia de Fondos en Administración") {
		t.Fatalf("known dependency reported invalid")
	}
	if ValidDependency("vicepresidencia de fondos en administración") {
		t.Fatalf("membership must be exact-match")
	}
	if ValidDependency("Oficina de Asuntos Varios") {
		t.Fatalf("unknown dependency reported valid")
	}
}

func TestDependenciesReturnsCopy(t *testing.T) {
	first := Dependencies()
	first[0].Name = "mutated"
	if Dependencies()[0].Name == "mutated" {
		t.Fatalf("taxonomy reference data must stay immutable")
	}
}
