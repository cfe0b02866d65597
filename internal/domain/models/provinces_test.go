package models

import "testing"

func TestProvinceCatalogComplete(t *testing.T) {
	if got := len(ProvinceList()); got != 24 {
		t.Fatalf("expected 24 provinces, got %d", got)
	}
}

func TestIsValidProvince(t *testing.T) {
	for _, p := range []string{"PICHINCHA", "GUAYAS", "GALAPAGOS", "ZAMORA CHINCHIPE"} {
		if !IsValidProvince(p) {
			t.Fatalf("%s should be valid", p)
		}
	}
	for _, p := range []string{"", "pichincha", "QUITO", "MORDOR"} {
		if IsValidProvince(p) {
			t.Fatalf("%s should be invalid", p)
		}
	}
}

func TestFeatureOrderStable(t *testing.T) {
	names := FeatureNames()
	want := []string{
		"Es_Feriado",
		"Es_Vacaciones",
		"Mes",
		"Dia_Semana_Encoded",
		"Trimestre",
		"Temporada_Turistica_Encoded",
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("feature[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
