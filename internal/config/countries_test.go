package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCountries(t *testing.T) {
	r := DefaultCountries()

	if r.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", r.Len())
	}

	all := r.All()
	if all[0].Name != "Greece" || all[4].Name != "Italy" {
		t.Errorf("order = %v, want Greece first and Italy last", all)
	}

	name, ok := r.NameFor("10Y1001A1001A82H")
	if !ok || name != "Germany" {
		t.Errorf("NameFor(DE) = %s, %v, want Germany, true", name, ok)
	}

	if _, ok := r.NameFor("nowhere"); ok {
		t.Error("NameFor(unknown) should report false")
	}
}

func TestCountryRegistry_AllIsACopy(t *testing.T) {
	r := DefaultCountries()

	all := r.All()
	all[0].Name = "Atlantis"

	if r.All()[0].Name != "Greece" {
		t.Error("mutating All() result must not change the registry")
	}
}

func TestNewCountryRegistry_Validation(t *testing.T) {
	tests := []struct {
		name      string
		countries []Country
		wantErr   string
	}{
		{"empty", nil, "empty"},
		{"missing name", []Country{{Code: "X"}}, "name is required"},
		{"missing code", []Country{{Name: "X"}}, "code is required"},
		{"duplicate name", []Country{{"A", "1"}, {"A", "2"}}, "duplicate country name"},
		{"duplicate code", []Country{{"A", "1"}, {"B", "1"}}, "duplicate country code"},
		{"code too long", []Country{{"A", strings.Repeat("x", 58)}}, "longer than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCountryRegistry(tt.countries)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewCountryRegistry() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseCountries(t *testing.T) {
	data := []byte(`
version: 1
countries:
  - name: Norway NO1
    code: 10YNO-1--------2
  - name: Sweden SE3
    code: 10Y1001A1001A46L
`)

	r, err := ParseCountries(data)
	if err != nil {
		t.Fatalf("ParseCountries() error = %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if name, _ := r.NameFor("10Y1001A1001A46L"); name != "Sweden SE3" {
		t.Errorf("NameFor(SE3) = %s, want Sweden SE3", name)
	}
}

func TestParseCountries_WrongVersion(t *testing.T) {
	_, err := ParseCountries([]byte("version: 2\ncountries: [{name: A, code: B}]\n"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("ParseCountries() error = %v, want unsupported version", err)
	}
}

func TestLoadCountries(t *testing.T) {
	r, err := LoadCountries("")
	if err != nil {
		t.Fatalf("LoadCountries(\"\") error = %v", err)
	}
	if r.Len() != 5 {
		t.Errorf("LoadCountries(\"\") Len() = %d, want built-in 5", r.Len())
	}

	path := filepath.Join(t.TempDir(), "countries.yaml")
	data, err := DefaultCountries().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	fromFile, err := LoadCountries(path)
	if err != nil {
		t.Fatalf("LoadCountries(file) error = %v", err)
	}
	if fromFile.Len() != 5 {
		t.Errorf("LoadCountries(file) Len() = %d, want 5", fromFile.Len())
	}

	if _, err := LoadCountries(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCountries(missing) should fail")
	}
}
