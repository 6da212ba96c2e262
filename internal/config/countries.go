package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// registryVersion is the only supported countries file format version.
const registryVersion = 1

// maxCodeLength keeps "prices_<code>" inside the 64-byte callback data limit.
const maxCodeLength = 57

// Country is one selectable market price region.
type Country struct {
	Name string `yaml:"name"` // Display name shown on the button
	Code string `yaml:"code"` // ENTSO-E bidding zone EIC code sent to the API
}

// countriesFile is the on-disk YAML shape.
type countriesFile struct {
	Version   int       `yaml:"version"`
	Countries []Country `yaml:"countries"`
}

// CountryRegistry is the ordered, read-only mapping of display name to region
// code used by the market price flow. It is safe for concurrent use because
// nothing mutates it after construction.
type CountryRegistry struct {
	countries []Country
	byCode    map[string]string
}

var defaultCountries = []Country{
	{Name: "Greece", Code: "10YGR-HTSO-----Y"},
	{Name: "Germany", Code: "10Y1001A1001A82H"},
	{Name: "France", Code: "10YFR-RTE------C"},
	{Name: "Spain", Code: "10YES-REE------0"},
	{Name: "Italy", Code: "10Y1001A1001A44P"},
}

// DefaultCountries returns the built-in five-country registry.
func DefaultCountries() *CountryRegistry {
	r, err := NewCountryRegistry(defaultCountries)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in country registry: %v", err))
	}
	return r
}

// NewCountryRegistry validates and copies countries into a registry.
func NewCountryRegistry(countries []Country) (*CountryRegistry, error) {
	if len(countries) == 0 {
		return nil, fmt.Errorf("country registry is empty")
	}

	r := &CountryRegistry{
		countries: make([]Country, 0, len(countries)),
		byCode:    make(map[string]string, len(countries)),
	}
	names := make(map[string]bool, len(countries))

	for i, c := range countries {
		c.Name = strings.TrimSpace(c.Name)
		c.Code = strings.TrimSpace(c.Code)

		if c.Name == "" {
			return nil, fmt.Errorf("country %d: name is required", i+1)
		}
		if c.Code == "" {
			return nil, fmt.Errorf("country %q: code is required", c.Name)
		}
		if len(c.Code) > maxCodeLength {
			return nil, fmt.Errorf("country %q: code longer than %d bytes", c.Name, maxCodeLength)
		}
		if names[c.Name] {
			return nil, fmt.Errorf("duplicate country name %q", c.Name)
		}
		if _, dup := r.byCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate country code %q", c.Code)
		}

		names[c.Name] = true
		r.byCode[c.Code] = c.Name
		r.countries = append(r.countries, c)
	}

	return r, nil
}

// LoadCountries reads a registry from a YAML file.
// An empty path returns the built-in registry.
func LoadCountries(path string) (*CountryRegistry, error) {
	if path == "" {
		return DefaultCountries(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries file: %w", err)
	}

	return ParseCountries(data)
}

// ParseCountries parses a registry from YAML:
//
//	version: 1
//	countries:
//	  - name: Germany
//	    code: 10Y1001A1001A82H
func ParseCountries(data []byte) (*CountryRegistry, error) {
	var file countriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse countries file: %w", err)
	}

	if file.Version != registryVersion {
		return nil, fmt.Errorf("unsupported countries file version: %d (expected %d)", file.Version, registryVersion)
	}

	return NewCountryRegistry(file.Countries)
}

// Marshal renders the registry back into the YAML file format.
func (r *CountryRegistry) Marshal() ([]byte, error) {
	return yaml.Marshal(countriesFile{Version: registryVersion, Countries: r.All()})
}

// All returns the countries in display order. The slice is a copy.
func (r *CountryRegistry) All() []Country {
	out := make([]Country, len(r.countries))
	copy(out, r.countries)
	return out
}

// Len returns the number of countries.
func (r *CountryRegistry) Len() int {
	return len(r.countries)
}

// NameFor returns the display name for a region code.
func (r *CountryRegistry) NameFor(code string) (string, bool) {
	name, ok := r.byCode[code]
	return name, ok
}
