package pets

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed breeds.yaml
var breedsYAML []byte

// Breed es una entrada del catálogo fijo de razas.
type Breed struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Origin      string `yaml:"origin" json:"origin"`
	Personality string `yaml:"personality" json:"personality"`
	HealthIssue string `yaml:"health_issue" json:"health_issue"`
}

var (
	breedsOnce sync.Once
	breeds     []Breed
	breedsErr  error
)

func loadBreeds() {
	var out []Breed
	if err := yaml.Unmarshal(breedsYAML, &out); err != nil {
		breedsErr = fmt.Errorf("pets: decode breeds: %w", err)
		return
	}
	breeds = out
}

// Breeds devuelve una copia del catálogo en el orden de presentación.
func Breeds() []Breed {
	breedsOnce.Do(loadBreeds)
	if breedsErr != nil {
		panic(breedsErr)
	}
	out := make([]Breed, len(breeds))
	copy(out, breeds)
	return out
}

func LookupBreed(code string) (Breed, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, b := range Breeds() {
		if b.Code == code {
			return b, true
		}
	}
	return Breed{}, false
}
