package healthtips

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed devuelve el catálogo incorporado. Cada llamada devuelve una copia nueva.
func Seed() []Draft {
	var out []Draft
	if err := yaml.Unmarshal(seedYAML, &out); err != nil {
		panic(fmt.Errorf("healthtips: decode seed: %w", err))
	}
	for i := range out {
		out[i].Content = strings.TrimSpace(out[i].Content)
	}
	return out
}

// Missing devuelve las entradas del catálogo incorporado cuyo título no existe todavía.
// Nunca pisa ni duplica lo que ya está guardado.
func Missing(existing []Tip) []Draft {
	titles := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		titles[t.Title] = struct{}{}
	}

	out := make([]Draft, 0)
	for _, d := range Seed() {
		if _, ok := titles[d.Title]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}
