package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aurawear/aurawear-backend/internal/domain"
)

//go:embed colors.json
var catalogFS embed.FS

// ColorsPerPalette is the fixed size of every season palette. The catalog
// file is rejected at load time if any palette deviates.
const ColorsPerPalette = 18

// SeasonOrder fixes the season_palette lookup ids: index+1 is the row id.
var SeasonOrder = []string{
	"Light Spring",
	"True Spring",
	"Bright Spring",
	"Light Summer",
	"True Summer",
	"Soft Summer",
	"Soft Autumn",
	"True Autumn",
	"Deep Autumn",
	"Bright Winter",
	"True Winter",
	"Deep Winter",
}

type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hex    string `json:"hex"`
	Season string `json:"season"`
}

var (
	loadOnce sync.Once
	loaded   []Entry
	loadErr  error
)

// Load parses and validates the embedded color catalog. The result is cached;
// the catalog never changes at runtime.
func Load() ([]Entry, error) {
	loadOnce.Do(func() {
		raw, err := catalogFS.ReadFile("colors.json")
		if err != nil {
			loadErr = fmt.Errorf("read embedded catalog: %w", err)
			return
		}
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			loadErr = fmt.Errorf("parse embedded catalog: %w", err)
			return
		}
		if err := validate(entries); err != nil {
			loadErr = err
			return
		}
		loaded = entries
	})
	return loaded, loadErr
}

// SeasonPaletteID resolves a season name to its lookup-table id, 0 if unknown.
func SeasonPaletteID(season string) int {
	for i, name := range SeasonOrder {
		if name == season {
			return i + 1
		}
	}
	return 0
}

func validate(entries []Entry) error {
	perSeason := make(map[string]int, len(SeasonOrder))
	seenCodes := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if SeasonPaletteID(e.Season) == 0 {
			return fmt.Errorf("catalog entry %q references unknown season %q", e.ID, e.Season)
		}
		if !domain.IsHexColor(e.Hex) {
			return fmt.Errorf("catalog entry %q has malformed hex %q", e.ID, e.Hex)
		}
		if _, dup := seenCodes[e.ID]; dup {
			return fmt.Errorf("catalog entry %q duplicated", e.ID)
		}
		seenCodes[e.ID] = struct{}{}
		perSeason[e.Season]++
	}
	var bad []string
	for _, season := range SeasonOrder {
		if perSeason[season] != ColorsPerPalette {
			bad = append(bad, fmt.Sprintf("%s=%d", season, perSeason[season]))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("every season palette must carry exactly %d colors: %v", ColorsPerPalette, bad)
	}
	return nil
}
