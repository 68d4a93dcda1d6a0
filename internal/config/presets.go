package config

import (
	"strings"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// Preset is a named monthly amount for one spending category.
type Preset struct {
	Key    string  `json:"key" yaml:"key"`
	Label  string  `json:"label" yaml:"label"`
	Amount float64 `json:"amount" yaml:"amount"`
}

var presetCatalog = map[domain.Category][]Preset{
	domain.Housing: {
		{Key: "studio", Label: "Studio", Amount: 800},
		{Key: "one_bedroom", Label: "One bedroom", Amount: 1400},
		{Key: "with_parents", Label: "With parents", Amount: 0},
	},
	domain.Transport: {
		{Key: "bus", Label: "Bus", Amount: 300},
		{Key: "motorbike", Label: "Motorbike", Amount: 500},
		{Key: "car", Label: "Car", Amount: 1200},
		{Key: "none", Label: "None", Amount: 0},
	},
	domain.Leisure: {
		{Key: "low", Label: "Low", Amount: 200},
		{Key: "medium", Label: "Medium", Amount: 500},
		{Key: "high", Label: "High", Amount: 1000},
	},
	domain.Education: {
		{Key: "none", Label: "None", Amount: 0},
		{Key: "course", Label: "Course", Amount: 150},
		{Key: "college", Label: "College", Amount: 800},
	},
}

// DefaultPresetKeys is the starting selection: studio, bus, low leisure, no education.
var DefaultPresetKeys = map[domain.Category]string{
	domain.Housing:   "studio",
	domain.Transport: "bus",
	domain.Leisure:   "low",
	domain.Education: "none",
}

// Presets returns the options for c in display order.
func Presets(c domain.Category) []Preset {
	out := make([]Preset, len(presetCatalog[c]))
	copy(out, presetCatalog[c])
	return out
}

// PresetCatalog returns every category's options keyed by category name.
func PresetCatalog() map[string][]Preset {
	out := make(map[string][]Preset, len(domain.Categories))
	for _, c := range domain.Categories {
		out[string(c)] = Presets(c)
	}
	return out
}

// LookupPreset finds a preset by key, ignoring case and treating '-' and ' ' as '_'.
func LookupPreset(c domain.Category, key string) (Preset, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(key)))
	for _, p := range presetCatalog[c] {
		if p.Key == norm {
			return p, nil
		}
	}
	return Preset{}, domain.NewConfigurationError("spending."+string(c), "unknown preset %q", key)
}

// SpendingFromPresets builds a profile from preset keys. Categories left out
// use DefaultPresetKeys.
func SpendingFromPresets(keys map[domain.Category]string) (domain.SpendingProfile, error) {
	amounts := make(map[domain.Category]float64, len(domain.Categories))
	for _, c := range domain.Categories {
		key, ok := keys[c]
		if !ok {
			key = DefaultPresetKeys[c]
		}
		p, err := LookupPreset(c, key)
		if err != nil {
			return domain.SpendingProfile{}, err
		}
		amounts[c] = p.Amount
	}
	return domain.NewSpendingProfile(amounts)
}
