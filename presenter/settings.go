package presenter

import "broadcastdash/api/models"

// Settings holds the fixed constants behind the KPI classifications and
// charts. Start from DefaultSettings and override what needs changing.
type Settings struct {
	VisitsDeltaThreshold   int      `yaml:"visits_delta_threshold"`
	DurationReference      float64  `yaml:"duration_reference"`
	DurationDeltaThreshold float64  `yaml:"duration_delta_threshold"`
	EventViewsCapacity     int      `yaml:"event_views_capacity"`
	MediumTierPercent      float64  `yaml:"medium_tier_percent"`
	HighTierPercent        float64  `yaml:"high_tier_percent"`
	BufferingThreshold     float64  `yaml:"buffering_threshold"`
	TopCountries           int      `yaml:"top_countries"`
	Palette                []string `yaml:"palette"`
	DenseBuckets           bool     `yaml:"dense_buckets"`
}

var defaultPalette = []string{"red", "orange", "green", "blue", "purple", "yellow"}

var tierColors = map[string]string{
	models.TierHigh:   "#032545",
	models.TierMedium: "orange",
	models.TierLow:    "red",
}

func DefaultSettings() Settings {
	return Settings{
		VisitsDeltaThreshold:   200,
		DurationReference:      100,
		DurationDeltaThreshold: 50,
		EventViewsCapacity:     1000,
		MediumTierPercent:      50,
		HighTierPercent:        80,
		BufferingThreshold:     2,
		TopCountries:           10,
		Palette:                append([]string(nil), defaultPalette...),
	}
}

// Normalize repairs values the charts cannot work with. Thresholds and
// references are kept as given, so an explicit 0 is honoured.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.EventViewsCapacity <= 0 {
		s.EventViewsCapacity = d.EventViewsCapacity
	}
	if s.TopCountries <= 0 {
		s.TopCountries = d.TopCountries
	}
	if len(s.Palette) == 0 {
		s.Palette = d.Palette
	}
	return s
}
