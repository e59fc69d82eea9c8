// conf/validate.go settings validation
package conf

import (
	"errors"
	"fmt"
)

// Re-enrichment policies. With RefreshPlaceholder only entries that were
// created from fallback data are re-enriched; RefreshAlways overwrites the
// descriptive fields of an entry on every successful resolution.
const (
	RefreshPlaceholder = "placeholder"
	RefreshAlways      = "always"
)

// ValidateSettings checks the loaded settings for invalid combinations and
// out-of-range values. It returns a joined error describing every problem
// found rather than stopping at the first.
func ValidateSettings(settings *Settings) error {
	var errs []error

	if settings.Detector.Threshold < 0 || settings.Detector.Threshold > 1 {
		errs = append(errs, fmt.Errorf("detector threshold must be between 0 and 1: %f", settings.Detector.Threshold))
	}
	if settings.Detector.InputSize <= 0 {
		errs = append(errs, fmt.Errorf("detector input size must be positive: %d", settings.Detector.InputSize))
	}

	if settings.Classifier.Enabled {
		if settings.Classifier.TopN <= 0 {
			errs = append(errs, fmt.Errorf("classifier topn must be positive: %d", settings.Classifier.TopN))
		}
		if settings.Classifier.MinScore < 0 || settings.Classifier.MinScore > 1 {
			errs = append(errs, fmt.Errorf("classifier minscore must be between 0 and 1: %f", settings.Classifier.MinScore))
		}
	}

	e := &settings.Ensemble
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"primarythreshold", e.PrimaryThreshold},
		{"fallbackthreshold", e.FallbackThreshold},
		{"fallbackconfidence", e.FallbackConfidence},
		{"conflictconfidence", e.ConflictConfidence},
		{"fallbackonlyconfidence", e.FallbackOnlyConfidence},
	} {
		if v.value < 0 || v.value > 1 {
			errs = append(errs, fmt.Errorf("ensemble %s must be between 0 and 1: %f", v.name, v.value))
		}
	}
	if e.FallbackThreshold > e.PrimaryThreshold {
		errs = append(errs, fmt.Errorf("ensemble fallbackthreshold (%f) must not exceed primarythreshold (%f)",
			e.FallbackThreshold, e.PrimaryThreshold))
	}

	switch settings.Enrichment.Refresh {
	case RefreshPlaceholder, RefreshAlways:
	default:
		errs = append(errs, fmt.Errorf("enrichment refresh policy must be %q or %q: %q",
			RefreshPlaceholder, RefreshAlways, settings.Enrichment.Refresh))
	}
	if settings.Enrichment.Enabled && settings.Enrichment.Timeout <= 0 {
		errs = append(errs, errors.New("enrichment timeout must be positive"))
	}

	if settings.Realtime.Session.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("session queue size must be positive: %d", settings.Realtime.Session.QueueSize))
	}

	if settings.Thumbnails.Quality < 1 || settings.Thumbnails.Quality > 100 {
		errs = append(errs, fmt.Errorf("thumbnail quality must be between 1 and 100: %d", settings.Thumbnails.Quality))
	}
	if settings.Thumbnails.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("thumbnail max size must be positive: %d", settings.Thumbnails.MaxSize))
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		errs = append(errs, errors.New("at least one database output must be enabled"))
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		errs = append(errs, errors.New("only one database output may be enabled at a time"))
	}

	return errors.Join(errs...)
}
