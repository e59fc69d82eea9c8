// Package resolver maps raw model labels to catalog entries. Matching is
// deliberately forgiving: model vocabularies, catalog names and aliases
// rarely agree on spelling or language, so resolution walks an ordered
// ladder from exact matches down to substring containment before giving
// up and creating a new enriched entry.
package resolver

import (
	"context"
	"strings"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/enrichment"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var logger = logging.ForService("resolver")

// Enricher supplies descriptive catalog fields for a display name.
type Enricher interface {
	Describe(ctx context.Context, displayName string) *enrichment.Profile
}

// Resolver resolves raw labels against the animal catalog.
type Resolver struct {
	store    datastore.Interface
	enricher Enricher
	settings conf.EnrichmentSettings
}

// New creates a Resolver.
func New(store datastore.Interface, enricher Enricher, settings conf.EnrichmentSettings) *Resolver {
	return &Resolver{store: store, enricher: enricher, settings: settings}
}

// Resolve returns the catalog entry for a raw model label, creating one
// through enrichment when nothing matches. confidence is the final ensemble
// confidence and is recorded on the returned entry.
//
// The match ladder runs in two strategies. Strategy A exhausts exact
// case-insensitive name matches across every candidate before trying alias
// matches across every candidate. Strategy B repeats the two passes with
// bidirectional substring containment. The first hit on any rung wins, so
// resolution is deterministic for a fixed catalog.
func (r *Resolver) Resolve(ctx context.Context, rawLabel string, confidence float64) (*fauna.Animal, error) {
	candidates := r.candidates(rawLabel)

	animals, err := r.store.GetAllAnimals()
	if err != nil {
		return nil, err
	}

	if match := matchExact(animals, candidates); match != nil {
		return r.refresh(ctx, match, confidence)
	}
	if match := matchPartial(animals, candidates); match != nil {
		logger.Debug("label resolved by substring match",
			"raw_label", rawLabel,
			"animal", match.Name)
		return r.refresh(ctx, match, confidence)
	}

	return r.create(ctx, rawLabel, confidence)
}

// candidates builds the ordered, case-insensitively de-duplicated list of
// names to match: known synonyms first, the raw label last.
func (r *Resolver) candidates(rawLabel string) []string {
	names := append([]string{}, synonyms[strings.ToLower(rawLabel)]...)
	names = append(names, rawLabel)

	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// matchExact is strategy A: exact name match across all candidates, then
// exact alias match across all candidates.
func matchExact(animals []*fauna.Animal, candidates []string) *fauna.Animal {
	for _, candidate := range candidates {
		for _, animal := range animals {
			if strings.EqualFold(animal.Name, candidate) {
				return animal
			}
		}
	}
	for _, candidate := range candidates {
		for _, animal := range animals {
			if animal.HasAlias(candidate) {
				return animal
			}
		}
	}
	return nil
}

// matchPartial is strategy B: substring containment in either direction,
// on names first and aliases second.
func matchPartial(animals []*fauna.Animal, candidates []string) *fauna.Animal {
	for _, candidate := range candidates {
		cand := strings.ToLower(candidate)
		for _, animal := range animals {
			if containsEither(strings.ToLower(animal.Name), cand) {
				return animal
			}
		}
	}
	for _, candidate := range candidates {
		cand := strings.ToLower(candidate)
		for _, animal := range animals {
			for _, alias := range animal.Aliases {
				if containsEither(strings.ToLower(alias), cand) {
					return animal
				}
			}
		}
	}
	return nil
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// refresh records the recognition confidence on a matched entry and, per
// the configured policy, re-runs enrichment to upgrade placeholder data.
func (r *Resolver) refresh(ctx context.Context, animal *fauna.Animal, confidence float64) (*fauna.Animal, error) {
	animal.LastRecognitionConfidence = confidence

	if r.shouldReenrich(animal) {
		profile := r.enricher.Describe(ctx, animal.Name)
		if !profile.Placeholder {
			profile.Apply(animal)
			logger.Info("catalog entry re-enriched", "animal", animal.Name)
		}
	}

	if err := r.store.SaveAnimal(animal); err != nil {
		// a stale confidence is not worth failing a recognition over
		logger.Warn("failed to persist confidence update",
			"animal", animal.Name,
			"error", err)
	}
	return animal, nil
}

func (r *Resolver) shouldReenrich(animal *fauna.Animal) bool {
	switch r.settings.Refresh {
	case conf.RefreshAlways:
		return true
	default:
		return animal.Placeholder
	}
}

// create synthesizes a new catalog entry for an unknown label. Losing a
// concurrent creation race is handled by re-reading the winner.
func (r *Resolver) create(ctx context.Context, rawLabel string, confidence float64) (*fauna.Animal, error) {
	displayName := DisplayName(rawLabel)
	profile := r.enricher.Describe(ctx, displayName)

	animal := fauna.NewAnimal(displayName, "", "", fauna.ClassMammal, "", fauna.DietOmnivore, fauna.StatusNotEvaluated)
	profile.Apply(animal)
	animal.Aliases = aliasSet(rawLabel, displayName)
	animal.LastRecognitionConfidence = confidence
	animal.CreatedBy = "recognizer"

	if err := r.store.SaveAnimal(animal); err != nil {
		if errors.Is(err, fauna.ErrDuplicateName) {
			winner, readErr := r.store.GetAnimalByName(displayName)
			if readErr != nil {
				return nil, readErr
			}
			logger.Debug("lost creation race, using existing entry", "animal", displayName)
			return winner, nil
		}
		return nil, err
	}

	logger.Info("new species added to catalog",
		"animal", displayName,
		"raw_label", rawLabel,
		"placeholder", animal.Placeholder)
	return animal, nil
}

// aliasSet returns {rawLabel, displayName} without a case-insensitive
// duplicate when the two coincide.
func aliasSet(rawLabel, displayName string) []string {
	if strings.EqualFold(rawLabel, displayName) {
		return []string{displayName}
	}
	return []string{rawLabel, displayName}
}
