package resolver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/enrichment"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// stubEnricher returns a canned profile and counts calls.
type stubEnricher struct {
	profile *enrichment.Profile
	calls   int
}

func (s *stubEnricher) Describe(_ context.Context, displayName string) *enrichment.Profile {
	s.calls++
	if s.profile != nil {
		return s.profile
	}
	return &enrichment.Profile{
		Description:        "perfil generado para " + displayName,
		Class:              fauna.ClassMammal,
		Diet:               fauna.DietOmnivore,
		ConservationStatus: fauna.StatusNotEvaluated,
	}
}

func newTestStore(t *testing.T) datastore.Interface {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "test.db")

	store := datastore.New(settings)
	require.NotNil(t, store)
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newResolver(t *testing.T, enricher Enricher) (*Resolver, datastore.Interface) {
	t.Helper()
	store := newTestStore(t)
	return New(store, enricher, conf.EnrichmentSettings{Refresh: conf.RefreshPlaceholder}), store
}

func seedAnimal(t *testing.T, store datastore.Interface, name string, aliases ...string) *fauna.Animal {
	t.Helper()
	a := fauna.NewAnimal(name, "", "descr", fauna.ClassMammal, "", fauna.DietOmnivore, fauna.StatusLeastConcern)
	a.Aliases = aliases
	require.NoError(t, store.SaveAnimal(a))
	return a
}

func TestResolveExactName(t *testing.T) {
	t.Parallel()
	enricher := &stubEnricher{}
	r, store := newResolver(t, enricher)
	want := seedAnimal(t, store, "Perro")

	got, err := r.Resolve(context.Background(), "dog", 0.9)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Zero(t, enricher.calls, "a match must not trigger enrichment")
}

func TestResolveSynonymBeforeRawLabel(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	spanish := seedAnimal(t, store, "Gato")
	seedAnimal(t, store, "Cats")

	// "Gato" is the first synonym candidate, so it wins over the raw label
	got, err := r.Resolve(context.Background(), "Cats", 0.9)
	require.NoError(t, err)
	assert.Equal(t, spanish.ID, got.ID)
}

func TestResolveByAlias(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	want := seedAnimal(t, store, "Lobo Ibérico", "wolf")

	got, err := r.Resolve(context.Background(), "wolf", 0.7)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestResolveNamePassBeforeAliasPass(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	// one entry matches a later candidate by name, another matches an
	// earlier candidate by alias; the name pass runs to exhaustion first
	byName := seedAnimal(t, store, "Dog")
	seedAnimal(t, store, "Otro", "Perro")

	got, err := r.Resolve(context.Background(), "dog", 0.9)
	require.NoError(t, err)
	assert.Equal(t, byName.ID, got.ID)
}

func TestResolveSubstringFallback(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	want := seedAnimal(t, store, "Oso Pardo")

	got, err := r.Resolve(context.Background(), "oso", 0.8)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestResolveSubstringBothDirections(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	want := seedAnimal(t, store, "Jabalí")

	got, err := r.Resolve(context.Background(), "cría de jabalí", 0.8)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestResolveMissCreatesEnrichedEntry(t *testing.T) {
	t.Parallel()
	enricher := &stubEnricher{}
	r, store := newResolver(t, enricher)

	got, err := r.Resolve(context.Background(), "wolf", 0.75)
	require.NoError(t, err)
	assert.Equal(t, "Lobo", got.Name, "raw label is translated for display")
	assert.ElementsMatch(t, []string{"wolf", "Lobo"}, got.Aliases)
	assert.InDelta(t, 0.75, got.LastRecognitionConfidence, 0.001)
	assert.Equal(t, 1, enricher.calls)

	persisted, err := store.GetAnimalByName("Lobo")
	require.NoError(t, err)
	assert.Equal(t, got.ID, persisted.ID)
}

func TestResolveMissUnmappedLabelTitleCased(t *testing.T) {
	t.Parallel()
	r, _ := newResolver(t, &stubEnricher{})

	got, err := r.Resolve(context.Background(), "ring-tailed lemur", 0.8)
	require.NoError(t, err)
	assert.Equal(t, "Ring-tailed Lemur", got.Name)
}

func TestResolveDeterministic(t *testing.T) {
	t.Parallel()
	r, store := newResolver(t, &stubEnricher{})
	seedAnimal(t, store, "Perro")
	seedAnimal(t, store, "Gato")
	seedAnimal(t, store, "Vaca")

	first, err := r.Resolve(context.Background(), "dog", 0.9)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), "dog", 0.9)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestResolvePlaceholderUpgraded(t *testing.T) {
	t.Parallel()
	enricher := &stubEnricher{profile: &enrichment.Profile{
		ScientificName:     "Canis lupus",
		Description:        "perfil completo",
		Class:              fauna.ClassMammal,
		Diet:               fauna.DietCarnivore,
		ConservationStatus: fauna.StatusLeastConcern,
	}}
	store := newTestStore(t)
	r := New(store, enricher, conf.EnrichmentSettings{Refresh: conf.RefreshPlaceholder})

	placeholder := fauna.NewAnimal("Lobo", "Desconocido", "pendiente",
		fauna.ClassMammal, "", fauna.DietOmnivore, fauna.StatusNotEvaluated)
	placeholder.Placeholder = true
	require.NoError(t, store.SaveAnimal(placeholder))

	got, err := r.Resolve(context.Background(), "wolf", 0.9)
	require.NoError(t, err)
	assert.Equal(t, placeholder.ID, got.ID)
	assert.Equal(t, "Canis lupus", got.ScientificName)
	assert.False(t, got.Placeholder)
	assert.Equal(t, 1, enricher.calls)
}

func TestResolveEnrichedEntryNotRefreshed(t *testing.T) {
	t.Parallel()
	enricher := &stubEnricher{}
	r, store := newResolver(t, enricher)
	seedAnimal(t, store, "Perro")

	_, err := r.Resolve(context.Background(), "dog", 0.9)
	require.NoError(t, err)
	assert.Zero(t, enricher.calls, "placeholder policy leaves enriched entries alone")
}

func TestResolveRefreshAlways(t *testing.T) {
	t.Parallel()
	enricher := &stubEnricher{profile: &enrichment.Profile{
		Description:        "actualizado",
		Class:              fauna.ClassMammal,
		Diet:               fauna.DietOmnivore,
		ConservationStatus: fauna.StatusLeastConcern,
	}}
	store := newTestStore(t)
	r := New(store, enricher, conf.EnrichmentSettings{Refresh: conf.RefreshAlways})
	seedAnimal(t, store, "Perro")

	got, err := r.Resolve(context.Background(), "dog", 0.9)
	require.NoError(t, err)
	assert.Equal(t, "actualizado", got.Description)
	assert.Equal(t, 1, enricher.calls)
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Perro", DisplayName("dog"))
	assert.Equal(t, "Jirafa", DisplayName("Giraffle"))
	assert.Equal(t, "Gato", DisplayName("CATS"))
	assert.Equal(t, "Sea Otter", DisplayName("sea otter"))
}

func TestCandidatesDeduplicated(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, conf.EnrichmentSettings{})
	got := r.candidates("Cat")
	// synonyms lead, the raw label "Cat" is already covered case
	// insensitively by the synonym list
	assert.Equal(t, []string{"Gato", "Cat"}, got)
}
