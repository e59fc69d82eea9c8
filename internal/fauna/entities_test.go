package fauna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestResultSelection(t *testing.T) {
	t.Parallel()

	t.Run("empty set is valid", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BestResult(nil))
		assert.Nil(t, BestResult([]RecognitionResult{}))
	})

	t.Run("max confidence wins", func(t *testing.T) {
		t.Parallel()
		results := []RecognitionResult{
			{AnimalName: "Dog", Confidence: 0.62},
			{AnimalName: "Cow", Confidence: 0.91},
			{AnimalName: "Sheep", Confidence: 0.45},
		}
		best := BestResult(results)
		require.NotNil(t, best)
		assert.Equal(t, "Cow", best.AnimalName)
	})

	t.Run("ties broken by first seen", func(t *testing.T) {
		t.Parallel()
		results := []RecognitionResult{
			{AnimalName: "Dog", Confidence: 0.80},
			{AnimalName: "Cow", Confidence: 0.80},
		}
		best := BestResult(results)
		require.NotNil(t, best)
		assert.Equal(t, "Dog", best.AnimalName)
	})
}

func TestSessionDiscoveryDedup(t *testing.T) {
	t.Parallel()

	session := NewSession("user-1")
	assert.True(t, session.IsActive)
	assert.False(t, session.HasDiscovered("animal-1"))

	d := NewDiscovery(session.ID, "animal-1", "/media/thumb.jpg", 0.92, session.UserID)
	session.AddDiscovery(d)

	assert.True(t, session.HasDiscovered("animal-1"))
	assert.False(t, session.HasDiscovered("animal-2"))

	// Repeats of the same animal do not change the unique count.
	session.AddDiscovery(NewDiscovery(session.ID, "animal-1", "", 0.88, session.UserID))
	assert.Equal(t, 1, session.UniqueAnimalCount())
}

func TestSessionEndIdempotent(t *testing.T) {
	t.Parallel()

	session := NewSession("")
	session.End()
	require.False(t, session.IsActive)
	require.NotNil(t, session.EndedAt)

	endedAt := *session.EndedAt
	session.End() // second call must not error or change state
	assert.False(t, session.IsActive)
	assert.Equal(t, endedAt, *session.EndedAt)
}

func TestAnimalEndangered(t *testing.T) {
	t.Parallel()

	a := NewAnimal("Elefante", "Loxodonta africana", "...", ClassMammal, "Sabana", DietHerbivore, StatusEndangered)
	assert.True(t, a.IsEndangered())

	a.ConservationStatus = StatusLeastConcern
	assert.False(t, a.IsEndangered())

	a.ConservationStatus = StatusNotEvaluated
	assert.False(t, a.IsEndangered())
}

func TestAnimalAliases(t *testing.T) {
	t.Parallel()

	a := NewAnimal("Perro", "Canis familiaris", "...", ClassMammal, "Doméstico", DietOmnivore, StatusLeastConcern)
	a.Aliases = []string{"Dog", "dog"}

	assert.True(t, a.HasAlias("DOG"))
	assert.False(t, a.HasAlias("cat"))
}

func TestAnimalRandomFunFact(t *testing.T) {
	t.Parallel()

	a := NewAnimal("Vaca", "Bos taurus", "...", ClassMammal, "Pradera", DietHerbivore, StatusLeastConcern)
	assert.Empty(t, a.RandomFunFact())

	a.FunFacts = []string{"only fact"}
	assert.Equal(t, "only fact", a.RandomFunFact())
}

func TestConservationDisplayValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No Evaluado", StatusNotEvaluated.Display())
	assert.Equal(t, "En Peligro Crítico", StatusCriticallyEndangered.Display())
	assert.Equal(t, "Omnívoro", DietOmnivore.Display())
	assert.Equal(t, "Mamífero", ClassMammal.Display())
}
