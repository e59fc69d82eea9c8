package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(conf.EnrichmentSettings{
		Enabled:  true,
		BaseURL:  "https://openrouter.test/api/v1",
		APIKey:   "test-key",
		Model:    "test-model",
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	})
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func chatReply(content string) (*http.Response, error) {
	return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
}

const wolfJSON = `{
	"scientific_name": "Canis lupus",
	"description": "El lobo es un cánido salvaje que vive y caza en manadas.",
	"animal_class": "MAMMAL",
	"habitat": "Bosques y tundra",
	"diet": "CARNIVORE",
	"conservation_status": "LEAST_CONCERN",
	"fun_facts": ["Puede recorrer 50 km en una noche."],
	"average_lifespan": "6-8 años",
	"average_weight": "30-60 kg",
	"average_height": "80-85 cm",
	"geographic_distribution": "Hemisferio norte"
}`

func TestDescribeRemote(t *testing.T) {
	c := testClient(t)
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		func(*http.Request) (*http.Response, error) { return chatReply(wolfJSON) })

	profile := c.Describe(context.Background(), "Lobo")
	require.NotNil(t, profile)
	assert.Equal(t, "Canis lupus", profile.ScientificName)
	assert.Equal(t, fauna.ClassMammal, profile.Class)
	assert.Equal(t, fauna.DietCarnivore, profile.Diet)
	assert.Equal(t, fauna.StatusLeastConcern, profile.ConservationStatus)
	assert.False(t, profile.Placeholder)
}

func TestDescribeStripsMarkdownFences(t *testing.T) {
	c := testClient(t)
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		func(*http.Request) (*http.Response, error) {
			return chatReply("```json\n" + wolfJSON + "\n```")
		})

	profile := c.Describe(context.Background(), "Lobo")
	assert.Equal(t, "Canis lupus", profile.ScientificName)
	assert.False(t, profile.Placeholder)
}

func TestDescribeCachesResponses(t *testing.T) {
	c := testClient(t)
	calls := 0
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		func(*http.Request) (*http.Response, error) {
			calls++
			return chatReply(wolfJSON)
		})

	c.Describe(context.Background(), "Lobo")
	c.Describe(context.Background(), "lobo")
	assert.Equal(t, 1, calls, "cache key is case insensitive")
}

func TestDescribeDegradesOnServerError(t *testing.T) {
	c := testClient(t)
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		httpmock.NewStringResponder(http.StatusTooManyRequests, "rate limited"))

	profile := c.Describe(context.Background(), "Quokka")
	require.NotNil(t, profile)
	assert.True(t, profile.Placeholder)
	assert.Equal(t, fauna.DietOmnivore, profile.Diet)
	assert.Equal(t, fauna.StatusNotEvaluated, profile.ConservationStatus)
}

func TestDescribeDegradesOnMalformedReply(t *testing.T) {
	c := testClient(t)
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		func(*http.Request) (*http.Response, error) { return chatReply("lo siento, no puedo") })

	profile := c.Describe(context.Background(), "Quokka")
	assert.True(t, profile.Placeholder)
}

func TestDescribeDegradesOnNetworkError(t *testing.T) {
	c := testClient(t)
	httpmock.RegisterResponder("POST", "https://openrouter.test/api/v1/chat/completions",
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")))

	profile := c.Describe(context.Background(), "Quokka")
	assert.True(t, profile.Placeholder)
}

func TestDescribeDisabledUsesStaticData(t *testing.T) {
	c := NewClient(conf.EnrichmentSettings{Enabled: false, CacheTTL: time.Minute})

	profile := c.Describe(context.Background(), "Perro")
	require.NotNil(t, profile)
	assert.Equal(t, "Canis lupus familiaris", profile.ScientificName)
	assert.False(t, profile.Placeholder, "curated static data is not a placeholder")
}

func TestFallbackProfileUnknownSpecies(t *testing.T) {
	t.Parallel()

	profile := fallbackProfile("Axolotl")
	assert.True(t, profile.Placeholder)
	assert.Contains(t, profile.Description, "Axolotl")
	assert.Equal(t, fauna.StatusNotEvaluated, profile.ConservationStatus)
}

func TestParseProfileNormalizesEnums(t *testing.T) {
	t.Parallel()

	profile, err := parseProfile(`{
		"description": "x",
		"animal_class": "dragon",
		"diet": "metal",
		"conservation_status": "fine"
	}`)
	require.NoError(t, err)
	assert.Equal(t, fauna.ClassMammal, profile.Class)
	assert.Equal(t, fauna.DietOmnivore, profile.Diet)
	assert.Equal(t, fauna.StatusNotEvaluated, profile.ConservationStatus)
}

func TestProfileApply(t *testing.T) {
	t.Parallel()

	animal := fauna.NewAnimal("Lobo", "", "", fauna.ClassMammal, "", fauna.DietOmnivore, fauna.StatusNotEvaluated)
	profile := &Profile{
		ScientificName:     "Canis lupus",
		Description:        "desc",
		Class:              fauna.ClassMammal,
		Diet:               fauna.DietCarnivore,
		ConservationStatus: fauna.StatusLeastConcern,
		FunFacts:           []string{"a"},
	}
	profile.Apply(animal)
	assert.Equal(t, "Canis lupus", animal.ScientificName)
	assert.Equal(t, fauna.DietCarnivore, animal.Diet)
	assert.False(t, animal.Placeholder)
}
