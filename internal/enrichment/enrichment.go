// Package enrichment synthesizes catalog entries for newly discovered
// species. It asks a language model for the descriptive fields and falls
// back to static placeholder data on any failure, so a recognition never
// aborts because the enrichment provider is down.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/logging"
	"github.com/faunadex/faunadex-go/internal/observability"
)

var logger = logging.ForService("enrichment")

// Profile carries the descriptive catalog fields for one species.
// Placeholder is set when the fields came from static fallback data.
type Profile struct {
	ScientificName         string
	Description            string
	Class                  fauna.AnimalClass
	Habitat                string
	Diet                   fauna.DietType
	ConservationStatus     fauna.ConservationStatus
	FunFacts               []string
	AverageLifespan        string
	AverageWeight          string
	AverageHeight          string
	GeographicDistribution string
	Placeholder            bool
}

// Apply copies the descriptive fields onto a catalog entry.
func (p *Profile) Apply(animal *fauna.Animal) {
	animal.ScientificName = p.ScientificName
	animal.Description = p.Description
	animal.Class = p.Class
	animal.Habitat = p.Habitat
	animal.Diet = p.Diet
	animal.ConservationStatus = p.ConservationStatus
	animal.FunFacts = p.FunFacts
	animal.AverageLifespan = p.AverageLifespan
	animal.AverageWeight = p.AverageWeight
	animal.AverageHeight = p.AverageHeight
	animal.GeographicDistribution = p.GeographicDistribution
	animal.Placeholder = p.Placeholder
}

// Client talks to an OpenAI-compatible chat completion endpoint. Responses
// are cached per species so repeated discoveries across sessions do not
// hammer the provider.
type Client struct {
	settings   conf.EnrichmentSettings
	httpClient *http.Client
	cache      *gocache.Cache

	// Metrics is optional; when set, degraded lookups are counted.
	Metrics *observability.Metrics
}

// NewClient creates an enrichment client from settings.
func NewClient(settings conf.EnrichmentSettings) *Client {
	return &Client{
		settings:   settings,
		httpClient: &http.Client{Timeout: settings.Timeout},
		cache:      gocache.New(settings.CacheTTL, 2*settings.CacheTTL),
	}
}

// Describe returns the descriptive catalog fields for a display name. It
// never fails: remote errors of any kind degrade to a static placeholder
// profile and are logged, not propagated.
func (c *Client) Describe(ctx context.Context, displayName string) *Profile {
	key := strings.ToLower(displayName)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*Profile)
	}

	if !c.settings.Enabled {
		return fallbackProfile(displayName)
	}

	profile, err := c.describeRemote(ctx, displayName)
	if err != nil {
		logger.Warn("enrichment degraded to placeholder",
			"species", displayName,
			"error", err)
		if c.Metrics != nil {
			c.Metrics.EnrichmentFailures.Inc()
		}
		return fallbackProfile(displayName)
	}

	c.cache.Set(key, profile, gocache.DefaultExpiration)
	return profile
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// profilePayload is the JSON document the model is asked to produce.
type profilePayload struct {
	ScientificName         string   `json:"scientific_name"`
	Description            string   `json:"description"`
	AnimalClass            string   `json:"animal_class"`
	Habitat                string   `json:"habitat"`
	Diet                   string   `json:"diet"`
	ConservationStatus     string   `json:"conservation_status"`
	FunFacts               []string `json:"fun_facts"`
	AverageLifespan        string   `json:"average_lifespan"`
	AverageWeight          string   `json:"average_weight"`
	AverageHeight          string   `json:"average_height"`
	GeographicDistribution string   `json:"geographic_distribution"`
}

const promptTemplate = `Eres un biólogo experto. Devuelve únicamente un objeto JSON con datos del animal "%s", sin texto adicional. Campos: scientific_name, description (2-3 frases en español), animal_class (MAMMAL|BIRD|REPTILE|AMPHIBIAN|FISH|INVERTEBRATE), habitat, diet (CARNIVORE|HERBIVORE|OMNIVORE|INSECTIVORE|PISCIVORE), conservation_status (EXTINCT|EXTINCT_IN_WILD|CRITICALLY_ENDANGERED|ENDANGERED|VULNERABLE|NEAR_THREATENED|LEAST_CONCERN|DATA_DEFICIENT|NOT_EVALUATED), fun_facts (lista de 3), average_lifespan, average_weight, average_height, geographic_distribution.`

func (c *Client) describeRemote(ctx context.Context, displayName string) (*Profile, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.settings.Model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(promptTemplate, displayName)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.settings.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(fmt.Errorf("enrichment request: %w", err)).
			Component("enrichment").
			Category(errors.CategoryNetwork).
			Context("species", displayName).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("enrichment provider returned status %d", resp.StatusCode).
			Component("enrichment").
			Category(errors.CategoryHTTP).
			Context("species", displayName).
			Context("status_code", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty choices in enrichment response")
	}

	return parseProfile(chatResp.Choices[0].Message.Content)
}

// parseProfile extracts the profile JSON from a model reply. Models often
// wrap JSON in markdown fences, those are stripped first.
func parseProfile(content string) (*Profile, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload profilePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if payload.Description == "" {
		return nil, fmt.Errorf("profile missing description")
	}

	return &Profile{
		ScientificName:         payload.ScientificName,
		Description:            payload.Description,
		Class:                  normalizeClass(payload.AnimalClass),
		Habitat:                payload.Habitat,
		Diet:                   normalizeDiet(payload.Diet),
		ConservationStatus:     normalizeStatus(payload.ConservationStatus),
		FunFacts:               payload.FunFacts,
		AverageLifespan:        payload.AverageLifespan,
		AverageWeight:          payload.AverageWeight,
		AverageHeight:          payload.AverageHeight,
		GeographicDistribution: payload.GeographicDistribution,
	}, nil
}

func normalizeClass(raw string) fauna.AnimalClass {
	class := fauna.AnimalClass(strings.ToUpper(strings.TrimSpace(raw)))
	switch class {
	case fauna.ClassMammal, fauna.ClassBird, fauna.ClassReptile,
		fauna.ClassAmphibian, fauna.ClassFish, fauna.ClassInvertebrate:
		return class
	default:
		return fauna.ClassMammal
	}
}

func normalizeDiet(raw string) fauna.DietType {
	diet := fauna.DietType(strings.ToUpper(strings.TrimSpace(raw)))
	switch diet {
	case fauna.DietCarnivore, fauna.DietHerbivore, fauna.DietOmnivore,
		fauna.DietInsectivore, fauna.DietPiscivore:
		return diet
	default:
		return fauna.DietOmnivore
	}
}

func normalizeStatus(raw string) fauna.ConservationStatus {
	status := fauna.ConservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case fauna.StatusExtinct, fauna.StatusExtinctInWild,
		fauna.StatusCriticallyEndangered, fauna.StatusEndangered,
		fauna.StatusVulnerable, fauna.StatusNearThreatened,
		fauna.StatusLeastConcern, fauna.StatusDataDeficient,
		fauna.StatusNotEvaluated:
		return status
	default:
		return fauna.StatusNotEvaluated
	}
}
