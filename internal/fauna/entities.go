package fauna

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Animal is a catalog entry for a recognizable species.
type Animal struct {
	ID                        string             `json:"id"`
	Name                      string             `json:"name"` // canonical display name, unique
	ScientificName            string             `json:"scientific_name"`
	Description               string             `json:"description"`
	Class                     AnimalClass        `json:"animal_class"`
	Habitat                   string             `json:"habitat"`
	Diet                      DietType           `json:"diet"`
	ConservationStatus        ConservationStatus `json:"conservation_status"`
	FunFacts                  []string           `json:"fun_facts"`
	Aliases                   []string           `json:"aliases,omitempty"`
	AverageLifespan           string             `json:"average_lifespan,omitempty"`
	AverageWeight             string             `json:"average_weight,omitempty"`
	AverageHeight             string             `json:"average_height,omitempty"`
	GeographicDistribution    string             `json:"geographic_distribution,omitempty"`
	ImageURL                  string             `json:"image_url,omitempty"`
	SoundURL                  string             `json:"sound_url,omitempty"`
	LastRecognitionConfidence float64            `json:"last_recognition_confidence,omitempty"`
	CreatedBy                 string             `json:"created_by,omitempty"`
	// Placeholder marks an entry whose descriptive fields came from static
	// fallback data. Placeholder entries are upgraded on the next successful
	// enrichment; fully enriched entries are left alone.
	Placeholder bool `json:"-"`
}

// NewAnimal creates a catalog entry with a fresh id.
func NewAnimal(name, scientificName, description string, class AnimalClass, habitat string, diet DietType, status ConservationStatus) *Animal {
	return &Animal{
		ID:                 uuid.NewString(),
		Name:               name,
		ScientificName:     scientificName,
		Description:        description,
		Class:              class,
		Habitat:            habitat,
		Diet:               diet,
		ConservationStatus: status,
	}
}

// IsEndangered reports whether the entry is in an endangered category.
func (a *Animal) IsEndangered() bool {
	return a.ConservationStatus.IsEndangered()
}

// RandomFunFact returns a random fun fact, or "" when none are recorded.
func (a *Animal) RandomFunFact() string {
	if len(a.FunFacts) == 0 {
		return ""
	}
	return a.FunFacts[rand.Intn(len(a.FunFacts))]
}

// HasAlias reports whether the entry carries the alias, case-insensitively.
func (a *Animal) HasAlias(alias string) bool {
	for _, al := range a.Aliases {
		if strings.EqualFold(al, alias) {
			return true
		}
	}
	return false
}

// RecognitionResult is one detection produced for a single frame.
type RecognitionResult struct {
	AnimalID    string       `json:"animal_id"` // empty until identity is resolved
	AnimalName  string       `json:"animal_name"`
	Confidence  float64      `json:"confidence"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// BestResult selects the detection with the highest confidence. Ties are
// broken by first-seen order. Returns nil for an empty set.
func BestResult(results []RecognitionResult) *RecognitionResult {
	if len(results) == 0 {
		return nil
	}
	best := &results[0]
	for i := 1; i < len(results); i++ {
		if results[i].Confidence > best.Confidence {
			best = &results[i]
		}
	}
	return best
}

// Discovery records that a session first identified an animal. Never mutated
// after creation.
type Discovery struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	SessionID    string    `json:"session_id"`
	AnimalID     string    `json:"animal_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DiscoveredAt time.Time `json:"discovered_at"`
	Location     string    `json:"location,omitempty"`
	Confidence   float64   `json:"confidence"`
}

// NewDiscovery creates a Discovery with a fresh id.
func NewDiscovery(sessionID, animalID, thumbnailURL string, confidence float64, userID string) *Discovery {
	return &Discovery{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionID:    sessionID,
		AnimalID:     animalID,
		ThumbnailURL: thumbnailURL,
		DiscoveredAt: time.Now().UTC(),
		Confidence:   confidence,
	}
}

// UserSession is a bounded stream of frames from one client.
type UserSession struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	EndedAt     *time.Time   `json:"ended_at,omitempty"`
	IsActive    bool         `json:"is_active"`
	Discoveries []*Discovery `json:"-"`
}

// NewSession creates an active session with a fresh id.
func NewSession(userID string) *UserSession {
	return &UserSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: time.Now().UTC(),
		IsActive:  true,
	}
}

// AddDiscovery appends a discovery to the session.
func (s *UserSession) AddDiscovery(d *Discovery) {
	s.Discoveries = append(s.Discoveries, d)
}

// HasDiscovered reports whether the animal was already discovered in this session.
func (s *UserSession) HasDiscovered(animalID string) bool {
	for _, d := range s.Discoveries {
		if d.AnimalID == animalID {
			return true
		}
	}
	return false
}

// UniqueAnimalCount returns the number of distinct animals discovered.
func (s *UserSession) UniqueAnimalCount() int {
	seen := make(map[string]struct{}, len(s.Discoveries))
	for _, d := range s.Discoveries {
		seen[d.AnimalID] = struct{}{}
	}
	return len(seen)
}

// End marks the session inactive. Idempotent: ending an already ended
// session is a no-op.
func (s *UserSession) End() {
	if !s.IsActive {
		return
	}
	now := time.Now().UTC()
	s.IsActive = false
	s.EndedAt = &now
}
