// model.go this code defines the database models for the application
package datastore

import (
	"time"

	"github.com/faunadex/faunadex-go/internal/fauna"
)

// Animal is the database model for a catalog entry. The canonical name
// carries a unique index: it is the source of truth for conflict resolution
// between concurrent creates.
type Animal struct {
	ID                        string   `gorm:"primaryKey;size:36"`
	Name                      string   `gorm:"uniqueIndex;size:100;not null"`
	ScientificName            string   `gorm:"size:150"`
	Description               string   `gorm:"type:text"`
	Class                     string   `gorm:"index;size:20"`
	Habitat                   string   `gorm:"size:200"`
	Diet                      string   `gorm:"size:20"`
	ConservationStatus        string   `gorm:"size:25"`
	FunFacts                  []string `gorm:"serializer:json"`
	Aliases                   []string `gorm:"serializer:json"`
	AverageLifespan           string   `gorm:"size:300"`
	AverageWeight             string   `gorm:"size:300"`
	AverageHeight             string   `gorm:"size:300"`
	GeographicDistribution    string   `gorm:"size:500"`
	ImageURL                  string
	SoundURL                  string
	LastRecognitionConfidence float64
	CreatedBy                 string `gorm:"size:36"`
	Placeholder               bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Session is the database model for a recognition session.
type Session struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"index;size:36"`
	StartedAt   time.Time
	EndedAt     *time.Time
	IsActive    bool        `gorm:"index"`
	Discoveries []Discovery `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// Discovery is the database model for a first sighting within a session.
type Discovery struct {
	ID           string `gorm:"primaryKey;size:36"`
	SessionID    string `gorm:"index;size:36;not null"`
	UserID       string `gorm:"index;size:36"`
	AnimalID     string `gorm:"index;size:36;not null"`
	ThumbnailURL string
	DiscoveredAt time.Time `gorm:"index"`
	Location     string    `gorm:"size:200"`
	Confidence   float64
}

func animalToEntity(m *Animal) *fauna.Animal {
	return &fauna.Animal{
		ID:                        m.ID,
		Name:                      m.Name,
		ScientificName:            m.ScientificName,
		Description:               m.Description,
		Class:                     fauna.AnimalClass(m.Class),
		Habitat:                   m.Habitat,
		Diet:                      fauna.DietType(m.Diet),
		ConservationStatus:        fauna.ConservationStatus(m.ConservationStatus),
		FunFacts:                  m.FunFacts,
		Aliases:                   m.Aliases,
		AverageLifespan:           m.AverageLifespan,
		AverageWeight:             m.AverageWeight,
		AverageHeight:             m.AverageHeight,
		GeographicDistribution:    m.GeographicDistribution,
		ImageURL:                  m.ImageURL,
		SoundURL:                  m.SoundURL,
		LastRecognitionConfidence: m.LastRecognitionConfidence,
		CreatedBy:                 m.CreatedBy,
		Placeholder:               m.Placeholder,
	}
}

func animalToModel(a *fauna.Animal) *Animal {
	return &Animal{
		ID:                        a.ID,
		Name:                      a.Name,
		ScientificName:            a.ScientificName,
		Description:               a.Description,
		Class:                     string(a.Class),
		Habitat:                   a.Habitat,
		Diet:                      string(a.Diet),
		ConservationStatus:        string(a.ConservationStatus),
		FunFacts:                  a.FunFacts,
		Aliases:                   a.Aliases,
		AverageLifespan:           a.AverageLifespan,
		AverageWeight:             a.AverageWeight,
		AverageHeight:             a.AverageHeight,
		GeographicDistribution:    a.GeographicDistribution,
		ImageURL:                  a.ImageURL,
		SoundURL:                  a.SoundURL,
		LastRecognitionConfidence: a.LastRecognitionConfidence,
		CreatedBy:                 a.CreatedBy,
		Placeholder:               a.Placeholder,
	}
}

func sessionToEntity(m *Session) *fauna.UserSession {
	s := &fauna.UserSession{
		ID:        m.ID,
		UserID:    m.UserID,
		StartedAt: m.StartedAt,
		EndedAt:   m.EndedAt,
		IsActive:  m.IsActive,
	}
	for i := range m.Discoveries {
		s.Discoveries = append(s.Discoveries, discoveryToEntity(&m.Discoveries[i]))
	}
	return s
}

func sessionToModel(s *fauna.UserSession) *Session {
	return &Session{
		ID:        s.ID,
		UserID:    s.UserID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		IsActive:  s.IsActive,
	}
}

func discoveryToEntity(m *Discovery) *fauna.Discovery {
	return &fauna.Discovery{
		ID:           m.ID,
		UserID:       m.UserID,
		SessionID:    m.SessionID,
		AnimalID:     m.AnimalID,
		ThumbnailURL: m.ThumbnailURL,
		DiscoveredAt: m.DiscoveredAt,
		Location:     m.Location,
		Confidence:   m.Confidence,
	}
}

func discoveryToModel(d *fauna.Discovery) *Discovery {
	return &Discovery{
		ID:           d.ID,
		UserID:       d.UserID,
		SessionID:    d.SessionID,
		AnimalID:     d.AnimalID,
		ThumbnailURL: d.ThumbnailURL,
		DiscoveredAt: d.DiscoveredAt,
		Location:     d.Location,
		Confidence:   d.Confidence,
	}
}
