// discoveries.go: discovery repository operations
package datastore

import (
	"fmt"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// SaveDiscovery persists a discovery.
func (ds *DataStore) SaveDiscovery(discovery *fauna.Discovery) error {
	if err := ds.DB.Create(discoveryToModel(discovery)).Error; err != nil {
		return errors.New(fmt.Errorf("saving discovery: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("session_id", discovery.SessionID).
			Context("animal_id", discovery.AnimalID).
			Build()
	}
	return nil
}

// GetDiscoveriesBySession returns a session's discoveries in discovery order.
func (ds *DataStore) GetDiscoveriesBySession(sessionID string) ([]*fauna.Discovery, error) {
	var models []Discovery
	if err := ds.DB.Where("session_id = ?", sessionID).Order("discovered_at").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing discoveries for session %s: %w", sessionID, err)
	}
	return discoveriesToEntities(models), nil
}

// GetDiscoveriesByUser returns a user's discoveries, most recent first.
func (ds *DataStore) GetDiscoveriesByUser(userID string) ([]*fauna.Discovery, error) {
	var models []Discovery
	if err := ds.DB.Where("user_id = ?", userID).Order("discovered_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing discoveries for user %s: %w", userID, err)
	}
	return discoveriesToEntities(models), nil
}

// GetSessionAnimalIDs returns the distinct animal ids discovered in a session.
func (ds *DataStore) GetSessionAnimalIDs(sessionID string) ([]string, error) {
	var ids []string
	err := ds.DB.Model(&Discovery{}).
		Distinct("animal_id").
		Where("session_id = ?", sessionID).
		Pluck("animal_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing animal ids for session %s: %w", sessionID, err)
	}
	return ids, nil
}

func discoveriesToEntities(models []Discovery) []*fauna.Discovery {
	discoveries := make([]*fauna.Discovery, 0, len(models))
	for i := range models {
		discoveries = append(discoveries, discoveryToEntity(&models[i]))
	}
	return discoveries
}
