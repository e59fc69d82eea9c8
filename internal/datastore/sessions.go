// sessions.go: session repository operations
package datastore

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// CreateSession persists a new session.
func (ds *DataStore) CreateSession(session *fauna.UserSession) error {
	if err := ds.DB.Create(sessionToModel(session)).Error; err != nil {
		return errors.New(fmt.Errorf("creating session: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("session_id", session.ID).
			Build()
	}
	return nil
}

// GetSession retrieves a session with its discoveries.
func (ds *DataStore) GetSession(id string) (*fauna.UserSession, error) {
	var m Session
	err := ds.DB.Preload("Discoveries", func(db *gorm.DB) *gorm.DB {
		return db.Order("discovered_at")
	}).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fauna.ErrSessionNotFound
		}
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}
	return sessionToEntity(&m), nil
}

// UpdateSession persists session state changes.
func (ds *DataStore) UpdateSession(session *fauna.UserSession) error {
	m := sessionToModel(session)
	result := ds.DB.Model(&Session{}).Where("id = ?", m.ID).Updates(map[string]any{
		"user_id":   m.UserID,
		"ended_at":  m.EndedAt,
		"is_active": m.IsActive,
	})
	if result.Error != nil {
		return fmt.Errorf("updating session %s: %w", session.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fauna.ErrSessionNotFound
	}
	return nil
}

// EndSession marks a session inactive. Idempotent: ending an already ended
// session succeeds without changing state.
func (ds *DataStore) EndSession(id string) error {
	now := time.Now().UTC()
	result := ds.DB.Model(&Session{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "ended_at": &now})
	if result.Error != nil {
		return fmt.Errorf("ending session %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// Either already ended (fine) or missing (not fine).
		var count int64
		if err := ds.DB.Model(&Session{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("ending session %s: %w", id, err)
		}
		if count == 0 {
			return fauna.ErrSessionNotFound
		}
	}
	return nil
}
