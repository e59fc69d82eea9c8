// catalog.go: animal catalog repository operations
package datastore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// GetAnimal retrieves a catalog entry by its id.
func (ds *DataStore) GetAnimal(id string) (*fauna.Animal, error) {
	var m Animal
	if err := ds.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fauna.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("getting animal %s: %w", id, err)
	}
	return animalToEntity(&m), nil
}

// GetAnimalByName retrieves a catalog entry by exact canonical name,
// case-insensitively.
func (ds *DataStore) GetAnimalByName(name string) (*fauna.Animal, error) {
	var m Animal
	if err := ds.DB.Where("LOWER(name) = LOWER(?)", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fauna.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("getting animal by name %q: %w", name, err)
	}
	return animalToEntity(&m), nil
}

// GetAllAnimals returns the full catalog ordered by name.
func (ds *DataStore) GetAllAnimals() ([]*fauna.Animal, error) {
	var models []Animal
	if err := ds.DB.Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing animals: %w", err)
	}
	return animalsToEntities(models), nil
}

// SearchAnimals finds entries whose name, scientific name or description
// contains the query, case-insensitively.
func (ds *DataStore) SearchAnimals(query string) ([]*fauna.Animal, error) {
	pattern := "%" + query + "%"
	var models []Animal
	err := ds.DB.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(scientific_name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("searching animals for %q: %w", query, err)
	}
	return animalsToEntities(models), nil
}

// GetAnimalsByClass returns all entries of a taxonomic class.
func (ds *DataStore) GetAnimalsByClass(class fauna.AnimalClass) ([]*fauna.Animal, error) {
	var models []Animal
	if err := ds.DB.Where("class = ?", string(class)).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing animals of class %s: %w", class, err)
	}
	return animalsToEntities(models), nil
}

// SaveAnimal inserts or updates a catalog entry. Inserting a new entry whose
// name collides with an existing one returns fauna.ErrDuplicateName so the
// caller can re-read the winner's entry instead of failing.
func (ds *DataStore) SaveAnimal(animal *fauna.Animal) error {
	m := animalToModel(animal)
	err := ds.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", fauna.ErrDuplicateName, animal.Name)
		}
		return errors.New(fmt.Errorf("saving animal %q: %w", animal.Name, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("animal_name", animal.Name).
			Build()
	}
	return nil
}

func animalsToEntities(models []Animal) []*fauna.Animal {
	animals := make([]*fauna.Animal, 0, len(models))
	for i := range models {
		animals = append(animals, animalToEntity(&models[i]))
	}
	return animals
}
