// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/logging"
)

// Interface abstracts the underlying database implementation and defines the
// catalog, session and discovery repository operations the pipeline needs.
type Interface interface {
	Open() error
	Close() error

	// catalog
	GetAnimal(id string) (*fauna.Animal, error)
	GetAnimalByName(name string) (*fauna.Animal, error)
	GetAllAnimals() ([]*fauna.Animal, error)
	SearchAnimals(query string) ([]*fauna.Animal, error)
	GetAnimalsByClass(class fauna.AnimalClass) ([]*fauna.Animal, error)
	SaveAnimal(animal *fauna.Animal) error

	// sessions
	CreateSession(session *fauna.UserSession) error
	GetSession(id string) (*fauna.UserSession, error)
	UpdateSession(session *fauna.UserSession) error
	EndSession(id string) error

	// discoveries
	SaveDiscovery(discovery *fauna.Discovery) error
	GetDiscoveriesBySession(sessionID string) ([]*fauna.Discovery, error)
	GetDiscoveriesByUser(userID string) ([]*fauna.Discovery, error)
	GetSessionAnimalIDs(sessionID string) ([]string, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// New creates a new datastore based on the enabled output in settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		return nil
	}
}

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow and logged at warn level.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.Default.LogMode(level)
}

func (ds *DataStore) log() *slog.Logger {
	if ds.logger == nil {
		ds.logger = logging.ForService("datastore")
		if ds.logger == nil {
			ds.logger = slog.Default()
		}
	}
	return ds.logger
}
