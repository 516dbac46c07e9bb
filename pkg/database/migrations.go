package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serendibgo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migration is a versioned change to the back-office indexes. The
// collections are shared with the customer application, so migrations only
// ever add or drop indexes, never collections.
type Migration struct {
	Version     int
	Description string
	Up          func(ctx context.Context, db *mongo.Database) error
	Down        func(ctx context.Context, db *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	log        *logger.Logger
	migrations []Migration
}

const migrationsCollection = "staffmigrations"

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{
		db:         db,
		log:        log,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= current {
			continue
		}
		m.log.WithField("version", migration.Version).Infof("Running migration: %s", migration.Description)

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		if err := m.setVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}
	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > current || migration.Version <= targetVersion {
			continue
		}
		m.log.WithField("version", migration.Version).Infof("Reverting migration: %s", migration.Description)

		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}
		previous := targetVersion
		if i > 0 {
			previous = m.migrations[i-1].Version
		}
		if err := m.setVersion(ctx, previous); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}
	return nil
}

func (m *Migrator) currentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}
	err := m.db.Collection(migrationsCollection).FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return result.Version, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection(migrationsCollection).ReplaceOne(ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updatedAt", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)
	return err
}

type indexSpec struct {
	collection string
	name       string
	keys       bson.D
}

func indexMigration(version int, description string, specs ...indexSpec) Migration {
	return Migration{
		Version:     version,
		Description: description,
		Up: func(ctx context.Context, db *mongo.Database) error {
			for _, spec := range specs {
				model := mongo.IndexModel{Keys: spec.keys, Options: options.Index().SetName(spec.name)}
				if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, model); err != nil {
					return fmt.Errorf("failed to create index %s on %s: %w", spec.name, spec.collection, err)
				}
			}
			return nil
		},
		Down: func(ctx context.Context, db *mongo.Database) error {
			for _, spec := range specs {
				if _, err := db.Collection(spec.collection).Indexes().DropOne(ctx, spec.name); err != nil {
					return fmt.Errorf("failed to drop index %s on %s: %w", spec.name, spec.collection, err)
				}
			}
			return nil
		},
	}
}

func getMigrations() []Migration {
	return []Migration{
		indexMigration(1, "Booking listing indexes",
			indexSpec{"bookings", "staff_created_at", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
			indexSpec{"bookings", "staff_guide_start", bson.D{{Key: "guide", Value: 1}, {Key: "startDate", Value: 1}}},
			indexSpec{"hotelbookings", "staff_created_at", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
			indexSpec{"vehiclebookings", "staff_created_at", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		),
		indexMigration(2, "Approval queue index",
			indexSpec{"users", "staff_role_verified", bson.D{{Key: "role", Value: 1}, {Key: "isVerified", Value: 1}}},
		),
		indexMigration(3, "Staff activity index",
			indexSpec{"staffactivities", "staff_activity", bson.D{{Key: "staffId", Value: 1}, {Key: "createdAt", Value: -1}}},
		),
	}
}
