package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"userapi/internal/logging"
	"userapi/internal/model"
)

type migrationStep struct {
	Name  string
	Model any
}

var steps = []migrationStep{
	{
		Name:  "create_table_users",
		Model: (*model.User)(nil),
	},
}

// EnsureSchema creates every model table that does not exist yet.
// It is idempotent and safe to run on each startup.
func EnsureSchema(ctx context.Context, db *bun.DB, log *logging.Logger) error {
	start := time.Now()
	dialect := db.Dialect().Name().String()

	log.WithFields(logging.Fields{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"dialect":   dialect,
	}).Info("schema migration started")

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.NewCreateTable().
			Model(step.Model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			log.WithFields(logging.Fields{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"dialect":          dialect,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).Error("schema migration failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logging.Fields{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"dialect":          dialect,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("schema migration step applied")
	}

	log.WithFields(logging.Fields{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"dialect":     dialect,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migration finished")

	return nil
}
