package database

import (
	"fmt"

	"github.com/yukikurage/task-tracker-api/internal/logger"
	"gorm.io/gorm"
)

// extraIndexes are not expressible as struct tags because they span
// columns or exist only for ordering.
var extraIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_owner_created", "owner_id, created_at"},
	{"tasks", "idx_tasks_due_date", "due_date"},
	{"tasks", "idx_tasks_created_at", "created_at"},
}

// AddIndexes creates the indexes in extraIndexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *logger.Logger) error {
	migrator := db.Migrator()

	for _, idx := range extraIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}
