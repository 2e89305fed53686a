package migration

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
)

// AutoMigrate derives the schema from the entities. It is meant for local
// databases; production uses Migrate.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
