package infra

import (
	"context"
	"fmt"

	"server/internal/sqlinline"
)

// Migrate applies the schema statements in order. All statements are
// idempotent so the migration can run on every startup.
func Migrate(ctx context.Context, sql SQLExecutor) error {
	statements := []string{
		sqlinline.QCreateDonorsTable,
		sqlinline.QCreateDonationsTable,
		sqlinline.QCreateDonationItemsTable,
	}
	for _, stmt := range statements {
		if _, err := sql.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
