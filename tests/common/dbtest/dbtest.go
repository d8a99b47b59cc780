//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Truncation order respects foreign keys from the audit and command
// tables back to service_requests.
var tables = []string{
	"notification_jobs",
	"snapshots",
	"command_log",
	"request_updates",
	"service_requests",
}

// ResetDB wipes all mutable state between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range tables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
