package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var (
		dir   string
		limit int
	)

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := migrate.Up
			if len(args) == 1 && args[0] == "down" {
				direction = migrate.Down
				if limit == 0 {
					limit = 1
				}
			}

			db, err := sql.Open("postgres", ctx.dbOptions().DSN())
			if err != nil {
				return fmt.Errorf("cannot connect to db: %w", err)
			}
			defer db.Close()

			total, err := runMigrations(db, dir, direction, limit)
			if err != nil {
				return err
			}

			ctx.log().Infow("applied migrations", "total", total, "direction", directionName(direction))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of migrations to apply (0 = all, down defaults to 1)")

	return cmd
}

func runMigrations(db *sql.DB, dir string, direction migrate.MigrationDirection, limit int) (int, error) {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	total, err := migrate.ExecMax(db, "postgres", migrations, direction, limit)
	if err != nil {
		return total, fmt.Errorf("cannot execute migration: %w", err)
	}
	return total, nil
}

func directionName(d migrate.MigrationDirection) string {
	if d == migrate.Down {
		return "down"
	}
	return "up"
}
