package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/config"
	"github.com/mymenu/mymenu/database/seeders"
	"github.com/mymenu/mymenu/pkg/database"
	"github.com/mymenu/mymenu/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// mymenu migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// mymenu migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// mymenu migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// mymenu seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB)
	},
}

// mymenu sessions:prune — sessions expire lazily at read time; this sweeps
// the dead rows out of the table.
var sessionsPruneCmd = &cobra.Command{
	Use:   "sessions:prune",
	Short: "Delete expired session rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := repositories.NewSessionRepository(database.DB).DeleteExpired(); err != nil {
			return err
		}
		fmt.Println("Expired sessions pruned.")
		return nil
	},
}
