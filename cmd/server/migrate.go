package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"tradeReportBackend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		// Open applies pending migrations.
		d, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer d.Close()
		versions, err := db.AppliedVersions(d)
		if err != nil {
			return err
		}
		log.Printf("schema at versions %v", versions)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		d, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer d.Close()
		v, err := db.RollbackLast(d)
		if err != nil {
			return err
		}
		if v == 0 {
			log.Printf("nothing to roll back")
		} else {
			log.Printf("rolled back migration %04d", v)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
