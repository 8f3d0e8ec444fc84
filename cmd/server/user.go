package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User administration",
}

var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <email> <user|admin>",
	Short: "Change a user's role; the only way to grant admin",
	Args:  cobra.ExactArgs(2),
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
		api, err := buildAPI(cfg, d)
		if err != nil {
			return err
		}
		if err := api.Accounts.SetRole(cmd.Context(), args[0], models.Role(args[1])); err != nil {
			return err
		}
		log.Printf("%s is now %s", args[0], args[1])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with their roles",
	Args:  cobra.NoArgs,
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
		api, err := buildAPI(cfg, d)
		if err != nil {
			return err
		}
		users, err := api.Accounts.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, u := range users {
			fmt.Fprintf(out, "%d\t%s\t%s\n", u.ID, u.Email, u.Role)
		}
		return nil
	},
}

func init() {
	userCmd.AddCommand(userSetRoleCmd, userListCmd)
}
