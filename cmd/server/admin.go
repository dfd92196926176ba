// cmd/server/admin.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mittirang/mittirang-backend/internal/database"
	"github.com/mittirang/mittirang-backend/internal/services"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	RunE:  runAdminCreate,
}

func init() {
	adminCreateCmd.Flags().String("email", "", "admin email (required)")
	adminCreateCmd.Flags().String("password", "", "admin password, generated when empty")
	_ = adminCreateCmd.MarkFlagRequired("email")

	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	generated := password == ""
	if generated {
		var err error
		if password, err = utils.GeneratePassword(); err != nil {
			return err
		}
	}

	cfg, db, err := boot()
	if err != nil {
		return err
	}
	defer database.Close(db)

	admin, err := services.NewAuthService(db, cfg).CreateAdmin(cmd.Context(), &services.CreateAdminRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, services.ErrAdminExists) {
			return fmt.Errorf("%s: %w", email, err)
		}
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			return fmt.Errorf("%s: %s", details[0].Field, details[0].Message)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created admin %s (id %d)\n", admin.Email, admin.ID)
	if generated {
		fmt.Fprintf(out, "Generated password: %s\n", password)
	}
	return nil
}
