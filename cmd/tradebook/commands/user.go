package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quarzen/tradebook/internal/cli/output"
	"github.com/quarzen/tradebook/internal/cli/prompt"
	"github.com/quarzen/tradebook/internal/cli/timeutil"
	"github.com/quarzen/tradebook/pkg/config"
	"github.com/quarzen/tradebook/pkg/journal/models"
	"github.com/quarzen/tradebook/pkg/journal/store"
	"github.com/spf13/cobra"
)

var (
	userAddEmail string
	userOutput   string
	userForce    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage journal accounts",
	Long: `Manage journal accounts directly against the database.

These commands operate on the configured database without going through
the API, so they work while the server is stopped.

Examples:
  tradebook user add alice
  tradebook user passwd alice
  tradebook user list
  tradebook user delete alice`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user (prompts for password)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userPasswdCmd = &cobra.Command{
	Use:     "passwd <username>",
	Aliases: []string{"password"},
	Short:   "Change a user's password",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserPasswd,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <username>",
	Aliases: []string{"remove"},
	Short:   "Delete a user and all their trades",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

func init() {
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "Email address for the new user")
	userListCmd.Flags().StringVarP(&userOutput, "output", "o", "table", "Output format (table|json|yaml)")
	userDeleteCmd.Flags().BoolVar(&userForce, "force", false, "Skip confirmation prompt")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userPasswdCmd)
	userCmd.AddCommand(userDeleteCmd)
}

// openStore opens the journal store using the configured database.
func openStore() (store.Store, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}
	if err := InitLogger(cfg); err != nil {
		return nil, err
	}

	journalStore, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal store: %w", err)
	}
	return journalStore, nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	email := userAddEmail
	if email == "" {
		email, err = prompt.InputOptional("Email")
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
	}

	password, err := prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
	if err != nil {
		if prompt.IsAborted(err) {
			return nil
		}
		return err
	}

	ctx := context.Background()
	user, err := journalStore.CreateUser(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			return fmt.Errorf("user %q already exists", username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("✓ User %q created (ID: %d)\n", user.Username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(userOutput)
	if err != nil {
		return err
	}

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	users, err := journalStore.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, users)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, users)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	table := output.NewTableData("USERNAME", "EMAIL", "CREATED", "LAST LOGIN")
	for _, u := range users {
		email := u.Email
		if email == "" {
			email = "-"
		}
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Local().Format(timeutil.LocalTimeFormat)
		}
		table.AddRow(u.Username, email, u.CreatedAt.Format("2006-01-02"), lastLogin)
	}
	return output.PrintTable(os.Stdout, table)
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	username := args[0]

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	ctx := context.Background()
	if _, err := journalStore.GetUser(ctx, username); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", username)
		}
		return err
	}

	password, err := prompt.PasswordWithConfirmation("New password", "Confirm password", 8)
	if err != nil {
		if prompt.IsAborted(err) {
			return nil
		}
		return err
	}

	if err := journalStore.UpdatePassword(ctx, username, password); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Printf("✓ Password changed for user %q\n", username)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	confirmed, err := prompt.ConfirmWithForce(
		fmt.Sprintf("Delete user %q and all their trades?", username), userForce)
	if err != nil {
		if prompt.IsAborted(err) {
			return nil
		}
		return err
	}
	if !confirmed {
		fmt.Println("Aborted")
		return nil
	}

	if err := journalStore.DeleteUser(context.Background(), username); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", username)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("✓ User %q deleted\n", username)
	return nil
}
