package users

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/crucial707/account-api/cmd/cli/output"
	"github.com/crucial707/account-api/internal/account"
	"github.com/crucial707/account-api/internal/config"
	"github.com/crucial707/account-api/internal/db"
	"github.com/crucial707/account-api/internal/logging"
	"github.com/crucial707/account-api/internal/models"
	"github.com/crucial707/account-api/internal/password"
	"github.com/crucial707/account-api/internal/repo"
	"github.com/spf13/cobra"
)

// accountAdmin is the slice of *account.Service the admin commands need.
type accountAdmin interface {
	FindByLoginID(ctx context.Context, loginID string) (*models.User, bool, error)
	FindByUsername(ctx context.Context, username string) (*models.User, bool, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.User, error)
}

// openAccounts connects straight to the database using the server's
// environment configuration. Tests replace it.
var openAccounts = func(ctx context.Context) (accountAdmin, func(), error) {
	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.LogFormat, "warn")
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := account.NewService(repo.NewUserRepo(database), password.NewBcryptHasher(cfg.BcryptCost), account.WithLogger(logger))
	return svc, func() { database.Close() }, nil
}

// ==========================
// CLI Command Init
// ==========================

// InitUsers registers the database-backed admin commands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Administer accounts directly in the database",
		Long: `Inspect, enable or disable accounts. These commands read DB_* variables
and talk to PostgreSQL directly; there is no HTTP route for them.`,
	}

	usersCmd.AddCommand(
		showCmd(),
		setEnabledCmd("enable", "Enable an account so it can log in", true),
		setEnabledCmd("disable", "Disable an account; its logins fail like unknown accounts", false),
	)
	rootCmd.AddCommand(usersCmd)
}

func showCmd() *cobra.Command {
	var loginID, username string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an account by login ID or username",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var user *models.User
			if username != "" {
				user, err = lookupUsername(cmd.Context(), svc, username)
			} else {
				user, err = lookup(cmd.Context(), svc, loginID)
			}
			if err != nil {
				return err
			}
			output.RenderUser(cmd.OutOrStdout(), toOutput(user))
			return nil
		},
	}
	cmd.Flags().StringVar(&loginID, "login-id", "", "Login ID of the account")
	cmd.Flags().StringVar(&username, "username", "", "Username of the account")
	cmd.MarkFlagsMutuallyExclusive("login-id", "username")
	cmd.MarkFlagsOneRequired("login-id", "username")
	return cmd
}

func setEnabledCmd(use, short string, enabled bool) *cobra.Command {
	var loginID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := lookup(cmd.Context(), svc, loginID)
			if err != nil {
				return err
			}
			user, err = svc.SetEnabled(cmd.Context(), user.ID, enabled)
			if errors.Is(err, account.ErrUserNotFound) {
				return fmt.Errorf("no account with login ID %q", loginID)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account %s %sd.\n", loginID, use)
			output.RenderUser(cmd.OutOrStdout(), toOutput(user))
			return nil
		},
	}
	cmd.Flags().StringVar(&loginID, "login-id", "", "Login ID of the account")
	_ = cmd.MarkFlagRequired("login-id")
	return cmd
}

func lookup(ctx context.Context, svc accountAdmin, loginID string) (*models.User, error) {
	user, ok, err := svc.FindByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no account with login ID %q", loginID)
	}
	return user, nil
}

func lookupUsername(ctx context.Context, svc accountAdmin, username string) (*models.User, error) {
	user, ok, err := svc.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no account with username %q", username)
	}
	return user, nil
}

func toOutput(u *models.User) output.User {
	r := models.NewUserResponse(u)
	return output.User{
		ID:        r.ID,
		Username:  r.Username,
		LoginID:   r.LoginID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Enabled:   r.Enabled,
	}
}
