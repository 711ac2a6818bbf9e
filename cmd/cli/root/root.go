package root

import (
	"github.com/crucial707/account-api/cmd/cli/config"
	"github.com/spf13/cobra"
)

// APIURL is bound to the persistent --api-url flag.
var APIURL string

// NewRootCmd builds the top-level command. Subcommand packages attach to it.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "account",
		Short:         "Account API CLI",
		Long:          "Command line interface for signing up and logging in against the account API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&APIURL, "api-url", config.APIURL(), "Base URL of the account API")
	return cmd
}
