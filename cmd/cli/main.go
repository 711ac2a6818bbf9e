package main

import (
	"fmt"
	"os"

	"github.com/crucial707/account-api/cmd/cli/auth"
	"github.com/crucial707/account-api/cmd/cli/root"
	"github.com/crucial707/account-api/cmd/cli/users"
)

func main() {
	rootCmd := root.NewRootCmd()
	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
