package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/crucial707/account-api/cmd/cli/output"
	"github.com/crucial707/account-api/cmd/cli/root"
	"github.com/spf13/cobra"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// envelope mirrors the API response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitAuth registers signup, login and health on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), loginCmd(), healthCmd())
}

// signupCmd creates a command that registers a new account.
func signupCmd() *cobra.Command {
	var username, loginID, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Long:  "Register a new account. The password is prompted for when --password is not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || loginID == "" {
				return errors.New("--username and --login-id are required")
			}
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}

			var user output.User
			msg, err := callJSONEndpoint(http.MethodPost, "/api/auth/signup", map[string]string{
				"username": username,
				"loginId":  loginID,
				"password": pw,
			}, &user)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			output.RenderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name (2-50 characters)")
	cmd.Flags().StringVar(&loginID, "login-id", "", "Login ID (3-30 characters)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")

	return cmd
}

// loginCmd creates a command that checks credentials and prints the account.
func loginCmd() *cobra.Command {
	var loginID, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a login ID and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginID == "" {
				return errors.New("--login-id is required")
			}
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}

			var user output.User
			msg, err := callJSONEndpoint(http.MethodPost, "/api/auth/login", map[string]string{
				"loginId":  loginID,
				"password": pw,
			}, &user)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			output.RenderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().StringVar(&loginID, "login-id", "", "Login ID to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the account API is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := callJSONEndpoint(http.MethodGet, "/api/auth/health", nil, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// callJSONEndpoint sends payload (if any) and decodes the envelope. On
// success the envelope data is decoded into out and the message returned.
// On failure the envelope message becomes the error.
func callJSONEndpoint(method, path string, payload interface{}, out interface{}) (string, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimRight(root.APIURL, "/")+path, body)
	if err != nil {
		return "", err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !env.Success || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("status %d: %s%s", resp.StatusCode, env.Message, fieldDetails(env.Data))
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", err
		}
	}
	return env.Message, nil
}

// fieldDetails formats validation field errors, if the data holds any.
func fieldDetails(data json.RawMessage) string {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for f, msg := range fields {
		parts = append(parts, f+": "+msg)
	}
	sort.Strings(parts)
	return " (" + strings.Join(parts, "; ") + ")"
}
