package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the account API.
// It can be overridden with the ACCOUNT_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("ACCOUNT_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
