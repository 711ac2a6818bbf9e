package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/account-api/cmd/cli/root"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	rootCmd := root.NewRootCmd()
	InitAuth(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSignup_PromptsForPassword(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signup" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"signup successful","data":{"id":1,"username":"Alice","loginId":"alice1","enabled":true},"timestamp":1}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "secret1\n", "signup", "--api-url", srv.URL, "--username", "Alice", "--login-id", "alice1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if got["password"] != "secret1" || got["loginId"] != "alice1" {
		t.Errorf("unexpected payload: %v", got)
	}
	if !strings.Contains(out, "signup successful") || !strings.Contains(out, "alice1") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"login failed, please check your login ID and password","data":null,"timestamp":1}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "", "login", "--api-url", srv.URL, "--login-id", "alice1", "--password", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "check your login ID") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSignup_ValidationDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"validation failed","data":{"username":"too short","password":"too short"},"timestamp":1}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "", "signup", "--api-url", srv.URL, "--username", "A", "--login-id", "alice1", "--password", "1")
	if err == nil || !strings.Contains(err.Error(), "password: too short; username: too short") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"auth service is running","data":null,"timestamp":1}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "", "health", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if strings.TrimSpace(out) != "auth service is running" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestHealth_TruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// declare more bytes than are sent so the client sees an unexpected EOF
		w.Header().Set("Content-Length", "500")
		_, _ = w.Write([]byte(`{"success":true,"message":"auth serv`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "", "health", "--api-url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "read response") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestSignup_RequiresFlags(t *testing.T) {
	if _, err := runCLI(t, "", "signup", "--api-url", "http://127.0.0.1:0"); err == nil {
		t.Error("expected error without --username/--login-id")
	}
}
