package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/crucial707/account-api/internal/account"
	"github.com/crucial707/account-api/internal/metrics"
	"github.com/crucial707/account-api/internal/models"
	"github.com/crucial707/account-api/internal/response"
	"github.com/crucial707/account-api/internal/validator"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Accounts is the part of *account.Service the HTTP layer calls.
type Accounts interface {
	Signup(ctx context.Context, username, loginID, password string) (*models.User, error)
	Authenticate(ctx context.Context, loginID, password string) (*models.User, bool, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Accounts Accounts
	Logger   *slog.Logger
}

func NewAuthHandler(accounts Accounts, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{Accounts: accounts, Logger: logger}
}

type SignupRequest struct {
	Username string `json:"username"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input SignupRequest
	if err := decodeJSON(r, &input); err != nil {
		metrics.IncSignup(metrics.ResultInvalid)
		response.Error(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	if errs := validator.ValidateSignup(input.Username, input.LoginID, input.Password); errs.HasErrors() {
		metrics.IncSignup(metrics.ResultInvalid)
		response.ErrorWithData(w, http.StatusBadRequest, MsgValidationFailed, errs)
		return
	}

	h.Logger.InfoContext(r.Context(), "signup request",
		"request_id", chimw.GetReqID(r.Context()),
		"username", input.Username,
		"login_id", input.LoginID)

	user, err := h.Accounts.Signup(r.Context(), input.Username, input.LoginID, input.Password)
	if err != nil {
		var dup *account.DuplicateFieldError
		if errors.As(err, &dup) {
			metrics.IncSignup(metrics.ResultDuplicate)
			response.Error(w, http.StatusBadRequest, dup.Error())
			return
		}
		if errors.Is(err, account.ErrPasswordTooLong) {
			metrics.IncSignup(metrics.ResultInvalid)
			errs := validator.ValidationErrors{}
			errs.Add("password", fmt.Sprintf("password must be at most %d bytes", validator.PasswordMaxBytes))
			response.ErrorWithData(w, http.StatusBadRequest, MsgValidationFailed, errs)
			return
		}
		metrics.IncSignup(metrics.ResultError)
		h.Logger.ErrorContext(r.Context(), "signup failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err)
		response.Error(w, http.StatusInternalServerError, MsgSignupFailed)
		return
	}

	metrics.IncSignup(metrics.ResultSuccess)
	response.Success(w, http.StatusCreated, MsgSignupOK, models.NewUserResponse(user))
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginRequest
	if err := decodeJSON(r, &input); err != nil {
		metrics.IncLogin(metrics.ResultInvalid)
		response.Error(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	if errs := validator.ValidateLogin(input.LoginID, input.Password); errs.HasErrors() {
		metrics.IncLogin(metrics.ResultInvalid)
		response.ErrorWithData(w, http.StatusBadRequest, MsgValidationFailed, errs)
		return
	}

	user, ok, err := h.Accounts.Authenticate(r.Context(), input.LoginID, input.Password)
	if err != nil {
		metrics.IncLogin(metrics.ResultError)
		h.Logger.ErrorContext(r.Context(), "login failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err)
		response.Error(w, http.StatusInternalServerError, MsgLoginFailed)
		return
	}
	if !ok {
		metrics.IncLogin(metrics.ResultUnauthorized)
		response.Error(w, http.StatusUnauthorized, MsgLoginInvalid)
		return
	}

	metrics.IncLogin(metrics.ResultSuccess)
	response.Success(w, http.StatusOK, MsgLoginOK, models.NewUserResponse(user))
}

// ==========================
// Health
// ==========================
func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, MsgHealthy)
}
