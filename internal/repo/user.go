package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/account-api/internal/models"
	"github.com/lib/pq"
)

// ErrNotFound is returned when no user matches a lookup or update.
var ErrNotFound = errors.New("user not found")

// pq error code for unique_violation.
const uniqueViolation = "23505"

// Field names reported in UniqueViolationError.
const (
	FieldUsername = "username"
	FieldLoginID  = "loginId"
)

// UniqueViolationError reports that a write collided with a unique constraint.
// Field is FieldUsername, FieldLoginID, or empty when the constraint is unknown.
type UniqueViolationError struct {
	Field      string
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s (%s)", e.Field, e.Constraint)
}

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, login_id, password, created_at, updated_at, enabled`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.LoginID,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Enabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// mapWriteError turns a pq unique violation into *UniqueViolationError.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &UniqueViolationError{
			Field:      fieldForConstraint(pqErr.Constraint),
			Constraint: pqErr.Constraint,
		}
	}
	return err
}

func fieldForConstraint(constraint string) string {
	switch {
	case strings.Contains(constraint, "login_id"):
		return FieldLoginID
	case strings.Contains(constraint, "username"):
		return FieldUsername
	default:
		return ""
	}
}

// ==========================
// Create User
// ==========================

// Create inserts u and sets its ID. The unique constraints on username and
// login_id are the authority on duplicates; a collision returns
// *UniqueViolationError.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, login_id, password, created_at, updated_at, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		u.Username, u.LoginID, u.PasswordHash, u.CreatedAt, u.UpdatedAt, u.Enabled,
	).Scan(&u.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}

	return u, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Get By Login ID
// ==========================
func (r *UserRepo) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, loginID))
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, username))
}

// ==========================
// Existence checks
// ==========================
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepo) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE login_id = $1)`, loginID)
}

func (r *UserRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ==========================
// Update User
// ==========================

// Update writes every mutable column of u. created_at is never rewritten.
// Callers set UpdatedAt (models.User.Touch) before calling.
func (r *UserRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1, login_id = $2, password = $3, updated_at = $4, enabled = $5
		WHERE id = $6
	`

	result, err := r.DB.ExecContext(ctx, query,
		u.Username, u.LoginID, u.PasswordHash, u.UpdatedAt, u.Enabled, u.ID,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return u, nil
}

// Ping checks database reachability for readiness probes.
func (r *UserRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
