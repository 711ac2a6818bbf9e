package account

import (
	"context"
	"sync"

	"github.com/crucial707/account-api/internal/models"
	"github.com/crucial707/account-api/internal/repo"
)

// memStore is an in-memory Store whose Create enforces uniqueness atomically,
// like the unique constraints on the users table.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User

	// existsOverride forces the Exists* pre-checks to report false so tests
	// can drive Create into a unique violation.
	existsOverride bool
	creates        int
	err            error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*models.User)}
}

func (m *memStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, &repo.UniqueViolationError{Field: repo.FieldUsername, Constraint: "users_username_key"}
		}
		if existing.LoginID == u.LoginID {
			return nil, &repo.UniqueViolationError{Field: repo.FieldLoginID, Constraint: "users_login_id_key"}
		}
	}
	m.nextID++
	u.ID = m.nextID
	stored := *u
	m.users[u.ID] = &stored
	m.creates++
	return u, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memStore) GetByLoginID(_ context.Context, loginID string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.LoginID == loginID })
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *memStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsOverride {
		return false, nil
	}
	_, err := m.GetByUsername(ctx, username)
	return err == nil, ignoreNotFound(err)
}

func (m *memStore) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	if m.existsOverride {
		return false, nil
	}
	_, err := m.GetByLoginID(ctx, loginID)
	return err == nil, ignoreNotFound(err)
}

func (m *memStore) Update(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return nil, repo.ErrNotFound
	}
	stored := *u
	m.users[u.ID] = &stored
	return u, nil
}

func (m *memStore) createCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

func ignoreNotFound(err error) error {
	if err == repo.ErrNotFound {
		return nil
	}
	return err
}
