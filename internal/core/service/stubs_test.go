package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var found []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found = append(found, cloneUser(u))
		}
	}
	return found, nil
}

func (r *stubUserRepo) ExistsByRole(_ context.Context, role domain.Role) (bool, error) {
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed inserts a user directly, bypassing Create's uniqueness checks.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = u.Username
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy
}

type stubAccountRepo struct {
	accounts map[string]*domain.ServiceAccount
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.ServiceAccount)}
}

func (r *stubAccountRepo) FindByClientID(_ context.Context, clientID string) (*domain.ServiceAccount, error) {
	if a, ok := r.accounts[clientID]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrServiceAccountNotFound
}

func (r *stubAccountRepo) Upsert(_ context.Context, account *domain.ServiceAccount) error {
	clone := *account
	r.accounts[account.ClientID] = &clone
	return nil
}

type stubDispatcher struct {
	events []ports.OutboundEvent
	err    error
}

func (d *stubDispatcher) Enqueue(event ports.OutboundEvent) error {
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, event)
	return nil
}

type stubGuard struct {
	acquired bool
	denied   bool
	released bool
}

func (g *stubGuard) Acquire(context.Context) (bool, error) {
	if g.denied {
		return false, nil
	}
	g.acquired = true
	return true, nil
}

func (g *stubGuard) Release(context.Context) error {
	g.released = true
	return nil
}

var errStubQueueFull = errors.New("queue full")

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
